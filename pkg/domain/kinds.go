package domain

// RequestKind classifies a request or response exchanged with a transport.
type RequestKind int

const (
	// Datum is a primitive value or a variant name.
	Datum RequestKind = iota
	// Question is a yes/no decision that drives the shape of the value.
	Question
	// Synthetic carries no information; it is never logged and cannot be corrected.
	Synthetic
)

func (k RequestKind) String() string {
	switch k {
	case Datum:
		return "datum"
	case Question:
		return "question"
	case Synthetic:
		return "synthetic"
	default:
		return "unknown"
	}
}

// ReportKind classifies a message reported back to the operator.
type ReportKind int

const (
	// BadResponse tells the operator the last answer was rejected.
	BadResponse ReportKind = iota
	// Help carries informational text.
	Help
)

func (k ReportKind) String() string {
	switch k {
	case BadResponse:
		return "bad_response"
	case Help:
		return "help"
	default:
		return "unknown"
	}
}
