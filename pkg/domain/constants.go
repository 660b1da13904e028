package domain

// NoSize marks a scope whose number of children is not known up front.
const NoSize = -1

// Fixed labels and questions used by the walkers. Transports may match on them
// (e.g. to offer completion), so they are part of the public contract.
const (
	LabelVariant = "variant"
	LabelUnit    = "unit"
	UnitText     = "()"

	QuestionSome    = "Some value?"
	QuestionElement = "Add element?"
	QuestionEntry   = "Add entry?"
	QuestionByte    = "Add byte?"
	QuestionAccept  = "Accept value?"

	Yes = "yes"
	No  = "no"
)
