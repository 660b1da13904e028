package ports

import (
	"context"

	"github.com/aretw0/quill/pkg/domain"
)

// Responder receives the framing and the statements of a transcript.
type Responder interface {
	// BeginScope opens a nested scope. size is the number of children when
	// known up front, or domain.NoSize.
	BeginScope(name string, size int) error
	// EndScope closes the innermost open scope.
	EndScope() error
	// Respond states the answer text for a labelled request.
	Respond(kind domain.RequestKind, label, text string) error
}

// Requester is a Responder that can also ask for answers.
type Requester interface {
	Responder
	// IsInteractive reports whether a rejected answer can be asked for again.
	IsInteractive() bool
	// Request blocks until an answer is available. variants, when non-empty,
	// lists the accepted answers.
	Request(ctx context.Context, kind domain.RequestKind, label string, variants []string) (string, error)
	// Report sends feedback to the operator.
	Report(kind domain.ReportKind, msg string) error
}
