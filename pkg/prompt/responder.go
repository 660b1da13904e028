package prompt

import (
	"context"
	"errors"

	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/ports"
)

// ErrNotRequester is returned when a display-only transport is asked for an answer.
var ErrNotRequester = errors.New("transport cannot answer requests")

// responderOnly lets a display-only transport sit under the decorators.
// It is never interactive and reports are dropped.
type responderOnly struct {
	ports.Responder
}

// AsRequester adapts a display-only transport to ports.Requester. If r
// already is a Requester it is returned unchanged.
func AsRequester(r ports.Responder) ports.Requester {
	if req, ok := r.(ports.Requester); ok {
		return req
	}
	return responderOnly{r}
}

func (responderOnly) IsInteractive() bool { return false }

func (responderOnly) Request(context.Context, domain.RequestKind, string, []string) (string, error) {
	return "", ErrNotRequester
}

func (responderOnly) Report(domain.ReportKind, string) error { return nil }
