package prompt

import (
	"context"

	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/ports"
)

// Mode is the state of a Replay log.
type Mode int

const (
	ModeDisabled Mode = iota
	ModeRecording
	ModeReplaying
)

func (m Mode) String() string {
	switch m {
	case ModeDisabled:
		return "disabled"
	case ModeRecording:
		return "recording"
	case ModeReplaying:
		return "replaying"
	default:
		return "unknown"
	}
}

// Replay logs the answers of a walk and can feed them back to a new walk.
//
// A walk cannot be stepped backwards once an answer is submitted, so undo and
// restart start a fresh walk over the same Replay: logged answers are replayed
// silently (stated to the transport, not asked) until the log runs out, then
// live prompting resumes.
type Replay struct {
	inner   ports.Requester
	mode    Mode
	log     []string
	pending []string
	observe func([]string)
}

// ReplayOption configures a Replay.
type ReplayOption func(*Replay)

// WithObserver registers fn to be called with a copy of the log after every change.
func WithObserver(fn func(entries []string)) ReplayOption {
	return func(r *Replay) {
		r.observe = fn
	}
}

// NewReplay wraps inner with a disabled answer log.
func NewReplay(inner ports.Requester, opts ...ReplayOption) *Replay {
	r := &Replay{inner: inner}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reset clears the log and disables recording.
func (r *Replay) Reset() {
	r.log = nil
	r.pending = nil
	r.mode = ModeDisabled
	r.changed()
}

// Record clears the log and starts recording answers.
func (r *Replay) Record() {
	r.log = nil
	r.pending = nil
	r.mode = ModeRecording
	r.changed()
}

// Seed replaces the log with entries and starts recording, so that the next
// Replay feeds them to the walk. It is used to resume a stored session.
func (r *Replay) Seed(entries []string) {
	r.log = append([]string(nil), entries...)
	r.pending = nil
	r.mode = ModeRecording
	r.changed()
}

// Replay feeds the logged answers to the next requests, recording them again
// as they are used. The log must be recording.
func (r *Replay) Replay() error {
	if r.mode != ModeRecording {
		return domain.ErrCannotReplay
	}
	r.pending = r.log
	r.log = nil
	r.mode = ModeReplaying
	return nil
}

// Abandon drops the answers not yet replayed and resumes recording.
// It is a no-op unless replaying.
func (r *Replay) Abandon() {
	if r.mode != ModeReplaying {
		return
	}
	r.pending = nil
	r.mode = ModeRecording
	r.changed()
}

// Undo removes the last n answers from the log.
func (r *Replay) Undo(n int) {
	if n > len(r.log) {
		n = len(r.log)
	}
	r.log = r.log[:len(r.log)-n]
	r.changed()
}

// RestartFrom keeps only the first n answers of the log.
func (r *Replay) RestartFrom(n int) {
	if n < len(r.log) {
		r.log = r.log[:n]
	}
	r.changed()
}

// Mode returns the current mode.
func (r *Replay) Mode() Mode { return r.mode }

// Entries returns a copy of the log.
func (r *Replay) Entries() []string {
	return append([]string(nil), r.log...)
}

// Pending returns the number of answers still to be replayed.
func (r *Replay) Pending() int { return len(r.pending) }

func (r *Replay) changed() {
	if r.observe != nil {
		r.observe(r.Entries())
	}
}

func (r *Replay) BeginScope(name string, size int) error { return r.inner.BeginScope(name, size) }

func (r *Replay) EndScope() error { return r.inner.EndScope() }

// Respond logs answers stated by the walk itself while recording.
func (r *Replay) Respond(kind domain.RequestKind, label, text string) error {
	if kind != domain.Synthetic && r.mode == ModeRecording {
		r.log = append(r.log, text)
		r.changed()
	}
	return r.inner.Respond(kind, label, text)
}

// IsInteractive is false while replaying: a replayed answer cannot be asked again.
func (r *Replay) IsInteractive() bool {
	if r.mode == ModeReplaying {
		return false
	}
	return r.inner.IsInteractive()
}

func (r *Replay) Request(ctx context.Context, kind domain.RequestKind, label string, variants []string) (string, error) {
	if r.mode == ModeReplaying {
		if len(r.pending) > 0 {
			s := r.pending[0]
			r.pending = r.pending[1:]
			r.log = append(r.log, s)
			r.changed()
			if err := r.inner.Respond(kind, label, s); err != nil {
				return "", err
			}
			return s, nil
		}
		r.pending = nil
		r.mode = ModeRecording
	}

	s, err := r.inner.Request(ctx, kind, label, variants)
	if err != nil {
		return "", err
	}
	if r.mode == ModeRecording {
		r.log = append(r.log, s)
		r.changed()
	}
	return s, nil
}

// Report drops the last logged answer when it was rejected.
func (r *Replay) Report(kind domain.ReportKind, msg string) error {
	if kind == domain.BadResponse && len(r.log) > 0 {
		r.log = r.log[:len(r.log)-1]
		r.changed()
	}
	return r.inner.Report(kind, msg)
}
