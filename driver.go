package quill

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/ports"
	"github.com/aretw0/quill/pkg/prompt"
	"github.com/aretw0/quill/pkg/schema"
	"github.com/aretw0/quill/pkg/walk"
)

// driver runs build passes over a Replay until a value is accepted.
type driver struct {
	cfg     *config
	raw     ports.Requester // decides whether failures may be retried
	replay  *prompt.Replay  // outermost layer, seen by the walkers
	t       schema.Type
	confirm bool
	cp      *domain.Checkpoint
}

func newDriver(ctx context.Context, cfg *config, raw, inner ports.Requester, t schema.Type, confirm bool) *driver {
	d := &driver{cfg: cfg, raw: raw, t: t, confirm: confirm}
	d.replay = prompt.NewReplay(inner, prompt.WithObserver(d.persist(ctx)))
	return d
}

func (d *driver) run(ctx context.Context) (any, error) {
	if err := d.start(ctx); err != nil {
		return nil, err
	}

	for pass := 1; ; pass++ {
		ev := &domain.PassEvent{
			EventBase: d.event(domain.EventPassStart),
			Pass:      pass,
			Replayed:  d.replay.Pending(),
		}
		if d.cfg.hooks.OnPassStart != nil {
			d.cfg.hooks.OnPassStart(ctx, ev)
		}
		d.cfg.logger.Debug("pass started", "pass", pass, "replayed", ev.Replayed)

		v, err := d.pass(ctx)

		ev.EventBase = d.event(domain.EventPassEnd)
		ev.Err = err
		if d.cfg.hooks.OnPassEnd != nil {
			d.cfg.hooks.OnPassEnd(ctx, ev)
		}
		d.cfg.logger.Debug("pass ended", "pass", pass, "err", err)

		if err == nil {
			ev.EventBase = d.event(domain.EventAccepted)
			if d.cfg.hooks.OnAccepted != nil {
				d.cfg.hooks.OnAccepted(ctx, ev)
			}
			d.finish(ctx)
			return v, nil
		}
		if err := d.recover(ctx, err); err != nil {
			return nil, err
		}
	}
}

// pass walks the type once and, when confirming, asks to accept the result.
func (d *driver) pass(ctx context.Context) (any, error) {
	b := walk.NewBuilder(ctx, d.replay)
	v, err := d.t.Build(b)
	if cerr := b.Close(); err == nil {
		err = cerr
	}
	if err != nil || !d.confirm {
		return v, err
	}

	ok, err := walk.NewBuilder(ctx, d.replay).AskYesNo(domain.QuestionAccept)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.Restart(0)
	}
	return v, nil
}

// recover prepares the log for another pass, or returns err when the
// failure cannot be retried.
func (d *driver) recover(ctx context.Context, err error) error {
	if !d.raw.IsInteractive() {
		return err
	}

	var ve *domain.ValidationError
	action, isAction := domain.AsAction(err)
	reason := ""
	switch {
	case isAction && action.Kind == domain.ActionCancel:
		return err
	case isAction:
	case errors.As(err, &ve):
		action, reason = domain.Action{Kind: domain.ActionUndo, N: 1}, ve.Error()
	case errors.Is(err, domain.ErrBadResponse):
		// The walker already dropped the rejected answer.
		action, reason = domain.Action{Kind: domain.ActionUndo}, "replayed answer rejected"
	default:
		return err
	}

	d.replay.Abandon()
	switch {
	case ve != nil:
		if err := d.replay.Report(domain.BadResponse, ve.Error()); err != nil {
			return err
		}
	case action.Kind == domain.ActionUndo:
		d.replay.Undo(action.N)
	case action.Kind == domain.ActionRestart:
		d.replay.RestartFrom(action.N)
	}

	if d.cfg.hooks.OnAction != nil {
		d.cfg.hooks.OnAction(ctx, &domain.ActionEvent{
			EventBase: d.event(domain.EventAction),
			Action:    action,
			Reason:    reason,
		})
	}
	d.cfg.logger.Debug("replaying", "action", action.String(), "answers", len(d.replay.Entries()), "reason", reason)
	return d.replay.Replay()
}

// start loads the stored log of the session, if any, and prepares the first pass.
func (d *driver) start(ctx context.Context) error {
	if d.cfg.sessions == nil {
		d.replay.Record()
		return nil
	}
	cp, err := d.cfg.sessions.LoadOrStart(ctx, d.cfg.sessionID, d.t.Name())
	if err != nil {
		return err
	}
	d.cp = cp
	if len(cp.Answers) == 0 {
		d.replay.Record()
		return nil
	}
	d.cfg.logger.Info("resuming session", "answers", len(cp.Answers))
	d.replay.Seed(cp.Answers)
	return d.replay.Replay()
}

// persist returns the Replay observer saving the log after every change.
// Partial logs rebuilt while replaying are not saved.
func (d *driver) persist(ctx context.Context) func([]string) {
	return func(entries []string) {
		if d.cp == nil || d.replay.Pending() > 0 {
			return
		}
		cp := d.cp.Clone()
		cp.Answers = entries
		cp.UpdatedAt = time.Now().UTC()
		if err := d.cfg.sessions.Save(ctx, cp); err != nil {
			d.cfg.logger.Warn("failed to save session", "err", err)
		}
	}
}

func (d *driver) finish(ctx context.Context) {
	if d.cp == nil {
		return
	}
	d.cp = nil
	if err := d.cfg.sessions.Delete(ctx, d.cfg.sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		d.cfg.logger.Warn("failed to delete session", "err", err)
	}
}

func (d *driver) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, SessionID: d.cfg.sessionID}
}
