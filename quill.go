package quill

import (
	"context"
	"fmt"
	"reflect"

	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/ports"
	"github.com/aretw0/quill/pkg/prompt"
	"github.com/aretw0/quill/pkg/schema"
	"github.com/aretw0/quill/pkg/walk"
)

// Build asks p for a value of type t. Answers go through meta-commands,
// scope compaction and an answer log, so the operator can undo, restart or
// cancel. The finished value must be accepted before it is returned.
func Build(ctx context.Context, p ports.Requester, t schema.Type, opts ...Option) (any, error) {
	cfg := newConfig(opts)
	raw := cfg.wrap(p)
	inner := prompt.NewMeta(prompt.NewCompact(raw))
	return newDriver(ctx, cfg, raw, inner, t, true).run(ctx)
}

// BuildReplay is Build without meta-commands and compaction. Rejected
// values are still retried through the answer log.
func BuildReplay(ctx context.Context, p ports.Requester, t schema.Type, opts ...Option) (any, error) {
	cfg := newConfig(opts)
	raw := cfg.wrap(p)
	return newDriver(ctx, cfg, raw, raw, t, true).run(ctx)
}

// BuildInto builds a value for the Go type dst points to and decodes it into dst.
func BuildInto(ctx context.Context, p ports.Requester, dst any, opts ...Option) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("BuildInto: destination must be a non-nil pointer, got %T", dst)
	}
	elem := rv.Type().Elem()
	t, err := schema.TypeOf(elem)
	if err != nil {
		return err
	}
	decodable := schema.Refine(t.Name(), t, func(v any) error {
		return schema.Decode(v, reflect.New(elem).Interface())
	})
	v, err := Build(ctx, p, decodable, opts...)
	if err != nil {
		return err
	}
	return schema.Decode(v, dst)
}

// BuildBare walks t once directly over p. There is no answer log, no
// meta-commands and no confirmation.
func BuildBare(ctx context.Context, p ports.Requester, t schema.Type, opts ...Option) (any, error) {
	cfg := newConfig(opts)
	b := walk.NewBuilder(ctx, cfg.wrap(p))
	v, err := t.Build(b)
	if cerr := b.Close(); err == nil {
		err = cerr
	}
	return v, err
}

// BuildConfirm is BuildBare followed by the accept question. A declined
// value is built again from scratch.
func BuildConfirm(ctx context.Context, p ports.Requester, t schema.Type, opts ...Option) (any, error) {
	cfg := newConfig(opts)
	raw := cfg.wrap(p)
	for {
		v, err := BuildBare(ctx, raw, t)
		if err != nil {
			return nil, err
		}
		ok, err := walk.NewBuilder(ctx, raw).AskYesNo(domain.QuestionAccept)
		if err != nil {
			return nil, err
		}
		if ok {
			return v, nil
		}
		if !raw.IsInteractive() {
			return nil, domain.Restart(0)
		}
		cfg.logger.Debug("value declined")
	}
}

// Display states value as a value of t to p, compacting single-child scopes
// and escaping statements that would read as meta-commands.
func Display(p ports.Responder, t schema.Type, value any, opts ...Option) error {
	cfg := newConfig(opts)
	chain := prompt.NewMeta(prompt.NewCompact(cfg.wrap(prompt.AsRequester(p))))
	return DisplayBare(chain, t, value)
}

// DisplayBare states value directly to p.
func DisplayBare(p ports.Responder, t schema.Type, value any) error {
	d := walk.NewDisplayer(p)
	err := t.Display(d, value)
	if cerr := d.Close(); err == nil {
		err = cerr
	}
	return err
}

// DisplayValue displays a Go value, deriving its type with schema.Of.
func DisplayValue(p ports.Responder, v any, opts ...Option) error {
	t, err := schema.Of(v)
	if err != nil {
		return err
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && !rv.IsNil() {
		v = rv.Elem().Interface()
	}
	return Display(p, t, v, opts...)
}
