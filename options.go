package quill

import (
	"log/slog"

	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/ports"
	"github.com/aretw0/quill/pkg/session"
	"github.com/google/uuid"
)

// Middleware wraps the raw transport before the driver adds its own layers.
type Middleware func(ports.Requester) ports.Requester

type config struct {
	logger     *slog.Logger
	hooks      domain.LifecycleHooks
	middleware []Middleware
	sessions   *session.Manager
	sessionID  string
}

// Option configures a session.
type Option func(*config)

// WithLogger sets a structured logger for the driver. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

// WithMiddleware wraps the raw transport, e.g. with observability decorators.
// The first middleware given is the outermost.
func WithMiddleware(mws ...Middleware) Option {
	return func(c *config) {
		c.middleware = append(c.middleware, mws...)
	}
}

// WithSession persists the answer log of a build under sessionID. A stored
// log is replayed before live prompting resumes, and the session is deleted
// once the value is accepted. An empty sessionID generates a new one.
func WithSession(m *session.Manager, sessionID string) Option {
	return func(c *config) {
		c.sessions = m
		c.sessionID = sessionID
	}
}

// WithCheckpoint is WithSession over a plain store.
func WithCheckpoint(store ports.LogStore, sessionID string) Option {
	return WithSession(session.NewManager(store), sessionID)
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.sessions != nil && c.sessionID == "" {
		c.sessionID = NewSessionID()
	}
	if c.sessionID != "" {
		c.logger = c.logger.With("session_id", c.sessionID)
	}
	return c
}

func (c *config) wrap(p ports.Requester) ports.Requester {
	for i := len(c.middleware) - 1; i >= 0; i-- {
		p = c.middleware[i](p)
	}
	return p
}
