package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPassStart EventType = "pass_start"
	EventPassEnd   EventType = "pass_end"
	EventAction    EventType = "action"
	EventAccepted  EventType = "accepted"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// PassEvent describes one walk over the value. Replayed is the number of
// logged answers fed back before live prompting resumed.
type PassEvent struct {
	EventBase
	Pass     int   `json:"pass"`
	Replayed int   `json:"replayed"`
	Err      error `json:"-"`
}

// ActionEvent describes a control action or a recovered failure handled by the driver.
type ActionEvent struct {
	EventBase
	Action Action `json:"action"`
	Reason string `json:"reason,omitempty"`
}

// LifecycleHooks defines callbacks for session observability.
type LifecycleHooks struct {
	OnPassStart func(context.Context, *PassEvent)
	OnPassEnd   func(context.Context, *PassEvent)
	OnAction    func(context.Context, *ActionEvent)
	OnAccepted  func(context.Context, *PassEvent)
}
