package domain

import (
	"errors"
	"fmt"
)

// ActionKind identifies an operator control action.
type ActionKind string

const (
	ActionCancel  ActionKind = "cancel"
	ActionUndo    ActionKind = "undo"
	ActionRestart ActionKind = "restart"
)

// Action is a control action raised by the operator through a meta-command.
// N is the number of answers to undo, or the number of answers to keep on restart.
type Action struct {
	Kind ActionKind
	N    int
}

func (a Action) String() string {
	if a.Kind == ActionCancel {
		return string(a.Kind)
	}
	return fmt.Sprintf("%s(%d)", a.Kind, a.N)
}

// ActionError carries an Action up to the session driver.
type ActionError struct {
	Action Action
}

func (e *ActionError) Error() string {
	return "user action: " + e.Action.String()
}

// Cancel aborts the session.
func Cancel() error { return &ActionError{Action: Action{Kind: ActionCancel}} }

// Undo discards the last n answers.
func Undo(n int) error { return &ActionError{Action: Action{Kind: ActionUndo, N: n}} }

// Restart keeps only the first n answers.
func Restart(n int) error { return &ActionError{Action: Action{Kind: ActionRestart, N: n}} }

// AsAction extracts the Action carried by err, if any.
func AsAction(err error) (Action, bool) {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Action, true
	}
	return Action{}, false
}

// IsCancel reports whether err is a Cancel action.
func IsCancel(err error) bool {
	a, ok := AsAction(err)
	return ok && a.Kind == ActionCancel
}
