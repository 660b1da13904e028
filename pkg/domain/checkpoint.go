package domain

import "time"

// Checkpoint is the persisted answer log of a resumable session.
// Envelope holds the sealed form of Answers when the store is encrypted.
type Checkpoint struct {
	SessionID string    `json:"session_id"`
	TypeName  string    `json:"type_name,omitempty"`
	Answers   []string  `json:"answers,omitempty"`
	Envelope  string    `json:"envelope,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCheckpoint creates a checkpoint holding a copy of answers.
func NewCheckpoint(sessionID, typeName string, answers []string) *Checkpoint {
	return &Checkpoint{
		SessionID: sessionID,
		TypeName:  typeName,
		Answers:   append([]string(nil), answers...),
		UpdatedAt: time.Now().UTC(),
	}
}

// Clone returns a deep copy of the checkpoint.
func (c *Checkpoint) Clone() *Checkpoint {
	cp := *c
	cp.Answers = append([]string(nil), c.Answers...)
	return &cp
}
