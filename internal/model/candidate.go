package model

import "time"

// Candidate is an ephemeral transaction guess decoded from an
// assistant reply. It is never stored as its own entity: it is either
// promoted into a Transaction by an explicit save step or discarded.
type Candidate struct {
	Date        *time.Time      `json:"date"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      int64           `json:"amount"`
}

// ChatRole identifies who produced a chat message.
type ChatRole string

const (
	// RoleUser is a message typed (or recorded) by the user.
	RoleUser ChatRole = "user"
	// RoleAssistant is a model reply.
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of a user's assistant session. History is
// session-scoped per user and loaded/saved explicitly at session
// boundaries.
type ChatMessage struct {
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `json:"user_id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	ID        int64     `json:"id"`
	Saved     bool      `json:"saved"`
}
