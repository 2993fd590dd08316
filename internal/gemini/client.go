// Package gemini provides a minimal client for the Gemini
// generateContent REST API. One request, one text reply: no streaming,
// no retries, no tool use.
package gemini

import (
	"context"
	"time"
)

// Blob is a media attachment inlined into a request part.
type Blob struct {
	MIMEType string
	Data     []byte
}

// Part is one piece of a conversation turn: text, an attachment, or both.
type Part struct {
	InlineData *Blob
	Text       string
}

// Request describes a single-shot generation call. SystemPrompt and
// Ack are replayed as the first user/model turns so the instruction
// travels with every request; Parts form the user's new turn.
type Request struct {
	SystemPrompt string
	Ack          string
	Parts        []Part
}

// Client is the boundary to the hosted generation service. The reply
// is a single text blob; errors are terminal for the turn.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Config holds the settings for the HTTP client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

const (
	defaultModel   = "gemini-2.0-flash"
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultTimeout = 60 * time.Second
)
