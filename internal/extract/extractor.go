package extract

import (
	"context"
	"log/slog"
	"strings"

	"github.com/duitku/duitku/internal/common"
	"github.com/duitku/duitku/internal/gemini"
	"github.com/duitku/duitku/internal/model"
)

// Media is a user attachment: a receipt photo or a voice note.
type Media struct {
	Data     []byte
	MIMEType string
}

// Turn is one user input to the assistant. At least one of Message and
// Media must be present.
type Turn struct {
	Media   *Media
	Message string
}

// Result is the outcome of one extraction turn. Candidate is nil when
// the reply carried no decodable transaction; Reply is then the full
// model text, unmodified.
type Result struct {
	Candidate *model.Candidate
	Reply     string
	Source    model.Source
}

// Extractor converts one user turn into at most one transaction
// candidate using the generation service. It never asks a clarifying
// question and never retries.
type Extractor struct {
	client gemini.Client
}

// NewExtractor creates an extractor on top of a generation client.
func NewExtractor(client gemini.Client) *Extractor {
	return &Extractor{client: client}
}

// ExtractTurn sends the turn to the generation service and decodes the
// reply. Upstream failures are terminal for the turn; an undecodable
// reply degrades to text-only and is not an error.
func (e *Extractor) ExtractTurn(ctx context.Context, turn Turn) (Result, error) {
	if strings.TrimSpace(turn.Message) == "" && turn.Media == nil {
		return Result{}, common.ErrEmptyTurn
	}

	message := turn.Message
	if strings.TrimSpace(message) == "" {
		message = DefaultMessage
	}

	parts := []gemini.Part{{Text: message}}
	source := model.SourceChat
	if turn.Media != nil {
		parts = append(parts, gemini.Part{InlineData: &gemini.Blob{
			MIMEType: turn.Media.MIMEType,
			Data:     turn.Media.Data,
		}})
		switch {
		case strings.HasPrefix(turn.Media.MIMEType, "image/"):
			parts = append(parts, gemini.Part{Text: imageHint})
			source = model.SourceOCR
		case strings.HasPrefix(turn.Media.MIMEType, "audio/"):
			parts = append(parts, gemini.Part{Text: audioHint})
			source = model.SourceVoice
		}
	}

	text, err := e.client.Generate(ctx, gemini.Request{
		SystemPrompt: SystemPrompt(),
		Ack:          Ack,
		Parts:        parts,
	})
	if err != nil {
		return Result{}, err
	}

	candidate, reply := Decode(text)
	if candidate == nil {
		slog.Debug("no transaction block in reply", "reply_len", len(text))
	}

	return Result{Reply: reply, Candidate: candidate, Source: source}, nil
}
