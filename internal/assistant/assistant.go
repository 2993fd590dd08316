// Package assistant drives the record-by-chat flow: one user turn in,
// one reply plus at most one transaction candidate out. Persisting a
// candidate is a separate explicit step so callers stay in control of
// what actually lands in the ledger.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/duitku/duitku/internal/category"
	"github.com/duitku/duitku/internal/extract"
	"github.com/duitku/duitku/internal/model"
	"github.com/duitku/duitku/internal/service"
)

// DefaultHistoryLimit bounds how much session history callers load by
// default. The UI only renders the recent tail anyway.
const DefaultHistoryLimit = 50

// Result is the outcome of one processed turn. Candidate is nil when
// the reply contained no decodable transaction.
type Result struct {
	Candidate *model.Candidate
	Reply     string
	Source    model.Source
}

// Service wires the extractor to the session and transaction stores.
type Service struct {
	storage   service.Storage
	extractor *extract.Extractor
}

// NewService creates an assistant service.
func NewService(storage service.Storage, extractor *extract.Extractor) *Service {
	return &Service{storage: storage, extractor: extractor}
}

// ProcessTurn runs one turn of the assistant: it sends the user's
// message and media to the model, decodes the reply, and appends the
// user's side to the session history. It never writes a transaction;
// pair it with SaveCandidate and then RecordReply so the history row
// reflects whether the candidate actually landed in the ledger.
func (s *Service) ProcessTurn(ctx context.Context, userID string, turn extract.Turn) (*Result, error) {
	result, err := s.extractor.ExtractTurn(ctx, turn)
	if err != nil {
		return nil, err
	}

	userContent := strings.TrimSpace(turn.Message)
	if userContent == "" && turn.Media != nil {
		userContent = fmt.Sprintf("[%s]", turn.Media.MIMEType)
	}
	if histErr := s.storage.AppendChatMessage(ctx, &model.ChatMessage{
		UserID:  userID,
		Role:    model.RoleUser,
		Content: userContent,
	}); histErr != nil {
		slog.Warn("failed to record user message", "user", userID, "error", histErr)
	}

	return &Result{
		Reply:     result.Reply,
		Candidate: result.Candidate,
		Source:    result.Source,
	}, nil
}

// RecordReply appends the assistant's reply to the session history.
// Callers pass saved only after the persistence attempt resolved, so
// a decoded candidate whose save failed is recorded as unsaved.
func (s *Service) RecordReply(ctx context.Context, userID, reply string, saved bool) {
	if err := s.storage.AppendChatMessage(ctx, &model.ChatMessage{
		UserID:  userID,
		Role:    model.RoleAssistant,
		Content: reply,
		Saved:   saved,
	}); err != nil {
		slog.Warn("failed to record assistant reply", "user", userID, "error", err)
	}
}

// SaveCandidate persists a decoded candidate as a transaction of the
// given user. The candidate's date falls back to the save time.
func (s *Service) SaveCandidate(ctx context.Context, userID string, candidate *model.Candidate, source model.Source) (*model.Transaction, error) {
	if candidate == nil {
		return nil, fmt.Errorf("no candidate to save")
	}

	txn := &model.Transaction{
		UserID:      userID,
		Type:        candidate.Type,
		Category:    category.Normalize(candidate.Category),
		Amount:      candidate.Amount,
		Description: candidate.Description,
		Source:      source,
	}
	if candidate.Date != nil {
		txn.Date = *candidate.Date
	} else {
		txn.Date = time.Now()
	}

	if err := s.storage.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to save candidate: %w", err)
	}

	slog.Info("saved assistant transaction",
		"user", userID,
		"type", txn.Type,
		"category", txn.Category,
		"amount", txn.Amount,
		"source", txn.Source)
	return txn, nil
}

// History loads the recent tail of the user's session, oldest first.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.storage.GetChatHistory(ctx, userID, limit)
}

// ClearHistory wipes the user's session.
func (s *Service) ClearHistory(ctx context.Context, userID string) error {
	return s.storage.ClearChatHistory(ctx, userID)
}
