package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/duitku/duitku/internal/model"
)

// GetChatHistory loads the most recent limit messages of a user's
// assistant session, oldest first. Limit <= 0 loads everything.
func (s *SQLiteStorage) GetChatHistory(ctx context.Context, userID string, limit int) ([]model.ChatMessage, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, role, content, saved, created_at
		FROM chat_messages
		WHERE user_id = ?
		ORDER BY id DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []model.ChatMessage
	for rows.Next() {
		var msg model.ChatMessage
		var role string
		var saved int
		if err := rows.Scan(&msg.ID, &msg.UserID, &role, &msg.Content, &saved, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		msg.Role = model.ChatRole(role)
		msg.Saved = saved != 0
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat history: %w", err)
	}

	// Reverse into chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// AppendChatMessage appends one message to a user's session.
func (s *SQLiteStorage) AppendChatMessage(ctx context.Context, msg *model.ChatMessage) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if msg == nil {
		return fmt.Errorf("chat message cannot be nil")
	}
	if err := validateString(msg.UserID, "userID"); err != nil {
		return err
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	saved := 0
	if msg.Saved {
		saved = 1
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (user_id, role, content, saved, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		msg.UserID, string(msg.Role), msg.Content, saved, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}

	if id, idErr := result.LastInsertId(); idErr == nil {
		msg.ID = id
	}
	return nil
}

// ClearChatHistory deletes a user's whole assistant session.
func (s *SQLiteStorage) ClearChatHistory(ctx context.Context, userID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM chat_messages WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}
