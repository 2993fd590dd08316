package api

import (
	"encoding/base64"
	"log/slog"

	"github.com/duitku/duitku/internal/extract"
	"github.com/duitku/duitku/internal/model"
	"github.com/gin-gonic/gin"
)

// ChatRequest is one assistant turn. Media carries a receipt photo or
// voice note as base64.
type ChatRequest struct {
	Message string `json:"message"`
	Media   *struct {
		MIMEType string `json:"mimeType"`
		Data     string `json:"data"`
	} `json:"media"`
}

// ChatResponse returns the assistant reply plus the stored transaction
// when one was extracted and saved. Saved is false when a candidate
// was decoded but persisting it failed; the reply still stands.
type ChatResponse struct {
	Transaction *model.Transaction `json:"transaction,omitempty"`
	Reply       string             `json:"reply"`
	Saved       bool               `json:"saved"`
}

func (s *Server) handleChat(c *gin.Context) {
	userID := currentUser(c)

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	turn := extract.Turn{Message: req.Message}
	if req.Media != nil {
		data, err := base64.StdEncoding.DecodeString(req.Media.Data)
		if err != nil {
			BadRequest(c, "media data must be base64")
			return
		}
		turn.Media = &extract.Media{Data: data, MIMEType: req.Media.MIMEType}
	}

	result, err := s.assistant.ProcessTurn(c.Request.Context(), userID, turn)
	if err != nil {
		fail(c, err)
		return
	}

	resp := ChatResponse{Reply: result.Reply}
	if result.Candidate != nil {
		txn, saveErr := s.assistant.SaveCandidate(c.Request.Context(), userID, result.Candidate, result.Source)
		if saveErr != nil {
			slog.Warn("failed to save extracted transaction", "user", userID, "error", saveErr)
		} else {
			resp.Transaction = txn
			resp.Saved = true
		}
	}
	s.assistant.RecordReply(c.Request.Context(), userID, result.Reply, resp.Saved)

	Success(c, resp)
}

func (s *Server) handleChatHistory(c *gin.Context) {
	history, err := s.assistant.History(c.Request.Context(), currentUser(c), 0)
	if err != nil {
		fail(c, err)
		return
	}
	if history == nil {
		history = []model.ChatMessage{}
	}
	Success(c, history)
}

func (s *Server) handleClearChatHistory(c *gin.Context) {
	if err := s.assistant.ClearHistory(c.Request.Context(), currentUser(c)); err != nil {
		fail(c, err)
		return
	}
	Success(c, nil)
}
