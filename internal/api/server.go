// Package api exposes the tracker over HTTP for the mobile client.
// Authentication is out of scope; the trusted X-User-ID header scopes
// every request to one user's data.
package api

import (
	"log/slog"
	"net/http"

	"github.com/duitku/duitku/internal/assistant"
	"github.com/duitku/duitku/internal/service"
	"github.com/gin-gonic/gin"
)

const userKey = "userID"

// Server is the HTTP API over the storage and assistant services.
type Server struct {
	storage   service.Storage
	assistant *assistant.Service
	router    *gin.Engine
}

// NewServer builds the router.
func NewServer(storage service.Storage, assistantSvc *assistant.Service) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		storage:   storage,
		assistant: assistantSvc,
		router:    gin.New(),
	}
	s.router.Use(gin.Recovery())

	v1 := s.router.Group("/api/v1")
	v1.Use(requireUser())
	{
		v1.POST("/chat", s.handleChat)
		v1.GET("/chat/history", s.handleChatHistory)
		v1.DELETE("/chat/history", s.handleClearChatHistory)

		v1.GET("/transactions", s.handleListTransactions)
		v1.POST("/transactions", s.handleCreateTransaction)
		v1.PUT("/transactions/:id", s.handleUpdateTransaction)
		v1.DELETE("/transactions/:id", s.handleDeleteTransaction)

		v1.GET("/budgets", s.handleListBudgets)
		v1.PUT("/budgets", s.handleUpsertBudget)
		v1.DELETE("/budgets/:category", s.handleDeleteBudget)

		v1.GET("/analytics/summary", s.handleAnalyticsSummary)
		v1.GET("/analytics/trends", s.handleAnalyticsTrends)

		v1.GET("/export", s.handleExport)
		v1.DELETE("/data", s.handleDeleteAllData)
	}

	return s
}

// Handler returns the router for serving and for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	slog.Info("starting API server", "addr", addr)
	return s.router.Run(addr)
}

// requireUser rejects requests without the X-User-ID header and puts
// the id in the request context for handlers.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			Error(c, http.StatusUnauthorized, "X-User-ID header is required")
			c.Abort()
			return
		}
		c.Set(userKey, userID)
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(userKey)
}
