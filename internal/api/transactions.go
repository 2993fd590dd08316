package api

import (
	"strconv"
	"time"

	"github.com/duitku/duitku/internal/model"
	"github.com/duitku/duitku/internal/service"
	"github.com/gin-gonic/gin"
)

// CreateTransactionRequest is a manual ledger entry.
type CreateTransactionRequest struct {
	Type        string `json:"type" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
}

// UpdateTransactionRequest edits an existing entry. Only present
// fields change.
type UpdateTransactionRequest struct {
	Amount      *int64  `json:"amount"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
}

func (s *Server) handleListTransactions(c *gin.Context) {
	userID := currentUser(c)

	var filter service.TransactionFilter
	if raw := c.Query("start"); raw != "" {
		start, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			BadRequest(c, "start must be YYYY-MM-DD")
			return
		}
		filter.StartDate = &start
	}
	if raw := c.Query("end"); raw != "" {
		end, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			BadRequest(c, "end must be YYYY-MM-DD")
			return
		}
		// Inclusive end of day.
		end = end.Add(24*time.Hour - time.Second)
		filter.EndDate = &end
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			BadRequest(c, "limit must be a non-negative integer")
			return
		}
		filter.Limit = limit
	}

	transactions, err := s.storage.ListTransactions(c.Request.Context(), userID, filter)
	if err != nil {
		fail(c, err)
		return
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	Success(c, transactions)
}

func (s *Server) handleCreateTransaction(c *gin.Context) {
	userID := currentUser(c)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	txn := &model.Transaction{
		UserID:      userID,
		Type:        model.TransactionType(req.Type),
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Source:      model.SourceManual,
	}
	if !txn.Type.Valid() {
		BadRequest(c, "type must be income or expense")
		return
	}
	if req.Date != "" {
		date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			BadRequest(c, "date must be YYYY-MM-DD")
			return
		}
		txn.Date = date
	}

	if err := s.storage.SaveTransaction(c.Request.Context(), txn); err != nil {
		fail(c, err)
		return
	}
	Success(c, txn)
}

func (s *Server) handleUpdateTransaction(c *gin.Context) {
	userID := currentUser(c)
	id := c.Param("id")

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}
	if req.Amount != nil && *req.Amount <= 0 {
		BadRequest(c, "amount must be positive")
		return
	}

	update := service.TransactionUpdate{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}
	if req.Date != nil {
		date, err := time.ParseInLocation("2006-01-02", *req.Date, time.Local)
		if err != nil {
			BadRequest(c, "date must be YYYY-MM-DD")
			return
		}
		update.Date = &date
	}

	if err := s.storage.UpdateTransaction(c.Request.Context(), userID, id, update); err != nil {
		fail(c, err)
		return
	}

	txn, err := s.storage.GetTransactionByID(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, err)
		return
	}
	Success(c, txn)
}

func (s *Server) handleDeleteTransaction(c *gin.Context) {
	if err := s.storage.DeleteTransaction(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	Success(c, nil)
}
