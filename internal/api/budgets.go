package api

import (
	"time"

	"github.com/duitku/duitku/internal/budget"
	"github.com/duitku/duitku/internal/category"
	"github.com/duitku/duitku/internal/model"
	"github.com/duitku/duitku/internal/service"
	"github.com/gin-gonic/gin"
)

// UpsertBudgetRequest creates or replaces one category budget.
type UpsertBudgetRequest struct {
	Category string `json:"category" binding:"required"`
	Period   string `json:"period"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
}

// handleListBudgets returns each budget with its standing in the
// current window.
func (s *Server) handleListBudgets(c *gin.Context) {
	userID := currentUser(c)
	ctx := c.Request.Context()

	budgets, err := s.storage.ListBudgets(ctx, userID)
	if err != nil {
		fail(c, err)
		return
	}

	transactions, err := s.storage.ListTransactions(ctx, userID, service.TransactionFilter{})
	if err != nil {
		fail(c, err)
		return
	}

	Success(c, budget.Evaluate(budgets, transactions, time.Now()))
}

func (s *Server) handleUpsertBudget(c *gin.Context) {
	userID := currentUser(c)

	var req UpsertBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "category and a positive amount are required")
		return
	}
	if !category.Known(req.Category) {
		BadRequest(c, "unknown category")
		return
	}

	b := &model.Budget{
		UserID:   userID,
		Category: req.Category,
		Amount:   req.Amount,
		Period:   model.Period(req.Period),
	}
	if err := s.storage.UpsertBudget(c.Request.Context(), b); err != nil {
		fail(c, err)
		return
	}
	Success(c, b)
}

func (s *Server) handleDeleteBudget(c *gin.Context) {
	if err := s.storage.DeleteBudget(c.Request.Context(), currentUser(c), c.Param("category")); err != nil {
		fail(c, err)
		return
	}
	Success(c, nil)
}
