package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/duitku/duitku/internal/report"
	"github.com/duitku/duitku/internal/service"
	"github.com/gin-gonic/gin"
)

// handleExport streams the user's whole ledger as a CSV download.
func (s *Server) handleExport(c *gin.Context) {
	userID := currentUser(c)

	transactions, err := s.storage.ListTransactions(c.Request.Context(), userID, service.TransactionFilter{})
	if err != nil {
		fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, transactions); err != nil {
		if errors.Is(err, report.ErrNoTransactions) {
			BadRequest(c, "no transactions to export")
			return
		}
		fail(c, err)
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", report.ExportFilename(time.Now())))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// handleDeleteAllData wipes the user's transaction history.
func (s *Server) handleDeleteAllData(c *gin.Context) {
	if err := s.storage.DeleteAllTransactions(c.Request.Context(), currentUser(c)); err != nil {
		fail(c, err)
		return
	}
	Success(c, nil)
}
