package api

import (
	"time"

	"github.com/duitku/duitku/internal/analytics"
	"github.com/duitku/duitku/internal/model"
	"github.com/duitku/duitku/internal/service"
	"github.com/gin-gonic/gin"
)

// SummaryResponse is the dashboard payload: filtered totals and
// breakdown plus the month-over-month expense change.
type SummaryResponse struct {
	Summary         analytics.Summary         `json:"summary"`
	Breakdown       []analytics.CategoryShare `json:"breakdown"`
	MonthComparison float64                   `json:"monthComparison"`
}

func parseFilter(c *gin.Context) (analytics.Filter, bool) {
	filter := analytics.Filter{Range: analytics.Range(c.DefaultQuery("range", string(analytics.RangeAll)))}

	switch filter.Range {
	case analytics.RangeAll, analytics.Range7Days, analytics.Range30Days, analytics.Range90Days:
		return filter, true
	case analytics.RangeCustom:
	default:
		BadRequest(c, "range must be all, 7d, 30d, 90d or custom")
		return filter, false
	}

	start, err := time.ParseInLocation("2006-01-02", c.Query("start"), time.Local)
	if err != nil {
		BadRequest(c, "custom range requires start=YYYY-MM-DD")
		return filter, false
	}
	end, err := time.ParseInLocation("2006-01-02", c.Query("end"), time.Local)
	if err != nil {
		BadRequest(c, "custom range requires end=YYYY-MM-DD")
		return filter, false
	}
	filter.Start = start
	filter.End = end
	return filter, true
}

func (s *Server) handleAnalyticsSummary(c *gin.Context) {
	userID := currentUser(c)

	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	transactions, err := s.storage.ListTransactions(c.Request.Context(), userID, service.TransactionFilter{})
	if err != nil {
		fail(c, err)
		return
	}

	now := time.Now()
	filtered := filter.Apply(transactions, now)
	Success(c, SummaryResponse{
		Summary:         analytics.Summarize(filtered),
		Breakdown:       analytics.Breakdown(filtered),
		MonthComparison: analytics.MonthComparison(transactions, now),
	})
}

// handleAnalyticsTrends returns the trend series. The series ignores
// the dashboard's date filter on purpose; its span is fixed by the
// requested bucketing.
func (s *Server) handleAnalyticsTrends(c *gin.Context) {
	userID := currentUser(c)

	rng := analytics.TrendRange(c.DefaultQuery("range", string(analytics.TrendDaily)))
	switch rng {
	case analytics.TrendDaily, analytics.TrendWeekly, analytics.TrendMonthly:
	default:
		BadRequest(c, "range must be daily, weekly or monthly")
		return
	}

	txType := model.TransactionType(c.DefaultQuery("type", string(model.TypeExpense)))
	if !txType.Valid() {
		BadRequest(c, "type must be income or expense")
		return
	}

	transactions, err := s.storage.ListTransactions(c.Request.Context(), userID, service.TransactionFilter{})
	if err != nil {
		fail(c, err)
		return
	}

	Success(c, analytics.Trend(transactions, txType, rng, time.Now()))
}
