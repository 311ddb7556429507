// Analysis HTTP handler: triggers the external operational summary.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frotaops/go-fleet-backend/internal/services"
	"github.com/frotaops/go-fleet-backend/internal/stats"
)

// AnalysisResponse wraps the collaborator's text. The analysis field also
// carries the fixed "not configured" / "connection error" strings, which are
// ordinary results from the caller's point of view.
type AnalysisResponse struct {
	Analysis string        `json:"analysis"`
	Stats    stats.Summary `json:"stats"`
}

// RunAnalysis summarizes the current collection through the external
// text-generation service. Only one analysis may be in flight; a concurrent
// trigger is rejected with 409 rather than queued.
func (h *Handlers) RunAnalysis(c *gin.Context) {
	records := h.repo.List()
	text, err := h.analyzer.Analyze(c.Request.Context(), records)
	if err != nil {
		if errors.Is(err, services.ErrAnalysisBusy) {
			fail(c, http.StatusConflict, ErrCodeAnalysisBusy, "analysis already in progress")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "analysis failed")
		return
	}
	ok(c, http.StatusOK, AnalysisResponse{Analysis: text, Stats: stats.Compute(records)})
}

// GetStats returns the aggregate summary of the current collection.
func (h *Handlers) GetStats(c *gin.Context) {
	ok(c, http.StatusOK, stats.Compute(h.repo.List()))
}
