// Request HTTP handlers.
//
// This file exposes REST endpoints for request records:
//   - GET    /requests          (list, filtered + paginated)
//   - POST   /requests          (create)
//   - GET    /requests/{id}     (fetch)
//   - PATCH  /requests/{id}     (partial update)
//   - DELETE /requests/{id}     (delete)
//   - GET    /drivers           (distinct assigned drivers)
//
// Handlers are transport-thin: they validate input, call the repository or
// controller, and translate outcomes into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frotaops/go-fleet-backend/internal/app"
	"github.com/frotaops/go-fleet-backend/internal/domain"
	"github.com/frotaops/go-fleet-backend/internal/repo"
	"github.com/frotaops/go-fleet-backend/internal/utils"
)

// Analyzer is the collaborator contract consumed by the analysis endpoint.
type Analyzer interface {
	// Analyze summarizes records externally; fixed fallback strings are
	// returned as ordinary results, ErrAnalysisBusy when one is in flight.
	Analyze(ctx context.Context, records []domain.Request) (string, error)
}

// Handlers groups the HTTP endpoints of the tracker. It depends on the
// repository, the view controller, and the analysis collaborator.
type Handlers struct {
	repo     *repo.RequestRepo
	ctrl     *app.Controller
	analyzer Analyzer
}

// New constructs a Handlers instance bound to the given dependencies.
func New(r *repo.RequestRepo, ctrl *app.Controller, analyzer Analyzer) *Handlers {
	return &Handlers{repo: r, ctrl: ctrl, analyzer: analyzer}
}

//
// DTOs
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// ListRequestsResponse wraps a page of filtered requests.
type ListRequestsResponse struct {
	Requests   []domain.Request `json:"requests"`
	Pagination Pagination       `json:"pagination"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params.
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// filterQuery builds the repository filter from query params. Status and
// type accept neutral tags or legacy Portuguese labels; empty and "ALL" are
// pass-through. An unknown status/type value is reported as a bad request.
func filterQuery(c *gin.Context) (repo.Query, bool) {
	q := repo.Query{
		Search: c.Query("q"),
		Driver: c.Query("driver"),
	}
	if v := c.Query("status"); v != "" && v != repo.FilterAll {
		s, okv := domain.ParseStatus(v)
		if !okv {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown status filter")
			return q, false
		}
		q.Status = string(s)
	}
	if v := c.Query("type"); v != "" && v != repo.FilterAll {
		t, okv := domain.ParseRequestType(v)
		if !okv {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown type filter")
			return q, false
		}
		q.Type = string(t)
	}
	return q, true
}

// failValidation maps a domain validation error onto the HTTP envelope.
func failValidation(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, domain.ErrMissingRequired),
		errors.Is(err, domain.ErrInvalidType),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrNegativeCost):
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidation, err.Error())
		return true
	}
	return false
}

//
// Endpoints
//

// ListRequests returns the filtered collection, newest first, paginated.
func (h *Handlers) ListRequests(c *gin.Context) {
	q, okq := filterQuery(c)
	if !okq {
		return
	}
	records := h.repo.Filter(q)

	page, pageSize := clampPagination(c)
	total := len(records)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	ok(c, http.StatusOK, ListRequestsResponse{
		Requests: records[start:end],
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// CreateRequest registers a new request record.
func (h *Handlers) CreateRequest(c *gin.Context) {
	var in domain.RequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	rec, err := h.repo.Create(c.Request.Context(), in)
	if err != nil {
		if failValidation(c, err) {
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not create request")
		return
	}
	ok(c, http.StatusCreated, rec)
}

// GetRequest fetches a single record by id.
func (h *Handlers) GetRequest(c *gin.Context) {
	rec, err := h.repo.Get(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "request not found")
		return
	}
	ok(c, http.StatusOK, rec)
}

// UpdateRequest merges a partial update into an existing record.
func (h *Handlers) UpdateRequest(c *gin.Context) {
	var patch domain.RequestPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	rec, err := h.repo.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "request not found")
			return
		}
		if failValidation(c, err) {
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not update request")
		return
	}
	ok(c, http.StatusOK, rec)
}

// DeleteRequest removes a record. Destructive intent is confirmed by the
// client before calling; the server just reports whether anything existed.
func (h *Handlers) DeleteRequest(c *gin.Context) {
	if !h.repo.Delete(c.Request.Context(), c.Param("id")) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "request not found")
		return
	}
	noContent(c)
}

// ListDrivers returns the distinct assigned drivers, used to populate the
// driver filter.
func (h *Handlers) ListDrivers(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"drivers": h.repo.Drivers()})
}
