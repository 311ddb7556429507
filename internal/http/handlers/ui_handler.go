// View controller HTTP handlers. These expose the tracker's UI state
// machine (active view, editing slot) so a thin front-end can drive
// create-or-update flows without re-implementing the transition rules.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frotaops/go-fleet-backend/internal/app"
	"github.com/frotaops/go-fleet-backend/internal/domain"
	"github.com/frotaops/go-fleet-backend/internal/repo"
)

// SelectViewRequest is the JSON payload for switching views.
type SelectViewRequest struct {
	View app.View `json:"view" binding:"required"`
}

// GetUIState returns the current view and editing slot.
func (h *Handlers) GetUIState(c *gin.Context) {
	ok(c, http.StatusOK, h.ctrl.State())
}

// SelectView switches the active view unconditionally.
func (h *Handlers) SelectView(c *gin.Context) {
	var req SelectViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if err := h.ctrl.SelectView(req.View); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown view")
		return
	}
	ok(c, http.StatusOK, h.ctrl.State())
}

// BeginCreate clears the editing slot and opens the edit form.
func (h *Handlers) BeginCreate(c *gin.Context) {
	h.ctrl.BeginCreate()
	ok(c, http.StatusOK, h.ctrl.State())
}

// BeginEdit loads a record into the editing slot and opens the edit form.
func (h *Handlers) BeginEdit(c *gin.Context) {
	if err := h.ctrl.BeginEdit(c.Param("id")); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "request not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not open editor")
		return
	}
	ok(c, http.StatusOK, h.ctrl.State())
}

// SubmitForm applies the edit form: update when a record is being edited,
// create otherwise. A validation fault leaves the controller state untouched
// and no partial record is created.
func (h *Handlers) SubmitForm(c *gin.Context) {
	var in domain.RequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	rec, err := h.ctrl.Submit(c.Request.Context(), in)
	if err != nil {
		if failValidation(c, err) {
			return
		}
		if errors.Is(err, repo.ErrNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "request not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not submit form")
		return
	}
	ok(c, http.StatusOK, gin.H{"request": rec, "state": h.ctrl.State()})
}

// CancelForm clears the editing slot and returns to the list.
func (h *Handlers) CancelForm(c *gin.Context) {
	h.ctrl.Cancel()
	ok(c, http.StatusOK, h.ctrl.State())
}
