// Package app implements the view controller: the process-wide UI state of
// the tracker (active view plus the "currently editing" slot), owned by one
// struct with a single mutation entry point per transition. It mediates
// between form submissions and the repository so that create-vs-update is
// decided by whether the editing slot holds a record.
package app

import (
	"context"
	"errors"
	"sync"

	"github.com/frotaops/go-fleet-backend/internal/domain"
	"github.com/frotaops/go-fleet-backend/internal/repo"
)

// View names one of the tracker's screens.
type View string

// The finite set of views.
const (
	ViewOverview View = "overview"
	ViewEdit     View = "edit"
	ViewList     View = "list"
)

// ErrUnknownView is returned when a view name is not one of the known set.
var ErrUnknownView = errors.New("unknown view")

// Valid reports whether v names a known view.
func (v View) Valid() bool {
	switch v {
	case ViewOverview, ViewEdit, ViewList:
		return true
	}
	return false
}

// State is a snapshot of the controller.
type State struct {
	View    View            `json:"view"`
	Editing *domain.Request `json:"editing,omitempty"`
}

// Controller holds the active view and the editing slot. It persists for
// the process lifetime; there is no terminal state.
// It is safe for concurrent use.
type Controller struct {
	repo *repo.RequestRepo

	mu      sync.Mutex
	view    View
	editing *domain.Request
}

// NewController starts on the overview with an empty editing slot.
func NewController(r *repo.RequestRepo) *Controller {
	return &Controller{repo: r, view: ViewOverview}
}

// State returns a copy of the current controller state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := State{View: c.view}
	if c.editing != nil {
		rec := *c.editing
		st.Editing = &rec
	}
	return st
}

// SelectView switches the active view unconditionally; there are no guards
// between views. Unknown names are rejected.
func (c *Controller) SelectView(v View) error {
	if !v.Valid() {
		return ErrUnknownView
	}
	c.mu.Lock()
	c.view = v
	c.mu.Unlock()
	return nil
}

// BeginCreate clears the editing slot and opens the edit form.
func (c *Controller) BeginCreate() {
	c.mu.Lock()
	c.editing = nil
	c.view = ViewEdit
	c.mu.Unlock()
}

// BeginEdit loads the record with the given id into the editing slot and
// opens the edit form. It returns repo.ErrNotFound when the id is unknown.
func (c *Controller) BeginEdit(id string) error {
	rec, err := c.repo.Get(id)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.editing = &rec
	c.view = ViewEdit
	c.mu.Unlock()
	return nil
}

// Submit applies the edit form: when the editing slot holds a record the
// submitted fields overwrite it (ID and CreatedAt preserved), otherwise a
// new record is created. On success the slot is cleared and the view moves
// to the list. A validation fault leaves slot and view untouched.
func (c *Controller) Submit(ctx context.Context, in domain.RequestInput) (domain.Request, error) {
	if err := in.Validate(); err != nil {
		return domain.Request{}, err
	}

	c.mu.Lock()
	editing := c.editing
	c.mu.Unlock()

	var rec domain.Request
	var err error
	if editing != nil {
		rec, err = c.repo.Update(ctx, editing.ID, fullPatch(in))
	} else {
		rec, err = c.repo.Create(ctx, in)
	}
	if err != nil {
		return domain.Request{}, err
	}

	c.mu.Lock()
	c.editing = nil
	c.view = ViewList
	c.mu.Unlock()
	return rec, nil
}

// Cancel clears the editing slot and returns to the list.
func (c *Controller) Cancel() {
	c.mu.Lock()
	c.editing = nil
	c.view = ViewList
	c.mu.Unlock()
}

// fullPatch converts a complete form submission into a patch that overwrites
// every caller-settable field.
func fullPatch(in domain.RequestInput) domain.RequestPatch {
	return domain.RequestPatch{
		ClientName:           &in.ClientName,
		ClientContact:        &in.ClientContact,
		RequestType:          &in.RequestType,
		PickupLocation:       &in.PickupLocation,
		DropoffLocation:      &in.DropoffLocation,
		PickupDate:           &in.PickupDate,
		ReturnDate:           &in.ReturnDate,
		VehicleGroup:         &in.VehicleGroup,
		AssignedDriver:       &in.AssignedDriver,
		AssignedVehiclePlate: &in.AssignedVehiclePlate,
		OperatorName:         &in.OperatorName,
		Status:               &in.Status,
		Notes:                &in.Notes,
		EstimatedCost:        &in.EstimatedCost,
	}
}
