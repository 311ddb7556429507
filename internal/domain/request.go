// Package domain defines the core data model of the fleet backend: the
// vehicle request record, its status and type enumerations, and the seed
// dataset used when no persisted data exists.
//
// Enumerations are stored as language-neutral tags (e.g. "PENDING",
// "RENTAL"); the Portuguese display labels used by exports and the analysis
// prompt live in a separate lookup so the storage format stays independent
// of the display locale.
package domain

import (
	"errors"
	"time"
)

// Status is the lifecycle state of a request, stored as a neutral tag.
type Status string

// Request lifecycle states.
const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// AllStatuses lists every valid status in display order.
var AllStatuses = []Status{
	StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled,
}

// statusLabels maps neutral tags to the Portuguese display strings used by
// the operator-facing exports and the analysis prompt.
var statusLabels = map[Status]string{
	StatusPending:    "Aguarda confirmação",
	StatusConfirmed:  "Confirmado",
	StatusInProgress: "Em Curso",
	StatusCompleted:  "Concluído",
	StatusCancelled:  "Cancelado",
}

// Label returns the Portuguese display string for s, or the raw tag when the
// status is unknown.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is one of the known status tags.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseStatus resolves a status from either a neutral tag or a legacy
// Portuguese label (earlier datasets persisted the labels directly).
// It returns false when the value matches neither.
func ParseStatus(v string) (Status, bool) {
	if s := Status(v); s.Valid() {
		return s, true
	}
	for tag, label := range statusLabels {
		if v == label {
			return tag, true
		}
	}
	return "", false
}

// RequestType distinguishes self-drive rentals from driven transfers.
type RequestType string

// Request types.
const (
	TypeRental   RequestType = "RENTAL"
	TypeTransfer RequestType = "TRANSFER"
)

// AllRequestTypes lists every valid request type.
var AllRequestTypes = []RequestType{TypeRental, TypeTransfer}

var typeLabels = map[RequestType]string{
	TypeRental:   "Aluguer",
	TypeTransfer: "Transfer",
}

// Label returns the Portuguese display string for t, or the raw tag when the
// type is unknown.
func (t RequestType) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Valid reports whether t is one of the known type tags.
func (t RequestType) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// ParseRequestType resolves a request type from a neutral tag or a legacy
// Portuguese label. It returns false when the value matches neither.
func ParseRequestType(v string) (RequestType, bool) {
	if t := RequestType(v); t.Valid() {
		return t, true
	}
	for tag, label := range typeLabels {
		if v == label {
			return tag, true
		}
	}
	return "", false
}

// Request is one unit of fleet work (rental or transfer) registered by an
// operator on behalf of a client.
//
// ID and CreatedAt are assigned by the repository at creation time and are
// immutable afterwards. JSON tags match the persisted snapshot shape.
type Request struct {
	ID                   string      `json:"id"`
	CreatedAt            time.Time   `json:"createdAt"`
	ClientName           string      `json:"clientName"`
	ClientContact        string      `json:"clientContact"`
	RequestType          RequestType `json:"requestType"`
	PickupLocation       string      `json:"pickupLocation"`
	DropoffLocation      string      `json:"dropoffLocation"`
	PickupDate           string      `json:"pickupDate"`
	ReturnDate           string      `json:"returnDate"` // or dropoff time for transfers
	VehicleGroup         string      `json:"vehicleGroup"`
	AssignedDriver       string      `json:"assignedDriver,omitempty"`
	AssignedVehiclePlate string      `json:"assignedVehiclePlate,omitempty"`
	OperatorName         string      `json:"operatorName"`
	Status               Status      `json:"status"`
	Notes                string      `json:"notes,omitempty"`
	EstimatedCost        float64     `json:"estimatedCost,omitempty"`
}

// RequestInput carries the caller-settable fields of a request. ID and
// CreatedAt are deliberately absent: the repository owns them.
type RequestInput struct {
	ClientName           string      `json:"clientName"`
	ClientContact        string      `json:"clientContact"`
	RequestType          RequestType `json:"requestType"`
	PickupLocation       string      `json:"pickupLocation"`
	DropoffLocation      string      `json:"dropoffLocation"`
	PickupDate           string      `json:"pickupDate"`
	ReturnDate           string      `json:"returnDate"`
	VehicleGroup         string      `json:"vehicleGroup"`
	AssignedDriver       string      `json:"assignedDriver"`
	AssignedVehiclePlate string      `json:"assignedVehiclePlate"`
	OperatorName         string      `json:"operatorName"`
	Status               Status      `json:"status"`
	Notes                string      `json:"notes"`
	EstimatedCost        float64     `json:"estimatedCost"`
}

// Validation errors returned by RequestInput.Validate.
var (
	ErrMissingRequired = errors.New("required field missing")
	ErrInvalidType     = errors.New("invalid request type")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrNegativeCost    = errors.New("estimated cost must not be negative")
)

// Validate checks required-field presence and enumeration validity, and
// normalizes the input: an empty status defaults to PENDING, and the
// assigned driver is cleared for rentals (self-drive by convention).
func (in *RequestInput) Validate() error {
	if in.ClientName == "" || in.ClientContact == "" ||
		in.PickupLocation == "" || in.DropoffLocation == "" ||
		in.OperatorName == "" {
		return ErrMissingRequired
	}
	if !in.RequestType.Valid() {
		return ErrInvalidType
	}
	if in.Status == "" {
		in.Status = StatusPending
	}
	if !in.Status.Valid() {
		return ErrInvalidStatus
	}
	if in.EstimatedCost < 0 {
		return ErrNegativeCost
	}
	if in.RequestType == TypeRental {
		in.AssignedDriver = ""
	}
	return nil
}
