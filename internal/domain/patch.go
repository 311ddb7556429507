package domain

// RequestPatch describes a partial update to a request. Nil fields are left
// untouched; ID and CreatedAt cannot be patched.
type RequestPatch struct {
	ClientName           *string      `json:"clientName"`
	ClientContact        *string      `json:"clientContact"`
	RequestType          *RequestType `json:"requestType"`
	PickupLocation       *string      `json:"pickupLocation"`
	DropoffLocation      *string      `json:"dropoffLocation"`
	PickupDate           *string      `json:"pickupDate"`
	ReturnDate           *string      `json:"returnDate"`
	VehicleGroup         *string      `json:"vehicleGroup"`
	AssignedDriver       *string      `json:"assignedDriver"`
	AssignedVehiclePlate *string      `json:"assignedVehiclePlate"`
	OperatorName         *string      `json:"operatorName"`
	Status               *Status      `json:"status"`
	Notes                *string      `json:"notes"`
	EstimatedCost        *float64     `json:"estimatedCost"`
}

// Validate rejects patches that would set an invalid enumeration value,
// blank out a required field, or store a negative cost.
func (p *RequestPatch) Validate() error {
	for _, s := range []*string{
		p.ClientName, p.ClientContact, p.PickupLocation, p.DropoffLocation, p.OperatorName,
	} {
		if s != nil && *s == "" {
			return ErrMissingRequired
		}
	}
	if p.RequestType != nil && !p.RequestType.Valid() {
		return ErrInvalidType
	}
	if p.Status != nil && !p.Status.Valid() {
		return ErrInvalidStatus
	}
	if p.EstimatedCost != nil && *p.EstimatedCost < 0 {
		return ErrNegativeCost
	}
	return nil
}

// Apply merges the non-nil fields of p into r, preserving ID and CreatedAt.
func (p *RequestPatch) Apply(r *Request) {
	if p.ClientName != nil {
		r.ClientName = *p.ClientName
	}
	if p.ClientContact != nil {
		r.ClientContact = *p.ClientContact
	}
	if p.RequestType != nil {
		r.RequestType = *p.RequestType
	}
	if p.PickupLocation != nil {
		r.PickupLocation = *p.PickupLocation
	}
	if p.DropoffLocation != nil {
		r.DropoffLocation = *p.DropoffLocation
	}
	if p.PickupDate != nil {
		r.PickupDate = *p.PickupDate
	}
	if p.ReturnDate != nil {
		r.ReturnDate = *p.ReturnDate
	}
	if p.VehicleGroup != nil {
		r.VehicleGroup = *p.VehicleGroup
	}
	if p.AssignedDriver != nil {
		r.AssignedDriver = *p.AssignedDriver
	}
	if p.AssignedVehiclePlate != nil {
		r.AssignedVehiclePlate = *p.AssignedVehiclePlate
	}
	if p.OperatorName != nil {
		r.OperatorName = *p.OperatorName
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	if p.EstimatedCost != nil {
		r.EstimatedCost = *p.EstimatedCost
	}
}
