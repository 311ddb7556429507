package domain

import "time"

// SeedRequests returns the fixed fallback dataset used when the persisted
// snapshot is absent or unreadable. CreatedAt values are relative to now so
// a fresh install still shows plausible recency.
func SeedRequests() []Request {
	now := time.Now().UTC()
	return []Request{
		{
			ID:              "REQ-001",
			CreatedAt:       now,
			ClientName:      "Empresa ABC Lda",
			ClientContact:   "912345678",
			RequestType:     TypeRental,
			PickupLocation:  "Aeroporto",
			DropoffLocation: "Aeroporto",
			PickupDate:      "2026-02-10T10:00",
			ReturnDate:      "2026-02-15T10:00",
			VehicleGroup:    "Grupo C (Compacto)",
			OperatorName:    "João Silva",
			Status:          StatusPending,
			Notes:           "Cliente VIP",
		},
		{
			ID:              "REQ-002",
			CreatedAt:       now.Add(-24 * time.Hour),
			ClientName:      "Hotel Solar",
			ClientContact:   "210000000",
			RequestType:     TypeTransfer,
			PickupLocation:  "Hotel Solar",
			DropoffLocation: "Centro de Congressos",
			PickupDate:      "2026-02-08T09:00",
			ReturnDate:      "2026-02-08T09:45",
			VehicleGroup:    "Van 9 Lugares",
			AssignedDriver:  "Carlos Motorista",
			OperatorName:    "Ana Sousa",
			Status:          StatusConfirmed,
		},
	}
}
