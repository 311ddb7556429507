package domain

import (
	"errors"
	"testing"
)

func validInput() RequestInput {
	return RequestInput{
		ClientName:      "Empresa ABC Lda",
		ClientContact:   "912345678",
		RequestType:     TypeTransfer,
		PickupLocation:  "Aeroporto",
		DropoffLocation: "Hotel Solar",
		PickupDate:      "2026-03-01T10:00",
		ReturnDate:      "2026-03-01T11:00",
		VehicleGroup:    "Van 9 Lugares",
		AssignedDriver:  "Carlos Motorista",
		OperatorName:    "Ana Sousa",
	}
}

func TestStatus_ParseAndLabel(t *testing.T) {
	if s, ok := ParseStatus("PENDING"); !ok || s != StatusPending {
		t.Fatalf("ParseStatus tag = %q, %v", s, ok)
	}
	// legacy Portuguese labels still resolve
	if s, ok := ParseStatus("Confirmado"); !ok || s != StatusConfirmed {
		t.Fatalf("ParseStatus label = %q, %v", s, ok)
	}
	if s, ok := ParseStatus("Em Curso"); !ok || s != StatusInProgress {
		t.Fatalf("ParseStatus label = %q, %v", s, ok)
	}
	if _, ok := ParseStatus("definitely-not-a-status"); ok {
		t.Fatal("ParseStatus accepted garbage")
	}

	if got := StatusPending.Label(); got != "Aguarda confirmação" {
		t.Fatalf("Label = %q", got)
	}
	if got := Status("WEIRD").Label(); got != "WEIRD" {
		t.Fatalf("unknown Label = %q", got)
	}
	if Status("WEIRD").Valid() {
		t.Fatal("unknown status reported valid")
	}

	for _, s := range AllStatuses {
		if !s.Valid() {
			t.Fatalf("AllStatuses contains invalid %q", s)
		}
	}
}

func TestRequestType_ParseAndLabel(t *testing.T) {
	if rt, ok := ParseRequestType("RENTAL"); !ok || rt != TypeRental {
		t.Fatalf("ParseRequestType tag = %q, %v", rt, ok)
	}
	if rt, ok := ParseRequestType("Aluguer"); !ok || rt != TypeRental {
		t.Fatalf("ParseRequestType label = %q, %v", rt, ok)
	}
	if rt, ok := ParseRequestType("Transfer"); !ok || rt != TypeTransfer {
		t.Fatalf("ParseRequestType label = %q, %v", rt, ok)
	}
	if _, ok := ParseRequestType("boat"); ok {
		t.Fatal("ParseRequestType accepted garbage")
	}
	if got := TypeTransfer.Label(); got != "Transfer" {
		t.Fatalf("Label = %q", got)
	}
}

func TestRequestInput_Validate_Required(t *testing.T) {
	blank := func(mut func(*RequestInput)) error {
		in := validInput()
		mut(&in)
		return in.Validate()
	}

	cases := []func(*RequestInput){
		func(in *RequestInput) { in.ClientName = "" },
		func(in *RequestInput) { in.ClientContact = "" },
		func(in *RequestInput) { in.PickupLocation = "" },
		func(in *RequestInput) { in.DropoffLocation = "" },
		func(in *RequestInput) { in.OperatorName = "" },
	}
	for i, mut := range cases {
		if err := blank(mut); !errors.Is(err, ErrMissingRequired) {
			t.Fatalf("case %d: err = %v, want ErrMissingRequired", i, err)
		}
	}
}

func TestRequestInput_Validate_Enums(t *testing.T) {
	in := validInput()
	in.RequestType = "SUBMARINE"
	if err := in.Validate(); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("err = %v, want ErrInvalidType", err)
	}

	in = validInput()
	in.Status = "MAYBE"
	if err := in.Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}

	in = validInput()
	in.EstimatedCost = -1
	if err := in.Validate(); !errors.Is(err, ErrNegativeCost) {
		t.Fatalf("err = %v, want ErrNegativeCost", err)
	}
}

func TestRequestInput_Validate_Normalizes(t *testing.T) {
	// Empty status defaults to pending.
	in := validInput()
	if err := in.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if in.Status != StatusPending {
		t.Fatalf("default status = %q", in.Status)
	}

	// Rentals are self-drive: an assigned driver is dropped.
	in = validInput()
	in.RequestType = TypeRental
	in.AssignedDriver = "Carlos Motorista"
	if err := in.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if in.AssignedDriver != "" {
		t.Fatalf("rental kept driver %q", in.AssignedDriver)
	}

	// Transfers keep theirs.
	in = validInput()
	if err := in.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if in.AssignedDriver != "Carlos Motorista" {
		t.Fatalf("transfer lost driver, got %q", in.AssignedDriver)
	}
}
