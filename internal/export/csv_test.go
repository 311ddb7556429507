package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/frotaops/go-fleet-backend/internal/domain"
)

func TestWriteCSV(t *testing.T) {
	records := []domain.Request{
		{
			ID:              "REQ-003",
			ClientName:      `Empresa "ABC", Lda`, // embedded comma and quotes
			RequestType:     domain.TypeTransfer,
			PickupLocation:  "Aeroporto",
			DropoffLocation: "Centro",
			PickupDate:      "2026-03-01T10:00",
			ReturnDate:      "2026-03-01T11:00",
			VehicleGroup:    "Van 9 Lugares",
			AssignedDriver:  "Carlos Motorista",
			Status:          domain.StatusConfirmed,
			OperatorName:    "Ana Sousa",
		},
		{
			ID:           "REQ-001",
			ClientName:   "Hotel Solar",
			RequestType:  domain.TypeRental,
			Status:       domain.StatusPending,
			OperatorName: "João Silva",
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		t.Fatalf("write: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d", len(rows))
	}

	wantHeader := []string{
		"ID", "Cliente", "Tipo", "De", "Para",
		"Data Início", "Data Fim", "Viatura", "Motorista", "Estado", "Operador",
	}
	if strings.Join(rows[0], "|") != strings.Join(wantHeader, "|") {
		t.Fatalf("header = %v", rows[0])
	}

	first := rows[1]
	if first[0] != "REQ-003" || first[1] != `Empresa "ABC", Lda` {
		t.Fatalf("row 1 = %v", first)
	}
	// Type and status columns carry the display labels, not the tags.
	if first[2] != "Transfer" || first[9] != "Confirmado" {
		t.Fatalf("labels = %q/%q", first[2], first[9])
	}
	if first[8] != "Carlos Motorista" {
		t.Fatalf("driver = %q", first[8])
	}

	second := rows[2]
	if second[2] != "Aluguer" || second[9] != "Aguarda confirmação" {
		t.Fatalf("labels = %q/%q", second[2], second[9])
	}
	if second[8] != "" {
		t.Fatalf("unassigned driver cell = %q", second[8])
	}
}

func TestWriteCSV_EmptyCollection(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	// Header only.
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "ID,") {
		t.Fatalf("output = %q", buf.String())
	}
}
