// Package export serializes request snapshots into operator-facing
// documents: a delimited table for spreadsheet import and a printable
// per-request PDF. Both are pure transforms over their input; nothing here
// mutates state or touches persistence.
package export

import (
	"encoding/csv"
	"io"

	"github.com/frotaops/go-fleet-backend/internal/domain"
)

// CSVFilename is the fixed download name for the delimited export.
const CSVFilename = "base_dados_frota.csv"

// csvHeader is the fixed column order of the delimited export.
var csvHeader = []string{
	"ID", "Cliente", "Tipo", "De", "Para",
	"Data Início", "Data Fim", "Viatura", "Motorista", "Estado", "Operador",
}

// WriteCSV writes records to w as RFC 4180 CSV with a header row first.
// Type and status columns carry the Portuguese display labels; an
// unassigned driver is an empty cell.
func WriteCSV(w io.Writer, records []domain.Request) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.ClientName,
			r.RequestType.Label(),
			r.PickupLocation,
			r.DropoffLocation,
			r.PickupDate,
			r.ReturnDate,
			r.VehicleGroup,
			r.AssignedDriver,
			r.Status.Label(),
			r.OperatorName,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
