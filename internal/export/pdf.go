package export

import (
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frotaops/go-fleet-backend/internal/domain"
)

// DocumentFilename returns the download name for a per-request document.
func DocumentFilename(id string) string { return "Pedido_" + id + ".pdf" }

// ptPrinter formats numbers with European Portuguese conventions
// (e.g. 1.234,56) for the estimated cost row.
var ptPrinter = message.NewPrinter(language.EuropeanPortuguese)

// WritePDF renders a single-record printable summary to w: a title block
// with ID, issue date and operator, a two-column field/value table, and two
// signature-line placeholders.
func WritePDF(w io.Writer, r domain.Request) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(14, 165, 233)
	pdf.Text(20, 20, tr("Resumo do Pedido"))

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(20, 30, tr("ID: "+r.ID))
	pdf.Text(20, 35, tr("Data Emissão: "+time.Now().Format("02/01/2006")))
	pdf.Text(20, 40, tr("Operador: "+r.OperatorName))

	// Field table
	driver := r.AssignedDriver
	if driver == "" {
		driver = "N/A"
	}
	notes := r.Notes
	if notes == "" {
		notes = "-"
	}
	vehicle := r.VehicleGroup
	if r.AssignedVehiclePlate != "" {
		vehicle += " (" + r.AssignedVehiclePlate + ")"
	}
	rows := [][2]string{
		{"Cliente", r.ClientName},
		{"Contacto", r.ClientContact},
		{"Tipo", r.RequestType.Label()},
		{"Levantamento", r.PickupLocation + " em " + r.PickupDate},
		{"Devolução", r.DropoffLocation + " em " + r.ReturnDate},
		{"Viatura", vehicle},
		{"Motorista", driver},
		{"Estado", r.Status.Label()},
		{"Notas", notes},
	}
	if r.EstimatedCost > 0 {
		rows = append(rows, [2]string{
			"Custo Estimado", ptPrinter.Sprintf("%.2f EUR", r.EstimatedCost),
		})
	}

	const (
		left     = 20.0
		fieldW   = 50.0
		valueW   = 120.0
		rowH     = 10.0
		tableTop = 50.0
	)

	pdf.SetY(tableTop)
	pdf.SetX(left)
	pdf.SetFillColor(14, 165, 233)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(fieldW, rowH, tr("Campo"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(valueW, rowH, tr("Detalhe"), "1", 1, "L", true, 0, "")

	pdf.SetTextColor(0, 0, 0)
	for _, row := range rows {
		pdf.SetX(left)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(fieldW, rowH, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(valueW, rowH, tr(row[1]), "1", 1, "L", false, 0, "")
	}

	// Signature area
	y := pdf.GetY() + 40
	pdf.SetFont("Helvetica", "", 10)
	pdf.Line(20, y, 90, y)
	pdf.Text(20, y+5, tr("Assinatura Cliente"))
	pdf.Line(120, y, 190, y)
	pdf.Text(120, y+5, tr("Assinatura Empresa"))

	return pdf.Output(w)
}
