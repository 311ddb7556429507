// Export HTTP handlers: the filtered CSV download and the per-request
// printable PDF. Both are read-only transforms over a repository snapshot.
package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frotaops/go-fleet-backend/internal/export"
	"github.com/frotaops/go-fleet-backend/internal/http/middleware"
)

// ExportCSV streams the filtered collection as a CSV attachment with the
// fixed filename base_dados_frota.csv. The same filter params as
// ListRequests apply; no pagination.
func (h *Handlers) ExportCSV(c *gin.Context) {
	q, okq := filterQuery(c)
	if !okq {
		return
	}
	records := h.repo.Filter(q)

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, records); err != nil {
		middleware.LoggerFrom(c).Error().Err(err).Msg("csv export failed")
		fail(c, http.StatusInternalServerError, ErrCodeExportFailed, "could not build export")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.CSVFilename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportDocument streams the printable summary for one record as a PDF
// attachment named Pedido_<id>.pdf.
func (h *Handlers) ExportDocument(c *gin.Context) {
	rec, err := h.repo.Get(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "request not found")
		return
	}

	var buf bytes.Buffer
	if err := export.WritePDF(&buf, rec); err != nil {
		middleware.LoggerFrom(c).Error().Err(err).Msg("pdf export failed")
		fail(c, http.StatusInternalServerError, ErrCodeExportFailed, "could not build document")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.DocumentFilename(rec.ID)+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
