// internal/api/handler/report.go
package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"my-money/internal/report"
)

// ReportHandler serves statement exports.
type ReportHandler struct {
	responder
	reports *report.Service
	now     func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports *report.Service, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		responder: responder{logger: logger},
		reports:   reports,
		now:       time.Now,
	}
}

// StatementPDF renders the monthly statement.
// GET /reports/statement.pdf?month=
func (h *ReportHandler) StatementPDF(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r, h.now())
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	st, err := h.reports.Statement(r.Context(), SessionFrom(r.Context()), month)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := report.RenderPDF(&buf, st); err != nil {
		h.respondWithError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="statement-`+month+`.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
