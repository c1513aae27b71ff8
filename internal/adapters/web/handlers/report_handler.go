package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dmriera/fleetdash/internal/adapters/reporting"
	"github.com/dmriera/fleetdash/internal/core/ports"
)

// ReportHandler serves the downloadable PDF fleet summary.
type ReportHandler struct {
	Service  ports.DashboardService
	Exporter *reporting.PDFExporter
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service ports.DashboardService) *ReportHandler {
	return &ReportHandler{
		Service:  service,
		Exporter: reporting.NewPDFExporter(),
	}
}

// HandleDownloadReport renders the current snapshot as a PDF attachment.
func (h *ReportHandler) HandleDownloadReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, err := h.Exporter.ExportSnapshot(h.Service.Current())
	if err != nil {
		log.Printf("Report generation failed: %v", err)
		http.Error(w, "Report generation failed", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("fleet-summary-%s.pdf", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}
