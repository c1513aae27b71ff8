package reporting

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/dmriera/fleetdash/internal/core/domain"
)

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// PDFExporter exports the fleet summary to PDF format
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ExportSnapshot generates a fleet summary PDF from a reconciled snapshot.
func (e *PDFExporter) ExportSnapshot(snap domain.Snapshot) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, snap)
	e.addDeviceCounters(pdf, snap)
	e.addIncidentBreakdown(pdf, snap)
	e.addLicense(pdf, snap)
	e.addWarnings(pdf, snap)
	e.addFooter(pdf, snap)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, snap domain.Snapshot) {
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 51, 102) // Dark blue
	pdf.CellFormat(0, 15, "Fleet Summary Report", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", snap.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Data freshness: %s", snap.Freshness.Label), "", 1, "L", false, 0, "")
	pdf.Ln(6)
}

func (e *PDFExporter) addDeviceCounters(pdf *gofpdf.Fpdf, snap domain.Snapshot) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "Devices", "", 1, "L", false, 0, "")

	m := snap.DeviceMetrics
	rows := []struct {
		label string
		value int
	}{
		{"Total", m.Total},
		{"Active", m.Active},
		{"Blocked", m.Blocked},
		{"Suspended", m.Suspended},
	}

	pdf.SetFont("Arial", "", 11)
	for _, row := range rows {
		pdf.CellFormat(60, 8, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%d", row.value), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)
}

func (e *PDFExporter) addIncidentBreakdown(pdf *gofpdf.Fpdf, snap domain.Snapshot) {
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Security Incidents (%d)", snap.IncidentMetrics.Total), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, level := range domain.SeverityLevels {
		count := snap.IncidentMetrics.SeverityCounts[level]
		r, g, b := severityColor(level)
		pdf.SetTextColor(r, g, b)
		pdf.CellFormat(60, 8, capitalize(level), "1", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(40, 8, fmt.Sprintf("%d", count), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)
}

func (e *PDFExporter) addLicense(pdf *gofpdf.Fpdf, snap domain.Snapshot) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "License", "", 1, "L", false, 0, "")

	status := "Inactive"
	if snap.LicenseActive {
		status = "Active"
	}

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Status: %s", status), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Expiry: %d days left (%s)", snap.Expiry.DaysLeft, snap.Expiry.Tier), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (e *PDFExporter) addWarnings(pdf *gofpdf.Fpdf, snap domain.Snapshot) {
	if snap.Inconsistency == nil && len(snap.Missing) == 0 {
		return
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(178, 34, 34) // Firebrick
	pdf.CellFormat(0, 10, "Data Warnings", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0, 0, 0)

	if inc := snap.Inconsistency; inc != nil {
		line := fmt.Sprintf("Metadata mismatch on %s: claimed total=%d active=%d, actual total=%d active=%d",
			inc.Field, inc.ClaimedTotal, inc.ClaimedActive, inc.ActualTotal, inc.ActualActive)
		pdf.MultiCell(0, 6, line, "", "L", false)
	}

	for _, m := range snap.Missing {
		pdf.MultiCell(0, 6, fmt.Sprintf("Document %q unavailable: %s", m.Name, m.Reason), "", "L", false)
	}
	pdf.Ln(4)
}

func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf, snap domain.Snapshot) {
	pdf.SetY(-20)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 6, fmt.Sprintf("fleetdash snapshot %s", snap.ID), "", 1, "C", false, 0, "")
}

func severityColor(level string) (int, int, int) {
	switch level {
	case domain.SeverityCritical:
		return 178, 34, 34
	case domain.SeverityHigh:
		return 230, 126, 34
	case domain.SeverityMedium:
		return 184, 134, 11
	default:
		return 0, 100, 0
	}
}
