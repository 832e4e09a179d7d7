// Package report renders stored scan results as downloadable documents.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sahilmaurya2006/website-security-scanner/internal/domain/scan"
)

// ContentType is the media type of rendered reports.
const ContentType = "application/pdf"

// PDFRenderer lays out a scan result as an A4 PDF.
type PDFRenderer struct {
	// Author is written to the document metadata when set.
	Author string
}

// NewPDFRenderer returns a renderer with default metadata.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{Author: "secscan"}
}

// Filename returns the attachment name for the report of scan id.
func Filename(id string) string {
	return fmt.Sprintf("scan-%s.pdf", id)
}

// Render writes the report for r to w. Nothing is written if layout fails.
func (p *PDFRenderer) Render(w io.Writer, r scan.Result) error {
	pdf := p.build(r)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	return nil
}

func (p *PDFRenderer) build(r scan.Result) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 14)
	pdf.SetTitle("Website Security Scan Report", true)
	if p.Author != "" {
		pdf.SetAuthor(p.Author, true)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, "Website Security Scan Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Overview
	pdf.SetFont("Arial", "", 11)
	overview := []string{
		fmt.Sprintf("URL: %s", r.URL),
		fmt.Sprintf("Timestamp: %s", r.Timestamp.UTC().Format(time.RFC3339)),
		fmt.Sprintf("Security Score: %d (%s)", r.Score, r.Grade),
		fmt.Sprintf("Risk Level: %s", r.RiskLevel),
		fmt.Sprintf("Response Time: %d ms", r.ResponseTime),
		fmt.Sprintf("HTTP Status: %d", r.StatusCode),
	}
	for _, line := range overview {
		pdf.MultiCell(0, 6, tr(line), "", "", false)
	}
	pdf.Ln(4)

	// Checks
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, "Checks:", "", 1, "", false, 0, "")
	for _, entry := range r.Checks {
		check := entry.Value
		status := "FAILED"
		if check.Passed {
			status = "PASSED"
		}

		pdf.Ln(1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "B", 11)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s - %s", check.Label, status)), "", "", false)
		pdf.SetTextColor(110, 110, 110)
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, tr(check.Description), "", "", false)

		if category, ok := r.OWASP.Get(entry.Key); ok {
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont("Arial", "", 9)
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("OWASP: %s - %s", category.ID, category.Title)), "", "", false)
			pdf.SetTextColor(110, 110, 110)
			pdf.SetFont("Arial", "I", 8)
			pdf.MultiCell(0, 4, tr(category.Description), "", "", false)
		}
	}
	pdf.SetTextColor(0, 0, 0)

	if len(r.Recommendations) == 0 {
		return pdf
	}

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, "Recommendations:", "", 1, "", false, 0, "")
	for i, rec := range r.Recommendations {
		pdf.Ln(1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "B", 11)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. [%s] %s", i+1, rec.Severity, rec.Issue)), "", "", false)
		pdf.SetTextColor(110, 110, 110)
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, tr("Fix: "+rec.Fix), "", "", false)
	}
	pdf.SetTextColor(0, 0, 0)

	return pdf
}
