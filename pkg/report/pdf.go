package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/leapstack-labs/leapa11y/pkg/core"
)

// PDFRenderer writes an A4 PDF document using the core Helvetica font.
type PDFRenderer struct{}

// Format implements Renderer.
func (PDFRenderer) Format() Format { return FormatPDF }

const (
	pdfLineHeight = 6.0
	pdfLabelWidth = 50.0
	pdfValueWidth = 120.0
)

// Render implements Renderer.
func (PDFRenderer) Render(w io.Writer, r *Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle("Accessibility report", true)
	pdf.SetCreator("leapa11y", true)
	pdf.SetCreationDate(r.Timestamp)
	pdf.SetModificationDate(r.Timestamp)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(0, 122, 204)
	pdf.CellFormat(0, 14, tr("Accessibility report"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Check info.
	pdf.SetTextColor(0, 0, 0)
	info := [][2]string{{"URL", r.URL}}
	if r.Title != "" {
		info = append(info, [2]string{"Title", r.Title})
	}
	info = append(info,
		[2]string{"Checked at", r.Timestamp.Format(htmlTimeLayout)},
		[2]string{"Total issues", fmt.Sprint(r.TotalIssues)},
	)
	pdf.SetFillColor(220, 220, 220)
	for _, row := range info {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(pdfLabelWidth, 8, tr(row[0]), "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(pdfValueWidth, 8, tr(truncate(row[1], 70)), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	// Level summary.
	heading(pdf, tr, "Summary by level")
	pdf.SetFillColor(0, 122, 204)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(40, 8, "Level", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 8, "Issues", "1", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 11)
	for _, l := range core.Levels {
		pdf.CellFormat(40, 8, l.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 8, fmt.Sprint(r.Summary.ByLevel[l]), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(8)

	if len(r.Issues) == 0 {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(0, 184, 148)
		pdf.CellFormat(0, 10, tr("No accessibility issues found!"), "", 1, "C", false, 0, "")
	} else {
		heading(pdf, tr, "Issue details")
		for i, g := range r.Issues {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.SetTextColor(51, 51, 51)
			pdf.MultiCell(0, 7, tr(fmt.Sprintf("%d. %s", i+1, g.Name)), "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(0, 0, 0)
			pdf.MultiCell(0, pdfLineHeight, tr(fmt.Sprintf("WCAG criterion: %s | Level: %s | Count: %d",
				g.Criterion, g.Level, g.Count)), "", "L", false)
			pdf.Ln(2)

			shown, rest := examples(g)
			for j, d := range shown {
				pdf.SetFont("Helvetica", "B", 10)
				pdf.CellFormat(0, pdfLineHeight, fmt.Sprintf("Example %d", j+1), "", 1, "L", false, 0, "")
				pdf.SetFont("Helvetica", "", 10)
				pdf.MultiCell(0, pdfLineHeight, tr("Element: "+d.Element), "", "L", false)
				pdf.MultiCell(0, pdfLineHeight, fmt.Sprintf("Line: %d", d.Line), "", "L", false)
				pdf.MultiCell(0, pdfLineHeight, tr("Message: "+d.Message), "", "L", false)
				pdf.MultiCell(0, pdfLineHeight, tr("Recommendation: "+d.Recommendation), "", "L", false)
				pdf.Ln(2)
			}
			if rest > 0 {
				pdf.MultiCell(0, pdfLineHeight, fmt.Sprintf("... and %d more", rest), "", "L", false)
			}
			pdf.Ln(4)
		}
	}

	if len(r.Failures) > 0 {
		heading(pdf, tr, "Rule failures")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		for _, f := range r.Failures {
			pdf.MultiCell(0, pdfLineHeight, tr(fmt.Sprintf("%s %s: %s", f.RuleID, f.Name, f.Reason)), "", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func heading(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetFont("Helvetica", "B", 15)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 10, tr(text), "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
