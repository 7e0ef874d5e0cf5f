package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/xavierca1/leadlocal/internal/entity"
)

// Page geometry in millimetres (A4 portrait).
const (
	pageBreakY  = 250.0
	pageTopY    = 30.0
	firstEntryY = 70.0
	marginX     = 20.0
	indentX     = 25.0
	maxLineLen  = 95
)

const reportTitle = "LeadLocal - Prospect Report"

type pdfLine struct {
	page int
	x, y float64
	size float64
	text string
}

// layoutReport places every line of the report. Entries never get split
// across pages: a new page starts before an entry once y passes pageBreakY.
func layoutReport(leads []entity.Lead, generated string) []pdfLine {
	lines := []pdfLine{
		{page: 1, x: marginX, y: 30, size: 20, text: reportTitle},
		{page: 1, x: marginX, y: 45, size: 12, text: "Generated: " + generated},
		{page: 1, x: marginX, y: 55, size: 12, text: "Total Prospects: " + strconv.Itoa(len(leads))},
	}

	page, y := 1, firstEntryY
	for i, l := range leads {
		if y > pageBreakY {
			page++
			y = pageTopY
		}

		lines = append(lines, pdfLine{page, marginX, y, 14, fmt.Sprintf("%d. %s", i+1, l.Name)})
		y += 10
		lines = append(lines, pdfLine{page, indentX, y, 10, "Industry: " + l.Industry})
		y += 7
		lines = append(lines, pdfLine{page, indentX, y, 10, fmt.Sprintf("AI Score: %d/100", l.ReadinessScore)})
		y += 7
		lines = append(lines, pdfLine{page, indentX, y, 10, "Address: " + l.Address})
		y += 7
		if op := l.TopOpportunity(); op != "" {
			lines = append(lines, pdfLine{page, indentX, y, 10, "Opportunity: " + op})
			y += 7
		}
		y += 5
	}
	return lines
}

// ToPDF renders the paginated prospect report.
func (e *Exporter) ToPDF(leads []entity.Lead) ([]byte, error) {
	now := e.now()
	lines := layoutReport(leads, now.Format("01/02/2006"))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(now)
	pdf.SetTitle(reportTitle, true)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	page := 0
	for _, ln := range lines {
		for page < ln.page {
			pdf.AddPage()
			page++
		}
		pdf.SetFont("Helvetica", "", ln.size)
		pdf.Text(ln.x, ln.y, tr(truncate(ln.text, maxLineLen)))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: render pdf: %v", ErrExportFailed, err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
