package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"meesho-recon/internal/domain"
)

const (
	// LandscapeColumnThreshold is the column count above which a table is
	// laid out on landscape pages.
	LandscapeColumnThreshold = 7
	// CellCharLimit is the per-cell character budget.
	CellCharLimit = 25

	rowHeight = 6.0
)

// Orientation returns the fpdf orientation for a table with cols columns.
func Orientation(cols int) string {
	if cols > LandscapeColumnThreshold {
		return "L"
	}
	return "P"
}

type pdfExporter struct{}

func NewPDFExporter() Exporter {
	return &pdfExporter{}
}

func (e *pdfExporter) Format() Format {
	return FormatPDF
}

func (e *pdfExporter) ContentType() string {
	return "application/pdf"
}

// Export renders every table under its own title block, starting each on a
// new page oriented for its column count. Header rows repeat on page breaks.
func (e *pdfExporter) Export(w io.Writer, title string, tables []domain.NamedTable) error {
	if len(tables) == 0 {
		return fmt.Errorf("nothing to export: %w", domain.ErrNoData)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("meesho-recon", true)
	pdf.SetAutoPageBreak(false, 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	size := pdf.GetPageSizeStr("A4")

	for _, nt := range tables {
		t := nt.Table
		if t == nil {
			t = domain.NewTable(nil)
		}
		orientation := Orientation(len(t.Columns))
		pdf.AddPageFormat(orientation, size)

		pdf.SetFont("Helvetica", "B", 14)
		heading := nt.Name
		if title != "" {
			heading = title + " - " + nt.Name
		}
		pdf.CellFormat(0, 10, tr(cleanText(heading)), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		if len(t.Columns) == 0 {
			continue
		}

		pageW, pageH := pdf.GetPageSize()
		left, _, right, bottom := pdf.GetMargins()
		colW := (pageW - left - right) / float64(len(t.Columns))

		header := func() {
			pdf.SetFont("Helvetica", "B", 8)
			pdf.SetFillColor(221, 221, 221)
			for _, c := range t.Columns {
				pdf.CellFormat(colW, rowHeight, tr(Truncate(cleanText(c), CellCharLimit)), "1", 0, "C", true, 0, "")
			}
			pdf.Ln(-1)
			pdf.SetFont("Helvetica", "", 8)
		}
		header()

		for _, row := range t.Rows {
			if pdf.GetY()+rowHeight > pageH-bottom {
				pdf.AddPageFormat(orientation, size)
				header()
			}
			for _, v := range row {
				text, align := cellText(v)
				pdf.CellFormat(colW, rowHeight, tr(text), "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return pdf.Output(w)
}

// cellText renders a value for a PDF cell: null as "", numbers right-aligned.
func cellText(v domain.Value) (string, string) {
	if v.IsNull() {
		return "", "L"
	}
	if d, ok := v.Decimal(); ok && v.IsNumber() {
		return FormatNumber(d), "R"
	}
	return Truncate(cleanText(v.String()), CellCharLimit), "L"
}
