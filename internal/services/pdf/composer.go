package pdf

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"dq-report-service/internal/services/dq"
)

const (
	pageMargin = 15.0
	lineHeight = 5.5
)

type rgb struct{ r, g, b int }

var (
	brandColor   = rgb{39, 122, 255}
	successColor = rgb{14, 96, 39}
	errorColor   = rgb{162, 25, 31}
	mutedColor   = rgb{111, 111, 111}
	headerFill   = rgb{240, 240, 240}
)

// Composer lays out the printable DQ report: an overview page followed by
// the failing check sections.
type Composer struct {
	product  string
	compress bool
}

func NewComposer(product string) *Composer {
	if product == "" {
		product = "Data Ingestion Portal"
	}
	return &Composer{product: product, compress: true}
}

// Render returns the PDF bytes for report. fpdf panics on some layout
// failures; those come back as errors.
func (c *Composer) Render(report dq.Report) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("layout pdf: %v", r)
		}
	}()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin+5)
	doc.AliasNbPages("")
	doc.SetCompression(c.compress)
	doc.SetTitle("Data quality report "+report.Meta.UploadID, true)
	doc.SetCreator(c.product, true)

	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont("Helvetica", "I", 8)
		setText(doc, mutedColor)
		doc.CellFormat(0, 10, tr(fmt.Sprintf("%s  |  Upload %s  |  Page %d/{nb}", c.product, report.Meta.UploadID, doc.PageNo())), "", 0, "C", false, 0, "")
	})

	c.overviewPage(doc, tr, report)
	c.sectionsPage(doc, tr, report)

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("layout pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Composer) overviewPage(doc *fpdf.Fpdf, tr func(string) string, report dq.Report) {
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	setText(doc, brandColor)
	doc.CellFormat(0, 10, tr(c.product), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 13)
	setText(doc, rgb{22, 22, 22})
	doc.CellFormat(0, 8, "Data Quality Report", "", 1, "L", false, 0, "")
	doc.Ln(4)

	meta := report.Meta
	pairs := [][2]string{
		{"Upload ID", meta.UploadID},
		{"Dataset", meta.Dataset},
		{"Country", meta.Country},
		{"Uploaded", meta.UploadDate},
		{"Checks completed", meta.CheckDate},
		{"Checked at", report.Summary.Timestamp},
	}
	keyValueTable(doc, tr, pairs)
	doc.Ln(6)

	s := report.Summary
	status := successColor
	banner := "All schools passed critical checks."
	if s.Status == dq.BannerError {
		status = errorColor
		banner = fmt.Sprintf("%d of %d schools failed critical checks and will not be ingested.", s.RowsFailed, s.Rows)
	}
	if !report.HasChecks() {
		status = mutedColor
		banner = "Data quality checks have not produced results for this upload yet."
	}
	doc.SetFont("Helvetica", "B", 11)
	setText(doc, status)
	doc.MultiCell(0, 7, tr(banner), "", "L", false)
	doc.Ln(4)

	tiles := []struct{ label, value string }{
		{"Total schools", strconv.Itoa(s.Rows)},
		{"Schools passed", strconv.Itoa(s.RowsPassed)},
		{"Schools failed", strconv.Itoa(s.RowsFailed)},
		{"Pass rate", dq.FormatPercent(s.PassRate)},
	}
	width, _ := doc.GetPageSize()
	tileW := (width - 2*pageMargin - 3*4) / 4
	y := doc.GetY()
	for i, tile := range tiles {
		x := pageMargin + float64(i)*(tileW+4)
		doc.SetDrawColor(224, 224, 224)
		doc.Rect(x, y, tileW, 22, "D")
		doc.SetXY(x, y+3)
		doc.SetFont("Helvetica", "B", 16)
		setText(doc, rgb{22, 22, 22})
		doc.CellFormat(tileW, 9, tile.value, "", 0, "C", false, 0, "")
		doc.SetXY(x, y+13)
		doc.SetFont("Helvetica", "", 8)
		setText(doc, mutedColor)
		doc.CellFormat(tileW, 6, tile.label, "", 0, "C", false, 0, "")
	}
	doc.SetXY(pageMargin, y+28)

	doc.SetFont("Helvetica", "B", 11)
	setText(doc, rgb{22, 22, 22})
	doc.CellFormat(0, 8, "Checks by category", "", 1, "L", false, 0, "")
	table(doc, tr, []float64{80, 30, 30, 40}, []string{"Category", "Checks", "Failing", "Rows failed"}, totalsRows(report.Totals))
}

func (c *Composer) sectionsPage(doc *fpdf.Fpdf, tr func(string) string, report dq.Report) {
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 14)
	setText(doc, rgb{22, 22, 22})
	doc.CellFormat(0, 9, "Checks that need attention", "", 1, "L", false, 0, "")
	doc.Ln(2)

	if len(report.Sections) == 0 {
		doc.SetFont("Helvetica", "", 10)
		setText(doc, mutedColor)
		doc.MultiCell(0, lineHeight, "No failing checks. Every data quality check passed.", "", "L", false)
		return
	}

	for _, sec := range report.Sections {
		doc.SetFont("Helvetica", "B", 11)
		setText(doc, brandColor)
		doc.CellFormat(0, 8, tr(sec.Title), "", 1, "L", false, 0, "")

		rows := make([][]string, 0, len(sec.Lines))
		for _, l := range sec.Lines {
			col := l.Column
			if col == "" {
				col = "-"
			}
			rows = append(rows, []string{l.Label, col, fmt.Sprintf("%d / %d", l.Failed, l.Overall), l.Percent})
		}
		table(doc, tr, []float64{85, 40, 30, 25}, []string{"Check", "Column", "Failed", "% Failed"}, rows)
		doc.Ln(4)
	}
}

func totalsRows(totals []dq.CategoryTotals) [][]string {
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []string{t.Title, strconv.Itoa(t.Checks), strconv.Itoa(t.Failing), strconv.Itoa(t.RowsFailed)})
	}
	return rows
}

func keyValueTable(doc *fpdf.Fpdf, tr func(string) string, pairs [][2]string) {
	doc.SetFont("Helvetica", "", 10)
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		setText(doc, mutedColor)
		doc.CellFormat(45, lineHeight+1, p[0], "", 0, "L", false, 0, "")
		setText(doc, rgb{22, 22, 22})
		doc.CellFormat(0, lineHeight+1, tr(p[1]), "", 1, "L", false, 0, "")
	}
}

// table draws a header row and wraps long cell text onto extra lines.
func table(doc *fpdf.Fpdf, tr func(string) string, widths []float64, header []string, rows [][]string) {
	doc.SetFont("Helvetica", "B", 9)
	setText(doc, rgb{22, 22, 22})
	doc.SetFillColor(headerFill.r, headerFill.g, headerFill.b)
	doc.SetDrawColor(204, 204, 204)
	for i, h := range header {
		doc.CellFormat(widths[i], lineHeight+1, h, "B", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 9)
	doc.SetDrawColor(232, 232, 232)
	for _, row := range rows {
		lines := make([][]string, len(row))
		height := lineHeight
		for i, cell := range row {
			lines[i] = splitCell(doc, tr(cell), widths[i]-2)
			if h := float64(len(lines[i])) * lineHeight; h > height {
				height = h
			}
		}

		_, pageH := doc.GetPageSize()
		if doc.GetY()+height > pageH-pageMargin-5 {
			doc.AddPage()
		}

		x, y := doc.GetXY()
		for i := range row {
			doc.Rect(x, y, widths[i], height, "D")
			for j, text := range lines[i] {
				doc.SetXY(x+1, y+float64(j)*lineHeight)
				doc.CellFormat(widths[i]-2, lineHeight, text, "", 0, "L", false, 0, "")
			}
			x += widths[i]
		}
		doc.SetXY(pageMargin, y+height)
	}
}

// splitCell wraps already translated cp1252 text. SplitText decodes its input
// as UTF-8 and cannot be used after translation.
func splitCell(doc *fpdf.Fpdf, text string, width float64) []string {
	parts := doc.SplitLines([]byte(text), width)
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		lines = append(lines, string(p))
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

func setText(doc *fpdf.Fpdf, c rgb) {
	doc.SetTextColor(c.r, c.g, c.b)
}
