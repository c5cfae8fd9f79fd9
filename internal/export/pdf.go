package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin      = 14.0
	pdfTitleY      = 15.0
	pdfTableStartY = 20.0
	pdfTitleSize   = 16.0
	pdfBodySize    = 8.0
	pdfCellPadding = 2.0
	pdfLineHeight  = 4.0
)

// WritePDF renders t as an A4 portrait document: the title, then a grid
// table with a header row repeated on every page.
func WritePDF(w io.Writer, t Table) error {
	if len(t.Rows) == 0 {
		return ErrEmptyTable
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(t.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "", pdfTitleSize)
	pdf.Text(pdfMargin, pdfTitleY, tr(latin1(t.Title)))

	pageW, pageH := pdf.GetPageSize()
	headers := latin1All(t.Headers())
	colW := (pageW - 2*pdfMargin) / float64(len(headers))
	bottom := pageH - pdfMargin

	y := pdfTableStartY
	y = drawRow(pdf, tr, headers, colW, y, true)
	for _, cells := range t.Cells() {
		cells = latin1All(cells)
		if y+rowHeight(pdf, cells, colW) > bottom {
			pdf.AddPage()
			y = drawRow(pdf, tr, headers, colW, pdfMargin, true)
		}
		y = drawRow(pdf, tr, cells, colW, y, false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func setRowFont(pdf *fpdf.Fpdf, header bool) {
	if header {
		pdf.SetFont("Helvetica", "B", pdfBodySize)
		pdf.SetFillColor(26, 188, 156)
		pdf.SetTextColor(255, 255, 255)
		return
	}
	pdf.SetFont("Helvetica", "", pdfBodySize)
	pdf.SetTextColor(0, 0, 0)
}

func rowHeight(pdf *fpdf.Fpdf, cells []string, colW float64) float64 {
	lines := 1
	for _, c := range cells {
		if n := len(pdf.SplitText(c, colW-2*pdfCellPadding)); n > lines {
			lines = n
		}
	}
	return float64(lines)*pdfLineHeight + 2*pdfCellPadding
}

// drawRow draws one grid row starting at y and returns the y below it.
func drawRow(pdf *fpdf.Fpdf, tr func(string) string, cells []string, colW, y float64, header bool) float64 {
	setRowFont(pdf, header)
	h := rowHeight(pdf, cells, colW)

	style := "D"
	if header {
		style = "FD"
	}

	for i, c := range cells {
		x := pdfMargin + float64(i)*colW
		pdf.Rect(x, y, colW, h, style)
		for j, line := range pdf.SplitText(c, colW-2*pdfCellPadding) {
			pdf.SetXY(x+pdfCellPadding, y+pdfCellPadding+float64(j)*pdfLineHeight)
			pdf.CellFormat(colW-2*pdfCellPadding, pdfLineHeight, tr(line), "", 0, "L", false, 0, "")
		}
	}
	return y + h
}

// latin1 replaces runes the core PDF fonts cannot encode with '?'.
func latin1(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xff {
			return '?'
		}
		return r
	}, s)
}

func latin1All(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = latin1(s)
	}
	return out
}
