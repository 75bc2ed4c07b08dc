package interchange

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

var pdfColumns = []struct {
	header string
	width  float64
}{
	{"Titulo", 60},
	{"Data", 24},
	{"Hora", 18},
	{"Cliente", 40},
	{"Tipo", 30},
	{"Lembrete", 20},
	{"Notas", 85},
}

// WritePDF renders the document as a landscape table, one row per event.
func WritePDF(w io.Writer, owner string, doc Document) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	header := func() {
		pdf.SetFont("Arial", "B", 10)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, col.header, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, tr("Events for "+owner))
	pdf.Ln(10)
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, item := range doc.Data {
		if pdf.GetY()+6 > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		cells := []string{item.Titulo, item.Data, item.Hora, deref(item.Cliente), deref(item.Tipo), item.Lembrete, deref(item.Notas)}
		for i, text := range cells {
			align := "L"
			if i > 0 && i < 3 || i == 5 {
				align = "C"
			}
			pdf.CellFormat(pdfColumns[i].width, 6, tr(truncate(text, pdfColumns[i].width)), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// truncate keeps text roughly within a column at the 8pt body font.
func truncate(text string, width float64) string {
	limit := int(width / 1.6)
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}
