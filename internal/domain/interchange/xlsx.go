package interchange

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Events"

var exportHeaders = []string{"Titulo", "Data", "Hora", "Cliente", "Tipo", "Lembrete", "Notas", "email"}

// WriteXLSX renders the document as a single-sheet workbook.
func WriteXLSX(w io.Writer, doc Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}
	// Indexes shift once the default sheet is gone.
	index, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return fmt.Errorf("locating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for i, h := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header %s: %w", cell, err)
		}
	}

	for i, item := range doc.Data {
		row := i + 2
		values := []any{item.Titulo, item.Data, item.Hora, deref(item.Cliente), deref(item.Tipo), item.Lembrete, deref(item.Notas), item.Email}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
