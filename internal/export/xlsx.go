package export

import (
	"io"

	"bookscan/internal/library"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Library"

func writeXLSX(w io.Writer, entries []library.Entry, opts Options) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	if err := setRow(f, 1, Columns(opts)); err != nil {
		return err
	}
	for i, e := range entries {
		if err := setRow(f, i+2, Row(e, opts)); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func setRow(f *excelize.File, row int, values []string) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}
