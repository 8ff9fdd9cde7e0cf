package export

import (
	"encoding/csv"
	"io"

	"bookscan/internal/library"
)

func writeCSV(w io.Writer, entries []library.Entry, opts Options) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns(opts)); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write(Row(e, opts)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
