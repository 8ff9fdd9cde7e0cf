package export

import (
	"html/template"
	"io"
	"time"

	"bookscan/internal/library"
)

var page = template.Must(template.New("library").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>My Library</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; vertical-align: top; }
th { background: #f8f9fa; }
</style>
</head>
<body>
<h1>My Library</h1>
<p>Exported on {{.Date}} &middot; {{.Total}} books</p>
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

type htmlPage struct {
	Date    string
	Total   int
	Columns []string
	Rows    [][]string
}

func writeHTML(w io.Writer, entries []library.Entry, opts Options, now time.Time) error {
	p := htmlPage{
		Date:    now.UTC().Format(time.DateOnly),
		Total:   len(entries),
		Columns: Columns(opts),
		Rows:    make([][]string, 0, len(entries)),
	}
	for _, e := range entries {
		p.Rows = append(p.Rows, Row(e, opts))
	}
	return page.Execute(w, p)
}
