package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookscan/internal/catalog"
	"bookscan/internal/httpx"
	"bookscan/internal/library"
	"bookscan/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var now = time.Date(2024, 6, 2, 18, 30, 0, 0, time.UTC)

func sample() []library.Entry {
	return []library.Entry{
		{
			BookRecord: catalog.BookRecord{
				Title:         `The "Hobbit"`,
				Authors:       []string{"J.R.R. Tolkien"},
				ISBN:          "9780547928227",
				Categories:    []string{"Fantasy", "Classics"},
				PageCount:     310,
				PublishedDate: "1937",
				AverageRating: 4.7,
			},
			UserRating:    5,
			UserReview:    "Second breakfast, obviously",
			ReadingStatus: library.StatusRead,
		},
		{
			BookRecord:    catalog.BookRecord{Title: "Dune", Authors: []string{"Frank Herbert", "Brian Herbert"}, ISBN: "9780441172719"},
			ReadingStatus: library.StatusReading,
		},
		{
			BookRecord: catalog.BookRecord{Title: "Beloved", ISBN: "9781400033416"},
			UserRating: 3,
		},
	}
}

func TestSelect(t *testing.T) {
	assert.Len(t, Select(sample(), FilterAll), 3)
	assert.Len(t, Select(sample(), ""), 3)
	assert.Equal(t, "Dune", Select(sample(), FilterReading)[0].Title)
	assert.Equal(t, "Beloved", Select(sample(), FilterToRead)[0].Title)
	assert.Len(t, Select(sample(), FilterRead), 1)
	assert.Len(t, Select(sample(), FilterFavorites), 1)
}

func TestColumns(t *testing.T) {
	assert.Equal(t, []string{"Title", "Authors", "ISBN"}, Columns(Options{}))
	assert.Equal(t, []string{
		"Title", "Authors", "ISBN", "Genres", "Pages", "Published",
		"Personal Rating", "Average Rating", "Notes",
	}, Columns(Options{Metadata: true, Ratings: true, Notes: true}))
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(), DefaultOptions(), now))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, Columns(DefaultOptions()), records[0])
	assert.Equal(t, []string{`The "Hobbit"`, "J.R.R. Tolkien", "9780547928227", "Fantasy, Classics", "310", "1937", "5", "4.7"}, records[1])
	assert.Equal(t, []string{"Dune", "Frank Herbert, Brian Herbert", "9780441172719", "", "", "", "", ""}, records[2])
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample()[:1], Options{Format: FormatJSON, Notes: true}, now))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "2024-06-02T18:30:00Z", doc["export_date"])
	assert.Equal(t, 1.0, doc["total_books"])

	book := doc["books"].([]any)[0].(map[string]any)
	assert.Equal(t, "9780547928227", book["isbn"])
	assert.Equal(t, "Second breakfast, obviously", book["notes"])
	assert.NotContains(t, book, "page_count")
	assert.NotContains(t, book, "user_rating")
}

func TestWrite_HTMLEscapes(t *testing.T) {
	entries := sample()
	entries[1].Title = "<script>alert(1)</script>"

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, entries, Options{Format: FormatHTML}, now))

	out := buf.String()
	assert.Contains(t, out, "<th>Title</th>")
	assert.Contains(t, out, "3 books")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>")
}

func TestWrite_XLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(), Options{Format: FormatXLSX, Ratings: true}, now))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Title", "Authors", "ISBN", "Personal Rating", "Average Rating"}, rows[0])
	assert.Equal(t, "Beloved", rows[3][0])
	assert.Equal(t, "3", rows[3][3])
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, nil, Options{Format: "pdf"}, now))
}

func TestFilenameAndContentType(t *testing.T) {
	assert.Equal(t, "library_2024-06-02.xlsx", Filename(FormatXLSX, now))
	assert.Equal(t, "application/json", ContentType(FormatJSON))
	assert.Equal(t, "application/octet-stream", ContentType("pdf"))
}

type stubLibrary struct{ entries []library.Entry }

func (s stubLibrary) All(context.Context, string) ([]library.Entry, error) { return s.entries, nil }

func TestHTTPHandler_Export(t *testing.T) {
	h := NewHTTPHandler(stubLibrary{entries: sample()}, logger.NewNop())
	h.now = func() time.Time { return now }

	get := func(target string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, target, nil)
		r = r.WithContext(httpx.ContextWithDevice(r.Context(), "device-1", "web"))
		w := httptest.NewRecorder()
		h.Export(w, r)
		return w
	}

	t.Run("defaults to csv", func(t *testing.T) {
		w := get("/v1/export")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="library_2024-06-02.csv"`, w.Header().Get("Content-Disposition"))
	})

	t.Run("json favorites", func(t *testing.T) {
		w := get("/v1/export?format=json&filter=favorites&ratings=false")
		require.Equal(t, http.StatusOK, w.Code)

		var doc struct {
			TotalBooks int              `json:"total_books"`
			Books      []map[string]any `json:"books"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		assert.Equal(t, 1, doc.TotalBooks)
		assert.NotContains(t, doc.Books[0], "user_rating")
	})

	t.Run("bad format", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get("/v1/export?format=pdf").Code)
	})

	t.Run("bad flag", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get("/v1/export?notes=maybe").Code)
	})
}
