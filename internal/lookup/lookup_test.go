package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookscan/internal/catalog"
	"bookscan/internal/httpx"
	"bookscan/internal/platform/logger"
	"bookscan/internal/recommend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, id string) (*catalog.BookRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.BookRecord), args.Error(1)
}

type mockPrefs struct {
	mock.Mock
}

func (m *mockPrefs) ScorerPreferences(ctx context.Context, deviceID string) (*recommend.Preferences, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recommend.Preferences), args.Error(1)
}

func TestInspect(t *testing.T) {
	assert.Equal(t, Identifier{Raw: "978-0-14-312774-1", Normalized: "9780143127741", Valid: true, ChecksumValid: true}, Inspect("978-0-14-312774-1"))
	assert.Equal(t, Identifier{Raw: "abc123", Normalized: "123"}, Inspect("abc123"))
	assert.Equal(t, Identifier{Raw: "9780143127742", Normalized: "9780143127742", Valid: true}, Inspect("9780143127742"))
}

func TestService_Lookup(t *testing.T) {
	ctx := context.Background()
	book := &catalog.BookRecord{Title: "Dune", Categories: []string{"Science Fiction"}, AverageRating: 4.2, ISBN: "9780441172719"}

	r := new(mockResolver)
	r.On("Resolve", ctx, "9780441172719").Return(book, nil)

	res, err := NewService(r).Lookup(ctx, "978-0-441-17271-9", &recommend.Preferences{FavoriteGenres: []string{"science"}})
	require.NoError(t, err)

	assert.Equal(t, "Dune", res.Book.Title)
	assert.True(t, res.ChecksumValid)
	assert.Equal(t, 5, res.Recommendation.StarRating)
	assert.Equal(t, 5.0, res.Recommendation.Score)
	r.AssertExpectations(t)
}

func TestService_LookupInvalidSkipsResolver(t *testing.T) {
	r := new(mockResolver)
	_, err := NewService(r).Lookup(context.Background(), "abc123", nil)
	assert.ErrorIs(t, err, catalog.ErrInvalidIdentifier)
	r.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestHTTPHandler_Lookup(t *testing.T) {
	notFound := fmt.Errorf("%w for 0306406152", catalog.ErrNotFound)
	unavailable := fmt.Errorf("%w for 0306406152 (%w): primary: timeout", catalog.ErrNotFound, catalog.ErrSourceUnavailable)

	tests := []struct {
		name     string
		raw      string
		book     *catalog.BookRecord
		err      error
		wantCode int
		wantErr  string
	}{
		{name: "found", raw: "0306406152", book: &catalog.BookRecord{Title: "Found"}, wantCode: http.StatusOK},
		{name: "invalid", raw: "12345", wantCode: http.StatusUnprocessableEntity, wantErr: httpx.CodeInvalidISBN},
		{name: "not found", raw: "0306406152", err: notFound, wantCode: http.StatusNotFound, wantErr: httpx.CodeBookNotFound},
		{name: "unavailable", raw: "0306406152", err: unavailable, wantCode: http.StatusServiceUnavailable, wantErr: httpx.CodeCatalogUnavailable},
		{name: "unexpected", raw: "0306406152", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantErr: httpx.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(mockResolver)
			if tt.book != nil || tt.err != nil {
				resolver.On("Resolve", mock.Anything, "0306406152").Return(tt.book, tt.err)
			}
			prefs := new(mockPrefs)
			prefs.On("ScorerPreferences", mock.Anything, "device-1").Return(nil, nil)

			h := NewHTTPHandler(NewService(resolver), prefs, logger.NewNop())
			req := httptest.NewRequest(http.MethodGet, "/v1/lookup/"+tt.raw, nil)
			req.SetPathValue("isbn", tt.raw)
			req = req.WithContext(httpx.ContextWithDevice(req.Context(), "device-1", "web"))
			w := httptest.NewRecorder()

			h.Lookup(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantErr != "" {
				var body httpx.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.wantErr, body.Error.Code)
				return
			}

			var body struct {
				Data Result `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, recommend.ReasonNoPreference, body.Data.Recommendation.Rationale)
		})
	}
}

func TestHTTPHandler_Inspect(t *testing.T) {
	h := NewHTTPHandler(NewService(new(mockResolver)), new(mockPrefs), logger.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/v1/isbn/080442957X", nil)
	req.SetPathValue("isbn", "080442957X")
	w := httptest.NewRecorder()

	h.Inspect(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"checksum_valid":true`)
	assert.Contains(t, w.Body.String(), `"valid":true`)
}
