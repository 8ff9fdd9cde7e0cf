package library

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bookscan/internal/catalog"
	"bookscan/internal/httpx"
	"bookscan/internal/platform/logger"
	"bookscan/internal/recommend"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

const entryID = "6f1d0b5e-7c1a-4a57-9a43-2f3b2f0e9d11"

func newTestService(t *testing.T) (*Service, *MockRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func entry(title string, authors []string, score float64, stars, userRating int, scanned time.Time) Entry {
	return Entry{
		BookRecord:     catalog.BookRecord{Title: title, Authors: authors},
		Recommendation: recommend.Recommendation{Score: score, StarRating: stars},
		UserRating:     userRating,
		ScannedAt:      scanned,
	}
}

func titles(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}

func sample() []Entry {
	day := func(d int) time.Time { return fixedNow.AddDate(0, 0, -d) }
	return []Entry{
		entry("dune", []string{"Frank Herbert"}, 4.6, 5, 5, day(3)),
		entry("Émile", []string{"Jean-Jacques Rousseau"}, 3.1, 3, 0, day(1)),
		entry("Anonymous Tales", nil, 3.5, 4, 2, day(2)),
		entry("Beloved", []string{"Toni Morrison"}, 4.1, 4, 0, day(0)),
	}
}

func TestApply_DefaultsToNewestFirst(t *testing.T) {
	got := Apply(sample(), ListQuery{})
	assert.Equal(t, []string{"Beloved", "Émile", "Anonymous Tales", "dune"}, titles(got))
}

func TestApply_Sorts(t *testing.T) {
	tests := []struct {
		sort string
		want []string
	}{
		{SortTitle, []string{"Anonymous Tales", "Beloved", "dune", "Émile"}},
		{SortAuthor, []string{"Anonymous Tales", "dune", "Émile", "Beloved"}},
		{SortRating, []string{"dune", "Beloved", "Anonymous Tales", "Émile"}},
	}
	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(Apply(sample(), ListQuery{Sort: tt.sort})))
		})
	}
}

func TestApply_Filters(t *testing.T) {
	assert.Len(t, Apply(sample(), ListQuery{Filter: FilterAll}), 4)
	assert.ElementsMatch(t, []string{"dune", "Anonymous Tales"}, titles(Apply(sample(), ListQuery{Filter: FilterRated})))
	assert.ElementsMatch(t, []string{"Émile", "Beloved"}, titles(Apply(sample(), ListQuery{Filter: FilterUnrated})))
	assert.ElementsMatch(t, []string{"dune", "Anonymous Tales", "Beloved"}, titles(Apply(sample(), ListQuery{Filter: FilterHighRated})))
}

func TestApply_SearchAndStatus(t *testing.T) {
	entries := sample()
	entries[0].ReadingStatus = StatusRead

	assert.Equal(t, []string{"Beloved"}, titles(Apply(entries, ListQuery{Search: "MORRISON"})))
	assert.Equal(t, []string{"dune"}, titles(Apply(entries, ListQuery{Search: " dun "})))
	assert.Empty(t, Apply(entries, ListQuery{Search: "tolkien"}))

	assert.Equal(t, []string{"dune"}, titles(Apply(entries, ListQuery{Status: StatusRead})))
	assert.Len(t, Apply(entries, ListQuery{Status: StatusWantToRead}), 3)
}

func TestService_Add(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	cmd := AddCommand{
		Title:         "The Hobbit",
		ISBN:          "978-0-547-92822-7",
		Categories:    []string{"Fantasy"},
		AverageRating: 4.7,
		RatingsCount:  20000,
	}
	e, err := svc.Add(ctx, "device-1", cmd, &recommend.Preferences{FavoriteGenres: []string{"fantasy"}})
	require.NoError(t, err)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "device-1", e.DeviceID)
	assert.Equal(t, "9780547928227", e.ISBN)
	assert.Equal(t, StatusWantToRead, e.ReadingStatus)
	assert.Equal(t, fixedNow, e.ScannedAt)
	assert.Equal(t, fixedNow, e.FetchedAt)
	assert.Equal(t, catalog.NoDescription, e.Description)
	assert.Equal(t, 5, e.Recommendation.StarRating)
	assert.Nil(t, e.ReviewDate)
}

func TestService_AddWithoutProfileIsNeutral(t *testing.T) {
	svc, repo := newTestService(t)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	e, err := svc.Add(context.Background(), "d", AddCommand{Title: "T", ISBN: "0306406152", AverageRating: 5}, nil)
	require.NoError(t, err)
	assert.Equal(t, recommend.ReasonNoPreference, e.Recommendation.Rationale)
	assert.Equal(t, 3.0, e.Recommendation.Score)
}

func TestService_Update(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	stored := &Entry{ID: entryID, DeviceID: "device-1", ReadingStatus: StatusWantToRead}
	repo.EXPECT().Get(ctx, "device-1", entryID).Return(stored, nil)
	repo.EXPECT().Update(ctx, stored).Return(nil)

	rating, status := 4, StatusRead
	e, err := svc.Update(ctx, "device-1", entryID, UpdateCommand{UserRating: &rating, ReadingStatus: &status})
	require.NoError(t, err)

	assert.Equal(t, 4, e.UserRating)
	assert.Equal(t, StatusRead, e.ReadingStatus)
	require.NotNil(t, e.ReviewDate)
	assert.Equal(t, fixedNow, *e.ReviewDate)
}

func TestService_UpdateWithoutChangesKeepsReviewDate(t *testing.T) {
	svc, repo := newTestService(t)
	stored := &Entry{ID: entryID}
	repo.EXPECT().Get(gomock.Any(), "d", entryID).Return(stored, nil)

	e, err := svc.Update(context.Background(), "d", entryID, UpdateCommand{})
	require.NoError(t, err)
	assert.Nil(t, e.ReviewDate)
}

func TestService_MalformedIDIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "d", "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "d", "nope"), ErrNotFound)
}

type stubPrefs struct {
	prefs *recommend.Preferences
	err   error
}

func (s stubPrefs) ScorerPreferences(context.Context, string) (*recommend.Preferences, error) {
	return s.prefs, s.err
}

func authed(r *http.Request) *http.Request {
	return r.WithContext(httpx.ContextWithDevice(r.Context(), "device-1", "web"))
}

func TestHTTPHandler_Add(t *testing.T) {
	svc, repo := newTestService(t)
	h := NewHTTPHandler(svc, stubPrefs{}, logger.NewNop())

	t.Run("created", func(t *testing.T) {
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		body := `{"title":"Dune","isbn":"9780441172719","authors":["Frank Herbert"],"reading_status":"reading"}`
		w := httptest.NewRecorder()
		h.Add(w, authed(httptest.NewRequest(http.MethodPost, "/v1/library", strings.NewReader(body))))

		require.Equal(t, http.StatusCreated, w.Code)
		var resp struct {
			Data map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Dune", resp.Data["title"])
		assert.Equal(t, "reading", resp.Data["reading_status"])
		assert.NotContains(t, resp.Data, "device_id")
	})

	t.Run("invalid isbn", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Add(w, authed(httptest.NewRequest(http.MethodPost, "/v1/library", strings.NewReader(`{"title":"Dune","isbn":"123"}`))))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "isbn")
	})

	t.Run("preferences failure", func(t *testing.T) {
		h := NewHTTPHandler(svc, stubPrefs{err: errors.New("db down")}, logger.NewNop())
		w := httptest.NewRecorder()
		h.Add(w, authed(httptest.NewRequest(http.MethodPost, "/v1/library", strings.NewReader(`{"title":"Dune","isbn":"9780441172719"}`))))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_List(t *testing.T) {
	svc, repo := newTestService(t)
	h := NewHTTPHandler(svc, stubPrefs{}, logger.NewNop())

	t.Run("sorted", func(t *testing.T) {
		repo.EXPECT().ListByDevice(gomock.Any(), "device-1").Return(sample(), nil)
		w := httptest.NewRecorder()
		h.List(w, authed(httptest.NewRequest(http.MethodGet, "/v1/library?sort=title&filter=rated", nil)))

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data []Entry        `json:"data"`
			Meta map[string]any `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"Anonymous Tales", "dune"}, titles(resp.Data))
		assert.Equal(t, 2.0, resp.Meta["count"])
	})

	t.Run("paged", func(t *testing.T) {
		entries := sample()
		for i := range entries {
			entries[i].ID = string(rune('a' + i))
		}
		repo.EXPECT().ListByDevice(gomock.Any(), "device-1").Return(entries, nil)
		w := httptest.NewRecorder()
		h.List(w, authed(httptest.NewRequest(http.MethodGet, "/v1/library?limit=3", nil)))

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data []Entry        `json:"data"`
			Meta map[string]any `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Data, 3)
		assert.Equal(t, 4.0, resp.Meta["total"])
		assert.Equal(t, EncodeCursor(CursorData{AfterID: "c"}), resp.Meta["next_cursor"])
	})

	t.Run("bad cursor", func(t *testing.T) {
		repo.EXPECT().ListByDevice(gomock.Any(), "device-1").Return(sample(), nil)
		w := httptest.NewRecorder()
		h.List(w, authed(httptest.NewRequest(http.MethodGet, "/v1/library?cursor=%21%21", nil)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown sort", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.List(w, authed(httptest.NewRequest(http.MethodGet, "/v1/library?sort=pages", nil)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_UpdateAndDelete(t *testing.T) {
	svc, repo := newTestService(t)
	h := NewHTTPHandler(svc, stubPrefs{}, logger.NewNop())

	t.Run("rating out of range", func(t *testing.T) {
		req := authed(httptest.NewRequest(http.MethodPatch, "/v1/library/"+entryID, strings.NewReader(`{"user_rating":6}`)))
		req.SetPathValue("id", entryID)
		w := httptest.NewRecorder()
		h.Update(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update missing entry", func(t *testing.T) {
		repo.EXPECT().Get(gomock.Any(), "device-1", entryID).Return(nil, ErrNotFound)
		req := authed(httptest.NewRequest(http.MethodPatch, "/v1/library/"+entryID, strings.NewReader(`{"user_review":"great"}`)))
		req.SetPathValue("id", entryID)
		w := httptest.NewRecorder()
		h.Update(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		repo.EXPECT().Delete(gomock.Any(), "device-1", entryID).Return(nil)
		req := authed(httptest.NewRequest(http.MethodDelete, "/v1/library/"+entryID, nil))
		req.SetPathValue("id", entryID)
		w := httptest.NewRecorder()
		h.Delete(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
