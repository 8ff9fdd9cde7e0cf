package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookscan/internal/httpx"
	"bookscan/internal/platform/logger"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteness(t *testing.T) {
	assert.Equal(t, 0, Preferences{}.Completeness())
	assert.Equal(t, 15, Defaults().Completeness())

	full := Preferences{
		Name:               "Giulia",
		FavoriteGenres:     []string{"Fantasy"},
		Bio:                "Reader",
		ReadingGoal:        24,
		PreferredLanguages: []string{"Italiano"},
	}
	assert.Equal(t, 100, full.Completeness())

	full.Bio = "   "
	assert.Equal(t, 80, full.Completeness())
}

func TestEffectiveReadingGoalAndScorerInput(t *testing.T) {
	var none *Preferences
	assert.Equal(t, DefaultReadingGoal, none.EffectiveReadingGoal())
	assert.Nil(t, none.ScorerInput())

	p := &Preferences{ReadingGoal: 0, FavoriteGenres: []string{"Horror"}}
	assert.Equal(t, DefaultReadingGoal, p.EffectiveReadingGoal())
	assert.Equal(t, []string{"Horror"}, p.ScorerInput().FavoriteGenres)

	p.ReadingGoal = 30
	assert.Equal(t, 30, p.EffectiveReadingGoal())
}

func TestUpdateCommand_Apply(t *testing.T) {
	zero := 0
	p := UpdateCommand{
		Name:           "  Marco ",
		FavoriteGenres: []string{"Fantasy", " fantasy", "", "Sci-Fi"},
		ReadingGoal:    &zero,
	}.Apply()

	assert.Equal(t, "Marco", p.Name)
	assert.Equal(t, []string{"Fantasy", "Sci-Fi"}, p.FavoriteGenres)
	assert.Equal(t, 0, p.ReadingGoal)
	assert.Equal(t, DefaultAvatarColor, p.AvatarColor)
	assert.Equal(t, []string{}, p.PreferredLanguages)

	assert.Equal(t, DefaultReadingGoal, UpdateCommand{}.Apply().ReadingGoal)
}

func TestService_ScorerPreferences(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := NewMockRepository(ctrl)
	svc := NewService(repo)
	ctx := context.Background()

	repo.EXPECT().Get(ctx, "new-device").Return(nil, ErrNotFound)
	prefs, err := svc.ScorerPreferences(ctx, "new-device")
	require.NoError(t, err)
	assert.Nil(t, prefs)

	repo.EXPECT().Get(ctx, "known").Return(&Preferences{FavoriteGenres: []string{"History"}}, nil)
	prefs, err = svc.ScorerPreferences(ctx, "known")
	require.NoError(t, err)
	assert.Equal(t, []string{"History"}, prefs.FavoriteGenres)

	repo.EXPECT().Get(ctx, "broken").Return(nil, errors.New("db down"))
	_, err = svc.ScorerPreferences(ctx, "broken")
	assert.Error(t, err)
}

func authed(r *http.Request) *http.Request {
	return r.WithContext(httpx.ContextWithDevice(r.Context(), "device-1", "web"))
}

func TestHTTPHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := NewMockRepository(ctrl)
	h := NewHTTPHandler(NewService(repo), logger.NewNop())

	t.Run("not saved yet", func(t *testing.T) {
		repo.EXPECT().Get(gomock.Any(), "device-1").Return(nil, ErrNotFound)
		w := httptest.NewRecorder()
		h.Get(w, authed(httptest.NewRequest(http.MethodGet, "/v1/preferences", nil)))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("saved", func(t *testing.T) {
		repo.EXPECT().Get(gomock.Any(), "device-1").Return(&Preferences{Name: "Ada", ReadingGoal: 5}, nil)
		w := httptest.NewRecorder()
		h.Get(w, authed(httptest.NewRequest(http.MethodGet, "/v1/preferences", nil)))

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Ada", body.Data["name"])
		assert.Equal(t, 35.0, body.Data["completeness"])
	})
}

func TestHTTPHandler_Put(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := NewMockRepository(ctrl)
	h := NewHTTPHandler(NewService(repo), logger.NewNop())

	t.Run("valid", func(t *testing.T) {
		repo.EXPECT().Upsert(gomock.Any(), "device-1", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, p *Preferences) error {
			assert.Equal(t, []string{"Fantasy"}, p.FavoriteGenres)
			assert.Equal(t, "blue", p.AvatarColor)
			return nil
		})

		body := `{"name":"Ada","favorite_genres":["Fantasy"],"avatar_color":"blue","reading_goal":20}`
		w := httptest.NewRecorder()
		h.Put(w, authed(httptest.NewRequest(http.MethodPut, "/v1/preferences", strings.NewReader(body))))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid color", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Put(w, authed(httptest.NewRequest(http.MethodPut, "/v1/preferences", strings.NewReader(`{"avatar_color":"black"}`))))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "avatar_color")
	})

	t.Run("negative goal", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Put(w, authed(httptest.NewRequest(http.MethodPut, "/v1/preferences", strings.NewReader(`{"reading_goal":-1}`))))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
