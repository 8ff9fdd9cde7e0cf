// Package profile stores the reader preferences that drive recommendations
// and the reading goal.
package profile

import (
	"errors"
	"strings"
	"time"

	"bookscan/internal/recommend"
)

const (
	DefaultReadingGoal = 12
	DefaultAvatarColor = "purple"
)

var ErrNotFound = errors.New("preferences not found")

var AvatarColors = []string{"purple", "blue", "green", "red", "yellow", "pink"}

type Preferences struct {
	Name               string    `json:"name"`
	FavoriteGenres     []string  `json:"favorite_genres"`
	ReadingGoal        int       `json:"reading_goal"`
	PreferredLanguages []string  `json:"preferred_languages"`
	Bio                string    `json:"bio"`
	AvatarColor        string    `json:"avatar_color"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Defaults returns the profile a new reader starts editing from.
func Defaults() Preferences {
	return Preferences{
		FavoriteGenres:     []string{},
		ReadingGoal:        DefaultReadingGoal,
		PreferredLanguages: []string{},
		AvatarColor:        DefaultAvatarColor,
	}
}

// Completeness scores how much of the profile is filled in, 0 to 100.
func (p Preferences) Completeness() int {
	score := 0
	if strings.TrimSpace(p.Name) != "" {
		score += 20
	}
	if len(p.FavoriteGenres) > 0 {
		score += 30
	}
	if strings.TrimSpace(p.Bio) != "" {
		score += 20
	}
	if p.ReadingGoal > 0 {
		score += 15
	}
	if len(p.PreferredLanguages) > 0 {
		score += 15
	}
	return score
}

// EffectiveReadingGoal falls back to the default when no goal is set.
func (p *Preferences) EffectiveReadingGoal() int {
	if p == nil || p.ReadingGoal <= 0 {
		return DefaultReadingGoal
	}
	return p.ReadingGoal
}

// ScorerInput is nil for a nil profile so the scorer returns its
// "complete your profile" default.
func (p *Preferences) ScorerInput() *recommend.Preferences {
	if p == nil {
		return nil
	}
	return &recommend.Preferences{FavoriteGenres: p.FavoriteGenres}
}

// View is what the API returns.
type View struct {
	Preferences
	Completeness int `json:"completeness"`
}

type UpdateCommand struct {
	Name               string   `json:"name" validate:"max=100"`
	FavoriteGenres     []string `json:"favorite_genres" validate:"max=30,dive,required,max=60"`
	ReadingGoal        *int     `json:"reading_goal" validate:"omitempty,gte=0,lte=1000"`
	PreferredLanguages []string `json:"preferred_languages" validate:"max=20,dive,required,max=40"`
	Bio                string   `json:"bio" validate:"max=500"`
	AvatarColor        string   `json:"avatar_color" validate:"omitempty,oneof=purple blue green red yellow pink"`
}

// Apply returns the preferences described by the command. An omitted reading
// goal or avatar color keeps its default.
func (c UpdateCommand) Apply() Preferences {
	p := Defaults()
	p.Name = strings.TrimSpace(c.Name)
	p.Bio = strings.TrimSpace(c.Bio)
	p.FavoriteGenres = cleanList(c.FavoriteGenres)
	p.PreferredLanguages = cleanList(c.PreferredLanguages)
	if c.ReadingGoal != nil {
		p.ReadingGoal = *c.ReadingGoal
	}
	if c.AvatarColor != "" {
		p.AvatarColor = c.AvatarColor
	}
	return p
}

func cleanList(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}
