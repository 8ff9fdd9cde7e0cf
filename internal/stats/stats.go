// Package stats summarizes a device's library for the statistics screen.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"bookscan/internal/library"
	"bookscan/internal/profile"
)

const (
	topGenres      = 5
	activityMonths = 6
)

type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

type MonthCount struct {
	Month string `json:"month"`
	Books int    `json:"books"`
}

type Summary struct {
	TotalBooks       int          `json:"total_books"`
	Read             int          `json:"read"`
	Reading          int          `json:"reading"`
	WantToRead       int          `json:"want_to_read"`
	RatedBooks       int          `json:"rated_books"`
	AverageRating    float64      `json:"average_rating"`
	PagesRead        int          `json:"pages_read"`
	ReadingGoal      int          `json:"reading_goal"`
	GoalProgress     float64      `json:"goal_progress"`
	TopGenres        []GenreCount `json:"top_genres"`
	MonthlyActivity  []MonthCount `json:"monthly_activity"`
	CompletedPercent float64      `json:"completed_percent"`
}

// Compute builds the summary as of now. prefs may be nil.
func Compute(entries []library.Entry, prefs *profile.Preferences, now time.Time) Summary {
	s := Summary{
		TotalBooks:  len(entries),
		ReadingGoal: prefs.EffectiveReadingGoal(),
	}

	ratingSum := 0
	genres := map[string]int{}
	for _, e := range entries {
		switch e.Status() {
		case library.StatusRead:
			s.Read++
			s.PagesRead += e.PageCount
		case library.StatusReading:
			s.Reading++
		default:
			s.WantToRead++
		}
		if e.UserRating > 0 {
			s.RatedBooks++
			ratingSum += e.UserRating
		}
		for _, g := range e.Categories {
			genres[g]++
		}
	}

	if s.RatedBooks > 0 {
		s.AverageRating = round1(float64(ratingSum) / float64(s.RatedBooks))
	}
	s.GoalProgress = round1(math.Min(float64(s.Read)/float64(s.ReadingGoal)*100, 100))
	if s.TotalBooks > 0 {
		s.CompletedPercent = round1(float64(s.Read) / float64(s.TotalBooks) * 100)
	}
	s.TopGenres = rankGenres(genres)
	s.MonthlyActivity = monthlyActivity(entries, now)
	return s
}

func rankGenres(counts map[string]int) []GenreCount {
	out := make([]GenreCount, 0, len(counts))
	for g, n := range counts {
		out = append(out, GenreCount{Genre: g, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	if len(out) > topGenres {
		out = out[:topGenres]
	}
	return out
}

// monthlyActivity counts review dates in the current and five previous
// calendar months, oldest first.
func monthlyActivity(entries []library.Entry, now time.Time) []MonthCount {
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	out := make([]MonthCount, activityMonths)
	index := map[string]int{}
	for i := range out {
		m := first.AddDate(0, i-(activityMonths-1), 0)
		label := fmt.Sprintf("%d/%d", int(m.Month()), m.Year())
		out[i] = MonthCount{Month: label}
		index[label] = i
	}

	for _, e := range entries {
		if e.ReviewDate == nil {
			continue
		}
		d := e.ReviewDate.UTC()
		if i, ok := index[fmt.Sprintf("%d/%d", int(d.Month()), d.Year())]; ok {
			out[i].Books++
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
