// Package recommend turns a catalog record and the reader's preferences into a
// star rating, a score and a short rationale.
package recommend

import (
	"math"
	"strconv"
	"strings"

	"bookscan/internal/catalog"
)

const (
	minScore     = 1.0
	maxScore     = 5.0
	neutralScore = 3.0

	genreBonus      = 0.5
	highRatingBonus = 0.3
	popularityBonus = 0.2

	highRatingThreshold = 4.0
	popularityThreshold = 10000
)

const (
	ReasonGenreMatch   = "matches your favorite genres"
	ReasonHighRating   = "highly rated by the community"
	ReasonPopular      = "very popular book"
	ReasonDefault      = "based on your taste profile"
	ReasonNoPreference = "complete your profile to get personalized recommendations"
)

// Preferences is the subset of the reader profile the scorer reads.
type Preferences struct {
	FavoriteGenres []string `json:"favorite_genres"`
}

type Recommendation struct {
	StarRating int     `json:"star_rating"`
	Score      float64 `json:"score"`
	Rationale  string  `json:"rationale"`
}

// Score never fails. A nil prefs means the reader has no profile yet and
// yields the neutral recommendation whatever the book.
func Score(book catalog.BookRecord, prefs *Preferences) Recommendation {
	if prefs == nil {
		return Recommendation{StarRating: 3, Score: neutralScore, Rationale: ReasonNoPreference}
	}

	score := book.AverageRating
	if score == 0 {
		score = neutralScore
	}

	var reasons []string
	if matchesGenre(book.Categories, prefs.FavoriteGenres) {
		score += genreBonus
		reasons = append(reasons, ReasonGenreMatch)
	}
	if book.AverageRating >= highRatingThreshold {
		score += highRatingBonus
		reasons = append(reasons, ReasonHighRating)
	}
	if book.RatingsCount > popularityThreshold {
		score += popularityBonus
		reasons = append(reasons, ReasonPopular)
	}

	score = math.Max(minScore, math.Min(maxScore, score))

	rationale := ReasonDefault
	if len(reasons) > 0 {
		rationale = strings.Join(reasons, ", ")
	}

	return Recommendation{
		StarRating: int(math.Floor(score + 0.5)),
		Score:      roundTenths(score),
		Rationale:  rationale,
	}
}

// matchesGenre is a plain case-insensitive substring test. Favorites are used
// as given: an empty one matches any category and padding is significant.
func matchesGenre(categories, favorites []string) bool {
	for _, c := range categories {
		c = strings.ToLower(c)
		for _, f := range favorites {
			if strings.Contains(c, strings.ToLower(f)) {
				return true
			}
		}
	}
	return false
}

// roundTenths rounds to one decimal on the exact binary value, with exact
// halves (x.25, x.75) going up.
func roundTenths(v float64) float64 {
	if q := v * 4; q == math.Trunc(q) && math.Mod(q, 2) == 1 {
		return math.Ceil(v*10) / 10
	}
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	return r
}
