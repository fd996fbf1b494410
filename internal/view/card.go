package view

import (
	"strings"

	"github.com/cinesuggest/web/internal/model"
)

// PlaceholderPoster replaces missing or unreachable poster images.
const PlaceholderPoster = "https://via.placeholder.com/400x600/1f1d2b/4cc9f0?text=No+Poster+Available"

const placeholderAlt = "Poster not available"

// Card is the rendered unit for one movie.
type Card struct {
	ID           int
	Region       model.Region
	Title        string
	Year         int
	Language     string
	Genres       []string
	PosterURL    string
	PosterAlt    string
	PosterFailed bool
	MoodLabel    string
	Hidden       bool
}

// RenderCard maps a movie to its card. id is the movie's position in its grid.
func RenderCard(m model.Movie, id int) Card {
	c := Card{
		ID:        id,
		Title:     m.Title,
		Year:      m.Year,
		Language:  m.Language,
		Genres:    append([]string(nil), m.Genres...),
		PosterURL: strings.TrimSpace(m.Poster),
		PosterAlt: m.Title,
	}
	if c.PosterURL == "" {
		c.PosterURL = PlaceholderPoster
		c.PosterAlt = placeholderAlt
	}
	if m.Mood != "" {
		c.MoodLabel = model.TitleCase(m.Mood)
	}
	return c
}

// MarkPosterFailed switches the card to the placeholder image.
// It reports false when the card already shows the placeholder.
func (c *Card) MarkPosterFailed() bool {
	if c.PosterFailed {
		return false
	}
	c.PosterFailed = true
	c.PosterURL = PlaceholderPoster
	c.PosterAlt = placeholderAlt
	return true
}
