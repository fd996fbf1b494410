package view

import (
	"testing"

	"github.com/cinesuggest/web/internal/model"
)

func TestRenderCard(t *testing.T) {
	m := model.Movie{
		Title:    "Baahubali",
		Year:     2015,
		Language: "Telugu",
		Genres:   []string{"Action", "Drama"},
		Poster:   "https://img.example/baahubali.jpg",
		Mood:     "adventurous",
	}

	c := RenderCard(m, 3)

	if c.ID != 3 || c.Title != "Baahubali" || c.Year != 2015 || c.Language != "Telugu" {
		t.Errorf("unexpected card %+v", c)
	}
	if c.PosterURL != m.Poster || c.PosterAlt != "Baahubali" {
		t.Errorf("expected poster %q with title alt, got %q / %q", m.Poster, c.PosterURL, c.PosterAlt)
	}
	if c.MoodLabel != "Adventurous" {
		t.Errorf("expected capitalised mood label, got %q", c.MoodLabel)
	}
	if len(c.Genres) != 2 {
		t.Fatalf("expected two genres, got %v", c.Genres)
	}

	c.Genres[0] = "changed"
	if m.Genres[0] != "Action" {
		t.Error("card must not share the movie's genre slice")
	}
}

func TestRenderCardMissingOptionalData(t *testing.T) {
	c := RenderCard(model.Movie{Title: "Untitled", Year: 2020, Language: "Hindi"}, 0)

	if c.PosterURL != PlaceholderPoster {
		t.Errorf("missing poster should render the placeholder, got %q", c.PosterURL)
	}
	if c.MoodLabel != "" {
		t.Errorf("expected no mood label, got %q", c.MoodLabel)
	}
	if len(c.Genres) != 0 {
		t.Errorf("expected empty genres, got %v", c.Genres)
	}
}

func TestMarkPosterFailed(t *testing.T) {
	c := RenderCard(model.Movie{Title: "Jersey", Poster: "https://unreachable.invalid/jersey.jpg"}, 0)

	if !c.MarkPosterFailed() {
		t.Fatal("first failure should change the card")
	}
	if c.PosterURL != PlaceholderPoster {
		t.Errorf("expected placeholder after failure, got %q", c.PosterURL)
	}
	if c.PosterAlt != "Poster not available" {
		t.Errorf("unexpected alt %q", c.PosterAlt)
	}
	if c.MarkPosterFailed() {
		t.Error("second failure should be a no-op")
	}
	if c.PosterURL != PlaceholderPoster {
		t.Errorf("placeholder must stay final, got %q", c.PosterURL)
	}
}
