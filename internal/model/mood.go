package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mood is a selectable mood button.
type Mood struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

const (
	defaultMoodIcon  = "fas fa-film"
	defaultMoodColor = "#9d4edd"
)

// DefaultMoods is the client-known mood enumeration.
var DefaultMoods = []Mood{
	{ID: "happy", DisplayName: "Happy", Icon: "fas fa-laugh-beam", Color: "#ff6b35"},
	{ID: "sad", DisplayName: "Sad", Icon: "fas fa-sad-tear", Color: "#4cc9f0"},
	{ID: "romantic", DisplayName: "Romantic", Icon: "fas fa-heart", Color: "#ff0054"},
	{ID: "angry", DisplayName: "Angry", Icon: "fas fa-angry", Color: "#ff6b35"},
	{ID: "relaxed", DisplayName: "Relaxed", Icon: "fas fa-spa", Color: "#9d4edd"},
	{ID: "excited", DisplayName: "Excited", Icon: "fas fa-star", Color: "#ff6b35"},
	{ID: "motivational", DisplayName: "Motivational", Icon: "fas fa-rocket", Color: "#4cc9f0"},
	{ID: "adventurous", DisplayName: "Adventurous", Icon: "fas fa-mountain", Color: "#9d4edd"},
}

// MoodCatalog is an ordered, read-only set of moods.
type MoodCatalog struct {
	moods []Mood
	byID  map[string]Mood
}

// NewMoodCatalog builds a catalog from moods, dropping duplicate ids.
func NewMoodCatalog(moods []Mood) *MoodCatalog {
	c := &MoodCatalog{byID: make(map[string]Mood, len(moods))}
	for _, m := range moods {
		if _, ok := c.byID[m.ID]; ok {
			continue
		}
		c.byID[m.ID] = m
		c.moods = append(c.moods, m)
	}
	return c
}

// Merge returns a new catalog with server-supplied mood ids appended.
// Known ids keep their icon and colour.
func (c *MoodCatalog) Merge(ids []string) *MoodCatalog {
	moods := append([]Mood(nil), c.moods...)
	for _, id := range ids {
		id = NormalizeMoodID(id)
		if id == "" {
			continue
		}
		moods = append(moods, MoodFromID(id))
	}
	return NewMoodCatalog(moods)
}

// All returns the moods in display order.
func (c *MoodCatalog) All() []Mood {
	return append([]Mood(nil), c.moods...)
}

// Lookup returns the mood for id, or a generated one when id is not in the catalog.
func (c *MoodCatalog) Lookup(id string) (Mood, bool) {
	id = NormalizeMoodID(id)
	if m, ok := c.byID[id]; ok {
		return m, true
	}
	return MoodFromID(id), false
}

// MoodFromID builds a mood with default styling for an id the catalog does not know.
func MoodFromID(id string) Mood {
	return Mood{
		ID:          id,
		DisplayName: TitleCase(id),
		Icon:        defaultMoodIcon,
		Color:       defaultMoodColor,
	}
}

// NormalizeMoodID lowercases and trims a mood id.
func NormalizeMoodID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// TitleCase upper-cases the first letter of s, leaving the rest as is.
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	first := []rune(s)[:1]
	rest := strings.TrimPrefix(s, string(first))
	return cases.Upper(language.Und).String(string(first)) + rest
}
