package view

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cinesuggest/web/internal/model"
)

// Grid is the in-memory movie list behind a rendered grid. Movies keep the
// backend's order; Order is the presentation order as indexes into Movies.
// Hidden and FailedPosters are indexed like Movies.
type Grid struct {
	Movies        []model.Movie         `json:"movies"`
	Order         []int                 `json:"order"`
	Hidden        []bool                `json:"hidden"`
	FailedPosters []bool                `json:"failedPosters"`
	Filter        model.FilterCriterion `json:"filter"`
	Sort          model.SortCriterion   `json:"sort,omitempty"`
}

// NewGrid builds a grid showing movies in response order.
func NewGrid(movies []model.Movie) Grid {
	g := Grid{
		Movies:        append([]model.Movie(nil), movies...),
		Order:         make([]int, len(movies)),
		Hidden:        make([]bool, len(movies)),
		FailedPosters: make([]bool, len(movies)),
		Filter:        model.FilterAll,
	}
	for i := range g.Order {
		g.Order[i] = i
	}
	return g
}

// Len returns the number of cards.
func (g *Grid) Len() int {
	return len(g.Movies)
}

// VisibleCount returns the number of cards the current filter shows.
func (g *Grid) VisibleCount() int {
	n := 0
	for _, h := range g.Hidden {
		if !h {
			n++
		}
	}
	return n
}

// Cards returns the cards in presentation order.
func (g *Grid) Cards(region model.Region) []Card {
	cards := make([]Card, 0, len(g.Order))
	for _, id := range g.Order {
		cards = append(cards, g.card(region, id))
	}
	return cards
}

// Card returns a single card by id.
func (g *Grid) Card(region model.Region, id int) (Card, error) {
	if id < 0 || id >= len(g.Movies) {
		return Card{}, fmt.Errorf("%w: %d", model.ErrCardNotFound, id)
	}
	return g.card(region, id), nil
}

func (g *Grid) card(region model.Region, id int) Card {
	c := RenderCard(g.Movies[id], id)
	c.Region = region
	if id < len(g.Hidden) {
		c.Hidden = g.Hidden[id]
	}
	if id < len(g.FailedPosters) && g.FailedPosters[id] {
		c.MarkPosterFailed()
	}
	return c
}

// MarkPosterFailed records that card id could not load its poster.
// It reports whether anything changed.
func (g *Grid) MarkPosterFailed(id int) (bool, error) {
	if id < 0 || id >= len(g.Movies) {
		return false, fmt.Errorf("%w: %d", model.ErrCardNotFound, id)
	}
	if len(g.FailedPosters) != len(g.Movies) {
		g.FailedPosters = make([]bool, len(g.Movies))
	}
	if g.FailedPosters[id] {
		return false, nil
	}
	g.FailedPosters[id] = true
	return true, nil
}

// MatchesFilter reports whether a movie in language passes criterion.
func MatchesFilter(criterion model.FilterCriterion, lang string) bool {
	lang = strings.ToLower(strings.TrimSpace(lang))
	switch criterion {
	case model.FilterAll:
		return true
	case model.FilterTelugu:
		return lang == "telugu"
	case model.FilterHindi:
		return lang == "hindi"
	case model.FilterOther:
		return lang != "telugu" && lang != "hindi"
	default:
		return false
	}
}

// ApplyFilter hides the cards criterion does not match. Order is untouched.
func (g *Grid) ApplyFilter(criterion model.FilterCriterion) {
	if len(g.Hidden) != len(g.Movies) {
		g.Hidden = make([]bool, len(g.Movies))
	}
	for i, m := range g.Movies {
		g.Hidden[i] = !MatchesFilter(criterion, m.Language)
	}
	g.Filter = criterion
}

// ApplySort reorders the cards. Ties keep their current relative order.
func (g *Grid) ApplySort(criterion model.SortCriterion) {
	col := collate.New(language.Und, collate.IgnoreCase)
	var less func(a, b model.Movie) bool
	switch criterion {
	case model.SortYearDesc:
		less = func(a, b model.Movie) bool { return a.Year > b.Year }
	case model.SortYearAsc:
		less = func(a, b model.Movie) bool { return a.Year < b.Year }
	case model.SortTitleAsc:
		less = func(a, b model.Movie) bool { return col.CompareString(a.Title, b.Title) < 0 }
	case model.SortTitleDesc:
		less = func(a, b model.Movie) bool { return col.CompareString(b.Title, a.Title) < 0 }
	default:
		return
	}
	sort.SliceStable(g.Order, func(i, j int) bool {
		return less(g.Movies[g.Order[i]], g.Movies[g.Order[j]])
	})
	g.Sort = criterion
}

// Shuffle applies a uniform random permutation (Fisher-Yates) to the
// presentation order. intn must return a value in [0, n). Grids with fewer
// than two cards are left alone and Shuffle reports false.
func (g *Grid) Shuffle(intn func(n int) int) bool {
	if len(g.Order) < 2 {
		return false
	}
	for i := len(g.Order) - 1; i > 0; i-- {
		j := intn(i + 1)
		g.Order[i], g.Order[j] = g.Order[j], g.Order[i]
	}
	g.Sort = ""
	return true
}
