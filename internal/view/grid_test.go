package view

import (
	"errors"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/cinesuggest/web/internal/model"
)

func sampleMovies() []model.Movie {
	return []model.Movie{
		{Title: "Jersey", Year: 2019, Language: "Telugu"},
		{Title: "Andhadhun", Year: 2018, Language: "Hindi"},
		{Title: "Parasite", Year: 2019, Language: "Korean"},
		{Title: "Baahubali", Year: 2015, Language: "telugu"},
		{Title: "Drishyam", Year: 2015, Language: "Malayalam"},
		{Title: "Chhichhore", Year: 2019, Language: "HINDI"},
	}
}

func titles(g *Grid) []string {
	var out []string
	for _, c := range g.Cards(model.RegionBrowse) {
		out = append(out, c.Title)
	}
	return out
}

func TestNewGridKeepsResponseOrder(t *testing.T) {
	movies := sampleMovies()
	g := NewGrid(movies)

	cards := g.Cards(model.RegionResults)
	if len(cards) != len(movies) {
		t.Fatalf("expected %d cards, got %d", len(movies), len(cards))
	}
	for i, c := range cards {
		if c.Title != movies[i].Title || c.ID != i || c.Region != model.RegionResults {
			t.Errorf("card %d: got %+v", i, c)
		}
	}
	if g.Filter != model.FilterAll {
		t.Errorf("expected default filter all, got %q", g.Filter)
	}
}

func TestNewGridAllowsDuplicates(t *testing.T) {
	g := NewGrid([]model.Movie{{Title: "RRR"}, {Title: "RRR"}})
	if g.Len() != 2 {
		t.Errorf("duplicates must render independently, got %d cards", g.Len())
	}
}

func TestApplyFilter(t *testing.T) {
	tests := []struct {
		criterion model.FilterCriterion
		want      []string
	}{
		{model.FilterAll, []string{"Jersey", "Andhadhun", "Parasite", "Baahubali", "Drishyam", "Chhichhore"}},
		{model.FilterTelugu, []string{"Jersey", "Baahubali"}},
		{model.FilterHindi, []string{"Andhadhun", "Chhichhore"}},
		{model.FilterOther, []string{"Parasite", "Drishyam"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.criterion), func(t *testing.T) {
			g := NewGrid(sampleMovies())
			g.ApplyFilter(model.FilterHindi) // start from a filtered state
			g.ApplyFilter(tt.criterion)

			var shown []string
			for _, c := range g.Cards(model.RegionBrowse) {
				if !c.Hidden {
					shown = append(shown, c.Title)
				}
			}
			if len(shown) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, shown)
			}
			for i := range shown {
				if shown[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, shown)
					break
				}
			}
			if g.VisibleCount() != len(tt.want) {
				t.Errorf("VisibleCount = %d, want %d", g.VisibleCount(), len(tt.want))
			}
			if g.Len() != len(sampleMovies()) {
				t.Error("filter must not remove cards")
			}
		})
	}
}

func TestApplyFilterKeepsOrder(t *testing.T) {
	g := NewGrid(sampleMovies())
	g.ApplySort(model.SortTitleAsc)
	before := titles(&g)
	g.ApplyFilter(model.FilterTelugu)
	after := titles(&g)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("filter reordered cards: %v -> %v", before, after)
		}
	}
}

func TestApplySortYear(t *testing.T) {
	g := NewGrid(sampleMovies())

	g.ApplySort(model.SortYearAsc)
	cards := g.Cards(model.RegionBrowse)
	for i := 1; i < len(cards); i++ {
		if cards[i-1].Year > cards[i].Year {
			t.Fatalf("year-asc not non-decreasing at %d: %d > %d", i, cards[i-1].Year, cards[i].Year)
		}
	}
	// Ties keep response order: Baahubali before Drishyam (2015).
	if cards[0].Title != "Baahubali" || cards[1].Title != "Drishyam" {
		t.Errorf("expected stable ties, got %v", titles(&g))
	}

	g.ApplySort(model.SortYearDesc)
	cards = g.Cards(model.RegionBrowse)
	for i := 1; i < len(cards); i++ {
		if cards[i-1].Year < cards[i].Year {
			t.Fatalf("year-desc not non-increasing at %d", i)
		}
	}
}

func TestApplySortTitle(t *testing.T) {
	g := NewGrid(sampleMovies())

	g.ApplySort(model.SortTitleAsc)
	got := titles(&g)
	if !sort.StringsAreSorted(got) {
		t.Errorf("title-asc not sorted: %v", got)
	}

	g.ApplySort(model.SortTitleDesc)
	got = titles(&g)
	for i := 1; i < len(got); i++ {
		if got[i-1] < got[i] {
			t.Fatalf("title-desc not non-increasing: %v", got)
		}
	}
	if g.Sort != model.SortTitleDesc {
		t.Errorf("expected sort recorded, got %q", g.Sort)
	}
}

func TestApplySortIgnoresCase(t *testing.T) {
	g := NewGrid([]model.Movie{{Title: "zindagi"}, {Title: "Andaz"}, {Title: "baazigar"}})
	g.ApplySort(model.SortTitleAsc)
	got := titles(&g)
	want := []string{"Andaz", "baazigar", "zindagi"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestShufflePreservesCards(t *testing.T) {
	g := NewGrid(sampleMovies())
	g.ApplyFilter(model.FilterTelugu)
	rng := rand.New(rand.NewPCG(1, 2))

	if !g.Shuffle(rng.IntN) {
		t.Fatal("expected shuffle of six cards")
	}

	ids := make([]int, 0, len(g.Order))
	ids = append(ids, g.Order...)
	sort.Ints(ids)
	for i, id := range ids {
		if id != i {
			t.Fatalf("shuffle lost or duplicated cards: %v", g.Order)
		}
	}
	if g.Len() != 6 {
		t.Errorf("shuffle changed card count to %d", g.Len())
	}
	if g.VisibleCount() != 2 {
		t.Errorf("shuffle changed visibility, visible = %d", g.VisibleCount())
	}
	if g.Movies[0].Title != "Jersey" {
		t.Error("shuffle must not reorder the underlying movies")
	}
}

func TestShuffleIsNotIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	identity := 0
	const trials = 200
	for i := 0; i < trials; i++ {
		g := NewGrid(sampleMovies())
		g.Shuffle(rng.IntN)
		same := true
		for pos, id := range g.Order {
			if pos != id {
				same = false
				break
			}
		}
		if same {
			identity++
		}
	}
	// 1/720 per trial for six cards.
	if identity > 5 {
		t.Errorf("identity permutation in %d of %d trials", identity, trials)
	}
}

func TestShuffleSmallGrid(t *testing.T) {
	g := NewGrid([]model.Movie{{Title: "Solo"}})
	if g.Shuffle(func(int) int { t.Fatal("intn must not be called"); return 0 }) {
		t.Error("single-card grid should not shuffle")
	}
}

func TestShuffleClearsSort(t *testing.T) {
	g := NewGrid(sampleMovies())
	g.ApplySort(model.SortYearAsc)
	g.Shuffle(func(n int) int { return 0 })
	if g.Sort != "" {
		t.Errorf("expected sort cleared, got %q", g.Sort)
	}
}

func TestGridMarkPosterFailed(t *testing.T) {
	g := NewGrid([]model.Movie{{Title: "A", Poster: "https://x.invalid/a.jpg"}, {Title: "B", Poster: "https://x.invalid/b.jpg"}})

	changed, err := g.MarkPosterFailed(1)
	if err != nil || !changed {
		t.Fatalf("expected change, got %v %v", changed, err)
	}
	changed, err = g.MarkPosterFailed(1)
	if err != nil || changed {
		t.Errorf("second mark should be a no-op, got %v %v", changed, err)
	}

	c, err := g.Card(model.RegionBrowse, 1)
	if err != nil {
		t.Fatalf("Card: %v", err)
	}
	if c.PosterURL != PlaceholderPoster || !c.PosterFailed {
		t.Errorf("expected placeholder poster, got %+v", c)
	}
	c, _ = g.Card(model.RegionBrowse, 0)
	if c.PosterURL != "https://x.invalid/a.jpg" {
		t.Errorf("other cards keep their poster, got %q", c.PosterURL)
	}

	if _, err := g.MarkPosterFailed(5); !errors.Is(err, model.ErrCardNotFound) {
		t.Errorf("expected ErrCardNotFound, got %v", err)
	}
}
