package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cinesuggest/web/internal/logging"
	"github.com/cinesuggest/web/internal/metrics"
	"github.com/cinesuggest/web/internal/model"
	"github.com/cinesuggest/web/internal/session"
	"github.com/cinesuggest/web/internal/view"
)

// MovieAPI is the movie backend as the controller sees it
type MovieAPI interface {
	Moods(ctx context.Context) (*model.MoodsResponse, error)
	MoviesByMood(ctx context.Context, mood string) (*model.MoodMoviesResponse, error)
	AllMovies(ctx context.Context) (*model.AllMoviesResponse, error)
	Search(ctx context.Context, query string) (*model.SearchResponse, error)
	FunnyQuote(ctx context.Context) (*model.QuoteResponse, error)
	Recommend(ctx context.Context, mood string) (*model.RecommendResponse, error)
}

// Notifier pushes messages to the pages of a session
type Notifier interface {
	Notify(sessionID string, toast model.Toast)
	BroadcastPosterFallback(sessionID string, region model.Region, cardID int, url string)
}

// PosterScheduler queues poster checks for a freshly filled grid
type PosterScheduler interface {
	Schedule(ctx context.Context, payload *model.PosterProbePayload) error
}

// Controller owns the view state of every session. Each operation loads the
// session, applies the action and returns the state to render.
//
// Region-targeting operations issue a request token before calling the
// backend and only apply the response while that token is still the
// latest one for the region.
type Controller struct {
	api      MovieAPI
	store    session.Store
	notifier Notifier
	posters  PosterScheduler
	moods    *model.MoodCatalog
	intn     func(n int) int
}

// NewController creates a controller. Shuffles and random picks use
// math/rand/v2 until WithRand replaces it.
func NewController(api MovieAPI, store session.Store, notifier Notifier, moods *model.MoodCatalog) *Controller {
	if moods == nil {
		moods = model.NewMoodCatalog(model.DefaultMoods)
	}
	return &Controller{
		api:      api,
		store:    store,
		notifier: notifier,
		moods:    moods,
		intn:     rand.IntN,
	}
}

// WithRand sets the random source. intn must return a value in [0, n).
func (c *Controller) WithRand(intn func(n int) int) *Controller {
	c.intn = intn
	return c
}

// WithPosters enables poster probing for filled grids.
func (c *Controller) WithPosters(p PosterScheduler) *Controller {
	c.posters = p
	return c
}

// Moods returns the mood buttons in display order.
func (c *Controller) Moods() []model.Mood {
	return c.moods.All()
}

// LoadMoods merges the backend's mood list into the catalog. On failure the
// catalog is kept as is.
func (c *Controller) LoadMoods(ctx context.Context) error {
	resp, err := c.api.Moods(ctx)
	if err != nil {
		return fmt.Errorf("failed to load moods: %w", err)
	}
	if !resp.Success {
		return errors.New("failed to load moods: backend reported failure")
	}
	c.moods = c.moods.Merge(resp.Moods)
	return nil
}

// State returns the stored state of a session.
func (c *Controller) State(ctx context.Context, sessionID string) (*session.State, error) {
	st, err := c.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return st, nil
}

// Open prepares a session for a full page render. A new session gets the
// browse grid and a quote. A browse grid that failed is loaded again and a
// results error placard is cleared, since the page offers a reload for both.
func (c *Controller) Open(ctx context.Context, sessionID string) (*session.State, error) {
	st, err := c.store.Update(ctx, sessionID, func(s *session.State) error {
		if s.Results.Placard != nil && s.Results.Placard.Action == model.PlacardReload {
			s.Results = session.Results{Grid: view.NewGrid(nil)}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	needBrowse := !st.BrowseLoaded || st.BrowseError != ""
	needQuote := st.Quote == ""
	if !needBrowse && !needQuote {
		return st, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if needBrowse {
		g.Go(func() error {
			_, err := c.LoadInitialMovies(gctx, sessionID)
			return err
		})
	}
	if needQuote {
		g.Go(func() error {
			_, err := c.LoadRandomQuote(gctx, sessionID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return c.State(ctx, sessionID)
}

// SelectMood fills the results view with the movies of a mood.
func (c *Controller) SelectMood(ctx context.Context, sessionID, moodID string) (*session.State, error) {
	mood, _ := c.moods.Lookup(moodID)

	token, err := c.begin(ctx, sessionID, model.RegionResults, func(s *session.State) {
		s.Results = session.Results{
			Shown:   true,
			Loading: true,
			Kind:    model.ResultsMood,
			Title:   moodTitle(mood.DisplayName),
			MoodID:  mood.ID,
			Grid:    view.NewGrid(nil),
		}
	})
	if err != nil {
		return nil, err
	}
	c.toast(sessionID, moodToast(mood.ID), model.ToastInfo)

	resp, apiErr := c.api.MoviesByMood(ctx, mood.ID)
	st, err := c.commit(ctx, sessionID, model.RegionResults, token, func(s *session.State) error {
		s.Results.Loading = false
		if apiErr != nil {
			failResults(s)
			return nil
		}
		s.Results.Grid = view.NewGrid(resp.Movies)
		s.Results.CountLabel = moodCountLabel(resp.Count)
		s.Results.Quote = resp.Quote
		s.Results.Placard = nil
		return nil
	})
	if errors.Is(err, session.ErrStale) {
		return c.State(ctx, sessionID)
	}
	if err != nil {
		return nil, err
	}

	if apiErr != nil {
		logging.Warn().Err(apiErr).Str("mood", mood.ID).Msg("failed to load mood movies")
		c.toast(sessionID, msgMoodFailed, model.ToastError)
		return st, nil
	}
	c.schedulePosters(ctx, st, model.RegionResults, token)
	return st, nil
}

// Search fills the results view with the backend's matches for query.
func (c *Controller) Search(ctx context.Context, sessionID, query string) (*session.State, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		c.toast(sessionID, msgSearchEmpty, model.ToastInfo)
		return nil, model.ErrEmptyQuery
	}

	token, err := c.begin(ctx, sessionID, model.RegionResults, func(s *session.State) {
		s.Results = session.Results{
			Shown:   true,
			Loading: true,
			Kind:    model.ResultsSearch,
			Title:   titleSearch,
			Query:   query,
			Grid:    view.NewGrid(nil),
		}
		s.SearchInput = query
	})
	if err != nil {
		return nil, err
	}

	resp, apiErr := c.api.Search(ctx, query)
	st, err := c.commit(ctx, sessionID, model.RegionResults, token, func(s *session.State) error {
		s.Results.Loading = false
		if apiErr != nil {
			failResults(s)
			return nil
		}
		s.Results.Grid = view.NewGrid(resp.Results)
		s.Results.CountLabel = searchCountLabel(resp.Count, query)
		s.Results.Quote = resp.Quote
		s.Results.Placard = nil
		return nil
	})
	if errors.Is(err, session.ErrStale) {
		return c.State(ctx, sessionID)
	}
	if err != nil {
		return nil, err
	}

	if apiErr != nil {
		logging.Warn().Err(apiErr).Str("query", query).Msg("search failed")
		c.toast(sessionID, msgSearchFailed, model.ToastError)
		return st, nil
	}
	if resp.Count > 0 {
		c.toast(sessionID, searchFoundToast(resp.Count, query), model.ToastSuccess)
	} else {
		c.toast(sessionID, searchNoneToast(query), model.ToastInfo)
	}
	c.schedulePosters(ctx, st, model.RegionResults, token)
	return st, nil
}

// RandomPick asks the backend for a random recommendation.
func (c *Controller) RandomPick(ctx context.Context, sessionID string) (*session.State, error) {
	token, err := c.begin(ctx, sessionID, model.RegionResults, func(s *session.State) {
		s.Results = session.Results{
			Shown:   true,
			Loading: true,
			Kind:    model.ResultsRandom,
			Title:   titleRandom,
			Grid:    view.NewGrid(nil),
		}
	})
	if err != nil {
		return nil, err
	}

	resp, apiErr := c.api.Recommend(ctx, model.RandomMood)
	st, err := c.commit(ctx, sessionID, model.RegionResults, token, func(s *session.State) error {
		s.Results.Loading = false
		switch {
		case apiErr != nil:
			s.Results.Placard = &view.Placard{Message: msgConnectFailed, ActionLabel: msgTryAgain, Action: model.PlacardRetryRandom}
		case !resp.Success:
			msg := resp.Error
			if msg == "" {
				msg = msgRecommendFailed
			}
			s.Results.Placard = &view.Placard{Message: msg, ActionLabel: msgTryAgain, Action: model.PlacardRetryRandom}
		default:
			s.Results.Subtitle = randomSubtitle(resp.Mood)
			s.Results.MoodID = resp.Mood
			s.Results.Grid = view.NewGrid(resp.Movies)
			s.Results.CountLabel = randomCountLabel(len(resp.Movies))
			s.Results.Placard = nil
		}
		return nil
	})
	if errors.Is(err, session.ErrStale) {
		return c.State(ctx, sessionID)
	}
	if err != nil {
		return nil, err
	}

	switch {
	case apiErr != nil:
		logging.Warn().Err(apiErr).Msg("random pick failed")
	case !resp.Success:
		logging.Warn().Str("error", resp.Error).Msg("backend refused random pick")
	default:
		c.schedulePosters(ctx, st, model.RegionResults, token)
	}
	return st, nil
}

// LoadInitialMovies fills the browse grid with every movie.
func (c *Controller) LoadInitialMovies(ctx context.Context, sessionID string) (*session.State, error) {
	token, err := c.begin(ctx, sessionID, model.RegionBrowse, func(*session.State) {})
	if err != nil {
		return nil, err
	}

	resp, apiErr := c.api.AllMovies(ctx)
	st, err := c.commit(ctx, sessionID, model.RegionBrowse, token, func(s *session.State) error {
		s.BrowseLoaded = true
		if apiErr != nil {
			s.Browse = view.NewGrid(nil)
			s.BrowseError = msgBrowseError
			return nil
		}
		s.Browse = view.NewGrid(resp.Movies)
		s.BrowseError = ""
		return nil
	})
	if errors.Is(err, session.ErrStale) {
		return c.State(ctx, sessionID)
	}
	if err != nil {
		return nil, err
	}

	if apiErr != nil {
		logging.Warn().Err(apiErr).Msg("failed to load all movies")
		c.toast(sessionID, msgMoodFailed, model.ToastError)
		return st, nil
	}
	c.schedulePosters(ctx, st, model.RegionBrowse, token)
	return st, nil
}

// LoadRandomQuote replaces the page quote, falling back to a local line when
// the backend has none to give.
func (c *Controller) LoadRandomQuote(ctx context.Context, sessionID string) (*session.State, error) {
	token, err := c.begin(ctx, sessionID, model.RegionQuote, func(*session.State) {})
	if err != nil {
		return nil, err
	}

	quote := ""
	resp, apiErr := c.api.FunnyQuote(ctx)
	if apiErr == nil {
		quote = strings.TrimSpace(resp.Quote)
	}
	if quote == "" {
		if apiErr != nil {
			logging.Debug().Err(apiErr).Msg("using local quote")
		}
		metrics.QuoteFallbacks.Inc()
		quote = LocalQuotes[c.intn(len(LocalQuotes))]
	}

	st, err := c.commit(ctx, sessionID, model.RegionQuote, token, func(s *session.State) error {
		s.Quote = quote
		return nil
	})
	if errors.Is(err, session.ErrStale) {
		return c.State(ctx, sessionID)
	}
	return st, err
}

// RefreshQuote loads a new quote. announce is set by the fun-quote button.
func (c *Controller) RefreshQuote(ctx context.Context, sessionID string, announce bool) (*session.State, error) {
	st, err := c.LoadRandomQuote(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if announce {
		c.toast(sessionID, msgQuoteAnnounced, model.ToastInfo)
	}
	return st, nil
}

// Shuffle randomly reorders a grid.
func (c *Controller) Shuffle(ctx context.Context, sessionID string, region model.Region) (*session.State, error) {
	st, err := c.updateGrid(ctx, sessionID, region, func(g *view.Grid) error {
		g.Shuffle(c.intn)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.toast(sessionID, msgShuffled, model.ToastInfo)
	return st, nil
}

// Filter shows only the cards matching criterion.
func (c *Controller) Filter(ctx context.Context, sessionID string, region model.Region, criterion model.FilterCriterion) (*session.State, error) {
	if !slices.Contains(model.ValidFilters, criterion) {
		return nil, fmt.Errorf("%w: filter %q", model.ErrInvalidCriteria, criterion)
	}
	st, err := c.updateGrid(ctx, sessionID, region, func(g *view.Grid) error {
		g.ApplyFilter(criterion)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.toast(sessionID, filterToast(model.TitleCase(string(criterion))), model.ToastInfo)
	return st, nil
}

// Sort orders a grid by criterion.
func (c *Controller) Sort(ctx context.Context, sessionID string, region model.Region, criterion model.SortCriterion) (*session.State, error) {
	if !slices.Contains(model.ValidSorts, criterion) {
		return nil, fmt.Errorf("%w: sort %q", model.ErrInvalidCriteria, criterion)
	}
	st, err := c.updateGrid(ctx, sessionID, region, func(g *view.Grid) error {
		g.ApplySort(criterion)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.toast(sessionID, msgSorted, model.ToastInfo)
	return st, nil
}

// PosterFailed records that the page could not load a card's poster.
func (c *Controller) PosterFailed(ctx context.Context, sessionID string, region model.Region, cardID int) error {
	var changed bool
	_, err := c.updateGrid(ctx, sessionID, region, func(g *view.Grid) error {
		var err error
		changed, err = g.MarkPosterFailed(cardID)
		return err
	})
	if err != nil {
		return err
	}
	if changed {
		metrics.PosterFallbacks.WithLabelValues("client").Inc()
	}
	return nil
}

// PosterUnreachable applies a failed poster probe. It returns
// session.ErrStale when the grid was replaced after the probe was queued.
func (c *Controller) PosterUnreachable(ctx context.Context, sessionID string, region model.Region, token string, cardID int) error {
	var changed bool
	_, err := c.commit(ctx, sessionID, region, token, func(s *session.State) error {
		g, err := s.Grid(region)
		if err != nil {
			return err
		}
		changed, err = g.MarkPosterFailed(cardID)
		return err
	})
	if err != nil {
		return err
	}
	if changed {
		metrics.PosterFallbacks.WithLabelValues("probe").Inc()
		if c.notifier != nil {
			c.notifier.BroadcastPosterFallback(sessionID, region, cardID, view.PlaceholderPoster)
		}
	}
	return nil
}

// AddToWatchlist acknowledges a card click. Nothing is stored.
func (c *Controller) AddToWatchlist(ctx context.Context, sessionID string, region model.Region, cardID int) error {
	st, err := c.State(ctx, sessionID)
	if err != nil {
		return err
	}
	g, err := st.Grid(region)
	if err != nil {
		return err
	}
	card, err := g.Card(region, cardID)
	if err != nil {
		return err
	}
	c.toast(sessionID, watchlistToast(card.Title), model.ToastSuccess)
	return nil
}

// Back hides the results view. A request still in flight for it is dropped.
func (c *Controller) Back(ctx context.Context, sessionID string) (*session.State, error) {
	st, err := c.store.Update(ctx, sessionID, func(s *session.State) error {
		s.Begin(model.RegionResults)
		s.Results.Shown = false
		s.Results.Loading = false
		s.SearchInput = ""
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	c.toast(sessionID, msgBack, model.ToastInfo)
	return st, nil
}

// Feedback thanks the user.
func (c *Controller) Feedback(ctx context.Context, sessionID string) {
	c.toast(sessionID, msgFeedback, model.ToastSuccess)
}

// Welcome greets a page that just connected.
func (c *Controller) Welcome(sessionID string) {
	c.toast(sessionID, WelcomeLines[c.intn(len(WelcomeLines))], model.ToastInfo)
}

// begin issues a request token for region and applies prepare in the same update.
func (c *Controller) begin(ctx context.Context, sessionID string, region model.Region, prepare func(*session.State)) (string, error) {
	var token string
	_, err := c.store.Update(ctx, sessionID, func(s *session.State) error {
		token = s.Begin(region)
		prepare(s)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return token, nil
}

// commit applies fn only while token is still the latest request for region.
func (c *Controller) commit(ctx context.Context, sessionID string, region model.Region, token string, fn func(*session.State) error) (*session.State, error) {
	st, err := c.store.Update(ctx, sessionID, func(s *session.State) error {
		if !s.Owns(region, token) {
			return session.ErrStale
		}
		return fn(s)
	})
	if errors.Is(err, session.ErrStale) {
		metrics.StaleResponsesDropped.WithLabelValues(string(region)).Inc()
		logging.Debug().
			Str("session", sessionID).
			Str("region", string(region)).
			Msg("dropping stale response")
		return nil, err
	}
	if err != nil {
		if errors.Is(err, model.ErrCardNotFound) || errors.Is(err, model.ErrUnknownRegion) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return st, nil
}

func (c *Controller) updateGrid(ctx context.Context, sessionID string, region model.Region, fn func(*view.Grid) error) (*session.State, error) {
	st, err := c.store.Update(ctx, sessionID, func(s *session.State) error {
		g, err := s.Grid(region)
		if err != nil {
			return err
		}
		return fn(g)
	})
	if err != nil {
		if errors.Is(err, model.ErrCardNotFound) || errors.Is(err, model.ErrUnknownRegion) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return st, nil
}

func (c *Controller) toast(sessionID, message string, kind model.ToastKind) {
	metrics.ToastsSent.WithLabelValues(string(kind)).Inc()
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(sessionID, model.Toast{Message: message, Kind: kind})
}

func (c *Controller) schedulePosters(ctx context.Context, st *session.State, region model.Region, token string) {
	if c.posters == nil {
		return
	}
	g, err := st.Grid(region)
	if err != nil {
		return
	}
	payload := &model.PosterProbePayload{
		SessionID: st.ID,
		Region:    region,
		Token:     token,
	}
	for i, m := range g.Movies {
		if url := strings.TrimSpace(m.Poster); url != "" {
			payload.Cards = append(payload.Cards, model.PosterProbeCard{ID: i, URL: url})
		}
	}
	if len(payload.Cards) == 0 {
		return
	}
	if err := c.posters.Schedule(ctx, payload); err != nil {
		logging.Warn().Err(err).Str("session", st.ID).Msg("failed to schedule poster probe")
	}
}

func failResults(s *session.State) {
	s.Results.Grid = view.NewGrid(nil)
	s.Results.CountLabel = ""
	s.Results.Quote = ""
	s.Results.Placard = &view.Placard{
		Message:     msgResultsError,
		ActionLabel: msgReloadPage,
		Action:      model.PlacardReload,
	}
}
