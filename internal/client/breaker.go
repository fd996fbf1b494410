package client

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/cinesuggest/web/internal/config"
	"github.com/cinesuggest/web/internal/logging"
	"github.com/cinesuggest/web/internal/metrics"
	"github.com/cinesuggest/web/internal/model"
)

const breakerName = "movie-api"

// BreakerClient wraps MovieAPIClient with a circuit breaker so a dead backend
// fails fast instead of holding every page action for the full timeout.
type BreakerClient struct {
	client *MovieAPIClient
	cb     *gobreaker.CircuitBreaker[any]
}

// NewBreakerClient wraps client. The circuit opens once at least MinRequests
// were seen in the interval and the failure ratio reaches FailureRatio.
func NewBreakerClient(client *MovieAPIClient, cfg *config.BreakerConfig) *BreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	return &BreakerClient{client: client, cb: cb}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// State returns the current breaker state
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

func execute[T any](b *BreakerClient, endpoint string, fn func() (*T, error)) (*T, error) {
	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.BackendRequests.WithLabelValues(endpoint, "rejected").Inc()
		}
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func (b *BreakerClient) Moods(ctx context.Context) (*model.MoodsResponse, error) {
	return execute(b, EndpointMoods, func() (*model.MoodsResponse, error) {
		return b.client.Moods(ctx)
	})
}

func (b *BreakerClient) MoviesByMood(ctx context.Context, mood string) (*model.MoodMoviesResponse, error) {
	return execute(b, EndpointMovies, func() (*model.MoodMoviesResponse, error) {
		return b.client.MoviesByMood(ctx, mood)
	})
}

func (b *BreakerClient) AllMovies(ctx context.Context) (*model.AllMoviesResponse, error) {
	return execute(b, EndpointAllMovies, func() (*model.AllMoviesResponse, error) {
		return b.client.AllMovies(ctx)
	})
}

func (b *BreakerClient) Search(ctx context.Context, query string) (*model.SearchResponse, error) {
	return execute(b, EndpointSearch, func() (*model.SearchResponse, error) {
		return b.client.Search(ctx, query)
	})
}

func (b *BreakerClient) FunnyQuote(ctx context.Context) (*model.QuoteResponse, error) {
	return execute(b, EndpointFunnyQuote, func() (*model.QuoteResponse, error) {
		return b.client.FunnyQuote(ctx)
	})
}

func (b *BreakerClient) Recommend(ctx context.Context, mood string) (*model.RecommendResponse, error) {
	return execute(b, EndpointRecommend, func() (*model.RecommendResponse, error) {
		return b.client.Recommend(ctx, mood)
	})
}
