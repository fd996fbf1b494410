package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/cinesuggest/web/internal/config"
	"github.com/cinesuggest/web/internal/metrics"
	"github.com/cinesuggest/web/internal/model"
)

// Endpoint names used for metrics and logs
const (
	EndpointMoods      = "moods"
	EndpointMovies     = "movies"
	EndpointAllMovies  = "all-movies"
	EndpointSearch     = "search"
	EndpointFunnyQuote = "funny-quote"
	EndpointRecommend  = "recommend"
)

// APIError is returned when the backend answers with a non-2xx status
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("movie API error on %s (status %d): %s", e.Endpoint, e.StatusCode, e.Body)
}

// MovieAPIClient talks to the movie backend
type MovieAPIClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewMovieAPIClient creates a new movie backend client
func NewMovieAPIClient(cfg *config.BackendConfig) *MovieAPIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MovieAPIClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
	}
}

// IsConfigured returns true if the client has a backend to talk to
func (c *MovieAPIClient) IsConfigured() bool {
	return c.baseURL != ""
}

// Moods fetches GET /api/moods
func (c *MovieAPIClient) Moods(ctx context.Context) (*model.MoodsResponse, error) {
	var out model.MoodsResponse
	if err := c.getJSON(ctx, EndpointMoods, "/api/moods", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MoviesByMood fetches GET /api/movies/{mood}
func (c *MovieAPIClient) MoviesByMood(ctx context.Context, mood string) (*model.MoodMoviesResponse, error) {
	var out model.MoodMoviesResponse
	if err := c.getJSON(ctx, EndpointMovies, "/api/movies/"+url.PathEscape(mood), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AllMovies fetches GET /api/all-movies
func (c *MovieAPIClient) AllMovies(ctx context.Context) (*model.AllMoviesResponse, error) {
	var out model.AllMoviesResponse
	if err := c.getJSON(ctx, EndpointAllMovies, "/api/all-movies", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search fetches GET /api/search?q={query}
func (c *MovieAPIClient) Search(ctx context.Context, query string) (*model.SearchResponse, error) {
	var out model.SearchResponse
	path := "/api/search?" + url.Values{"q": {query}}.Encode()
	if err := c.getJSON(ctx, EndpointSearch, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FunnyQuote fetches GET /api/funny-quote
func (c *MovieAPIClient) FunnyQuote(ctx context.Context) (*model.QuoteResponse, error) {
	var out model.QuoteResponse
	if err := c.getJSON(ctx, EndpointFunnyQuote, "/api/funny-quote", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Recommend calls POST /api/recommend. A decodable {success:false} body is
// returned as a response, not an error, whatever the status code.
func (c *MovieAPIClient) Recommend(ctx context.Context, mood string) (*model.RecommendResponse, error) {
	body, err := json.Marshal(model.RecommendRequest{Mood: mood})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	status, respBody, err := c.do(ctx, EndpointRecommend, http.MethodPost, "/api/recommend", body)
	if err != nil {
		return nil, err
	}

	var out model.RecommendResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		if status < 200 || status > 299 {
			return nil, &APIError{Endpoint: EndpointRecommend, StatusCode: status, Body: string(respBody)}
		}
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if !out.Success && out.Error == "" && (status < 200 || status > 299) {
		return nil, &APIError{Endpoint: EndpointRecommend, StatusCode: status, Body: string(respBody)}
	}
	return &out, nil
}

func (c *MovieAPIClient) getJSON(ctx context.Context, endpoint, path string, out interface{}) error {
	status, body, err := c.do(ctx, endpoint, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return &APIError{Endpoint: endpoint, StatusCode: status, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s response: %w", endpoint, err)
	}
	return nil
}

func (c *MovieAPIClient) do(ctx context.Context, endpoint, method, path string, body []byte) (status int, respBody []byte, err error) {
	start := time.Now()
	defer func() { metrics.ObserveBackend(endpoint, start, err) }()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, respBody, nil
}
