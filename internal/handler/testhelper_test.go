package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/cinesuggest/web/internal/client"
	"github.com/cinesuggest/web/internal/config"
	"github.com/cinesuggest/web/internal/middleware"
	"github.com/cinesuggest/web/internal/model"
	"github.com/cinesuggest/web/internal/service"
	"github.com/cinesuggest/web/internal/session"
	"github.com/cinesuggest/web/internal/view"
)

const testSecret = "test-secret-for-handlers"

var backendMovies = []model.Movie{
	{Title: "Jersey", Year: 2019, Language: "Telugu", Genres: []string{"Drama", "Sports"}, Poster: "https://img.example/jersey.jpg", Mood: "motivational"},
	{Title: "Andhadhun", Year: 2018, Language: "Hindi", Genres: []string{"Thriller"}, Mood: "excited"},
	{Title: "<script>alert(1)</script>", Year: 2020, Language: "Tamil", Genres: []string{"Comedy"}, Mood: "happy"},
}

// toastRecorder collects toasts per session
type toastRecorder struct {
	mu     sync.Mutex
	toasts map[string][]model.Toast
}

func (r *toastRecorder) Notify(sessionID string, toast model.Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.toasts == nil {
		r.toasts = make(map[string][]model.Toast)
	}
	r.toasts[sessionID] = append(r.toasts[sessionID], toast)
}

func (r *toastRecorder) BroadcastPosterFallback(sessionID string, region model.Region, cardID int, url string) {}

func (r *toastRecorder) last(t *testing.T, sessionID string) model.Toast {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.toasts[sessionID]
	if len(list) == 0 {
		t.Fatalf("no toast for session %s", sessionID)
	}
	return list[len(list)-1]
}

// testApp holds all components needed for testing
type testApp struct {
	app      *fiber.App
	toasts   *toastRecorder
	sessions *middleware.SessionMiddleware
	backend  *httptest.Server
}

// newBackend stands in for the movie API. failing makes every endpoint 500.
func newBackend(t *testing.T, failing bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("/api/moods", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, model.MoodsResponse{Success: true, Moods: []string{"happy", "sad"}, Count: 2})
	})
	mux.HandleFunc("/api/movies/", func(w http.ResponseWriter, r *http.Request) {
		mood := strings.TrimPrefix(r.URL.Path, "/api/movies/")
		var out []model.Movie
		for _, m := range backendMovies {
			if m.Mood == mood {
				out = append(out, m)
			}
		}
		writeJSON(w, model.MoodMoviesResponse{Movies: out, Count: len(out), Quote: "Mood quote for " + mood})
	})
	mux.HandleFunc("/api/all-movies", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, model.AllMoviesResponse{Movies: backendMovies})
	})
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		q := strings.ToLower(r.URL.Query().Get("q"))
		out := []model.Movie{}
		for _, m := range backendMovies {
			if strings.Contains(strings.ToLower(m.Title), q) || strings.Contains(strings.ToLower(m.Language), q) {
				out = append(out, m)
			}
		}
		writeJSON(w, model.SearchResponse{Results: out, Count: len(out)})
	})
	mux.HandleFunc("/api/funny-quote", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, model.QuoteResponse{Quote: "Backend quote"})
	})
	mux.HandleFunc("/api/recommend", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, model.RecommendResponse{Success: true, Mood: "excited", Movies: backendMovies[1:2], Count: 1, IsRandom: true})
	})

	var h http.Handler = mux
	if failing {
		h = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
	}
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

// setupApp creates a Fiber app wired like main.go, with an in-memory session
// store, a toast recorder instead of the hub and no Redis.
func setupApp(t *testing.T, failing bool) *testApp {
	t.Helper()

	backend := newBackend(t, failing)
	api := client.NewBreakerClient(
		client.NewMovieAPIClient(&config.BackendConfig{BaseURL: backend.URL, Timeout: 2 * time.Second}),
		&config.BreakerConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, MinRequests: 1000, FailureRatio: 1},
	)

	toasts := &toastRecorder{}
	store := session.NewMemoryStore(time.Hour)
	ctrl := service.NewController(api, store, toasts, nil).WithRand(func(n int) int { return 0 })

	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	validate := validator.New()

	sessions := middleware.NewSessionMiddleware(&config.SessionConfig{
		Secret:     testSecret,
		CookieName: "cinesuggest_session",
		TTL:        time.Hour,
	})

	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	RegisterRoutes(app, &Handlers{
		Page:    NewPageHandler(ctrl, renderer, validate),
		Results: NewResultsHandler(ctrl, renderer, validate),
		Grid:    NewGridHandler(ctrl, renderer, validate),
	}, sessions, middleware.NewRateLimiter(nil), config.RateLimitConfig{SearchPerMin: 10000, ActionsPerMin: 10000})

	return &testApp{app: app, toasts: toasts, sessions: sessions, backend: backend}
}

// sessionCookie returns a signed cookie for sessionID
func (ta *testApp) sessionCookie(t *testing.T, sessionID string) *http.Cookie {
	t.Helper()
	token, err := ta.sessions.GenerateToken(sessionID)
	if err != nil {
		t.Fatalf("failed to generate session token: %v", err)
	}
	return &http.Cookie{Name: "cinesuggest_session", Value: token}
}

// do performs a request as sessionID. form is sent url-encoded when not nil.
func (ta *testApp) do(t *testing.T, sessionID, method, path string, form url.Values) *http.Response {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.AddCookie(ta.sessionCookie(t, sessionID))

	resp, err := ta.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

// readBody reads and returns the response body as a string.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(b)
}

// parseJSON parses response body into a map.
func parseJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body := readBody(t, resp)
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, body)
	}
	return result
}

// assertStatus checks the HTTP status code.
func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in body:\n%s", want, body)
		}
	}
}
