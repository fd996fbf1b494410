package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"

	"github.com/cinesuggest/web/internal/config"
	"github.com/cinesuggest/web/internal/model"
)

type captureEnqueuer struct {
	tasks []*asynq.Task
}

func (e *captureEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: PosterQueue}, nil
}

func TestPosterSchedule(t *testing.T) {
	enq := &captureEnqueuer{}
	svc := NewPosterService(nil, enq, &config.PosterConfig{ProbeTimeout: time.Second})

	payload := &model.PosterProbePayload{
		SessionID: "s1",
		Region:    model.RegionResults,
		Token:     "tok",
		Cards:     []model.PosterProbeCard{{ID: 3, URL: "https://img.example/a.jpg"}},
	}
	if err := svc.Schedule(context.Background(), payload); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(enq.tasks) != 1 || enq.tasks[0].Type() != TaskTypePosterProbe {
		t.Fatalf("unexpected tasks %v", enq.tasks)
	}

	var got model.PosterProbePayload
	if err := json.Unmarshal(enq.tasks[0].Payload(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.SessionID != "s1" || got.Token != "tok" || len(got.Cards) != 1 || got.Cards[0].ID != 3 {
		t.Errorf("unexpected payload %+v", got)
	}
}

func TestPosterProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
		case "/page.html":
			w.Header().Set("Content-Type", "text/html")
		case "/get-only.png":
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			w.Header().Set("Content-Type", "image/png")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	svc := NewPosterService(nil, &captureEnqueuer{}, &config.PosterConfig{ProbeTimeout: time.Second})

	tests := []struct {
		path string
		want bool
	}{
		{"/ok.jpg", true},
		{"/get-only.png", true},
		{"/page.html", false},
		{"/missing.jpg", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := svc.Probe(context.Background(), srv.URL+tt.path); got != tt.want {
				t.Errorf("Probe(%s) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}

	if svc.Probe(context.Background(), "http://127.0.0.1:1/closed.jpg") {
		t.Error("unreachable host should fail the probe")
	}
}
