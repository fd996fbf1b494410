package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/cinesuggest/web/internal/config"
	"github.com/cinesuggest/web/internal/logging"
	"github.com/cinesuggest/web/internal/model"
)

const (
	TaskTypePosterProbe = "poster:probe"
	PosterQueue         = "posters"
)

// Enqueuer is the part of asynq.Client the poster service needs
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// PosterService queues poster probes and answers them, caching each URL's
// reachability in Redis.
type PosterService struct {
	redis      *redis.Client
	enqueuer   Enqueuer
	httpClient *http.Client
	cacheTTL   time.Duration
}

func NewPosterService(redisClient *redis.Client, enqueuer Enqueuer, cfg *config.PosterConfig) *PosterService {
	timeout := cfg.ProbeTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PosterService{
		redis:      redisClient,
		enqueuer:   enqueuer,
		httpClient: &http.Client{Timeout: timeout},
		cacheTTL:   cfg.CacheTTL,
	}
}

// Schedule queues a probe task for the cards in payload.
func (s *PosterService) Schedule(ctx context.Context, payload *model.PosterProbePayload) error {
	task, err := newPosterProbeTask(payload)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	_, err = s.enqueuer.EnqueueContext(ctx, task,
		asynq.Queue(PosterQueue),
		asynq.MaxRetry(1),
		asynq.Timeout(2*time.Minute),
		asynq.Retention(time.Hour),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	return nil
}

func newPosterProbeTask(payload *model.PosterProbePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypePosterProbe, data), nil
}

// Probe reports whether url serves an image.
func (s *PosterService) Probe(ctx context.Context, url string) bool {
	key := posterKey(url)
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, key).Result()
		switch {
		case err == nil:
			return cached == "1"
		case !errors.Is(err, redis.Nil):
			logging.Debug().Err(err).Msg("poster cache read failed")
		}
	}

	ok := s.fetch(ctx, url)

	if s.redis != nil {
		value := "0"
		if ok {
			value = "1"
		}
		if err := s.redis.Set(ctx, key, value, s.cacheTTL).Err(); err != nil {
			logging.Debug().Err(err).Msg("poster cache write failed")
		}
	}
	return ok
}

func (s *PosterService) fetch(ctx context.Context, url string) bool {
	status, contentType, err := s.request(ctx, http.MethodHead, url)
	if err == nil && status == http.StatusMethodNotAllowed {
		status, contentType, err = s.request(ctx, http.MethodGet, url)
	}
	if err != nil {
		logging.Debug().Err(err).Str("url", url).Msg("poster unreachable")
		return false
	}
	if status < 200 || status > 299 {
		return false
	}
	return contentType == "" || strings.HasPrefix(contentType, "image/")
}

func (s *PosterService) request(ctx context.Context, method, url string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	resp.Body.Close()
	return resp.StatusCode, resp.Header.Get("Content-Type"), nil
}

func posterKey(url string) string {
	return fmt.Sprintf("poster:%s", url)
}
