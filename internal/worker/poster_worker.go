package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"

	"github.com/cinesuggest/web/internal/logging"
	"github.com/cinesuggest/web/internal/model"
	"github.com/cinesuggest/web/internal/session"
)

// Prober checks whether a poster URL serves an image
type Prober interface {
	Probe(ctx context.Context, url string) bool
}

// PosterMarker records a poster that failed its probe
type PosterMarker interface {
	PosterUnreachable(ctx context.Context, sessionID string, region model.Region, token string, cardID int) error
}

// PosterWorker processes poster probe tasks
type PosterWorker struct {
	prober Prober
	marker PosterMarker
}

// NewPosterWorker creates a new poster worker
func NewPosterWorker(prober Prober, marker PosterMarker) *PosterWorker {
	return &PosterWorker{
		prober: prober,
		marker: marker,
	}
}

// ProcessTask probes every card of the task. It stops early once the grid
// the task was queued for has been replaced.
func (w *PosterWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.PosterProbePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal poster payload: %v: %w", err, asynq.SkipRetry)
	}

	log := logging.With().
		Str("session", payload.SessionID).
		Str("region", string(payload.Region)).
		Logger()

	failed := 0
	for _, card := range payload.Cards {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if w.prober.Probe(ctx, card.URL) {
			continue
		}

		err := w.marker.PosterUnreachable(ctx, payload.SessionID, payload.Region, payload.Token, card.ID)
		switch {
		case errors.Is(err, session.ErrStale):
			log.Debug().Msg("grid replaced, abandoning poster probe")
			return nil
		case errors.Is(err, model.ErrCardNotFound):
			log.Warn().Int("card", card.ID).Msg("poster probe for unknown card")
		case err != nil:
			return fmt.Errorf("failed to mark poster: %w", err)
		default:
			failed++
		}
	}

	log.Debug().Int("cards", len(payload.Cards)).Int("failed", failed).Msg("poster probe finished")
	return nil
}
