package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/trainmetrics/coaching-api/internal/api/metrics"
	"github.com/trainmetrics/coaching-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256

	updateTimeout = 5 * time.Second
)

// UsageRecorder applies last_used_at stamps for validated API keys on a
// fixed set of workers, sharded by key id so stamps for one key stay
// ordered. Recording is fire-and-forget: a full queue drops the stamp and a
// failed update is only logged — neither ever fails the validating request.
type UsageRecorder struct {
	workers []chan string
	repo    ports.APIKeyRepository
	log     zerolog.Logger
}

// NewUsageRecorder creates a UsageRecorder with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewUsageRecorder(numWorkers int, repo ports.APIKeyRepository, log zerolog.Logger) *UsageRecorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &UsageRecorder{
		workers: make([]chan string, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan string, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *UsageRecorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Record enqueues a last-used stamp for the key. Non-blocking: when the
// shard's buffer is full the stamp is dropped.
func (r *UsageRecorder) Record(keyID string) {
	idx := r.shardIndex(keyID)
	select {
	case r.workers[idx] <- keyID:
		metrics.KeyUsageQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(r.workers[idx])))
	default:
		r.log.Debug().Str("api_key_id", keyID).Msg("usage queue full, stamp dropped")
	}
}

func (r *UsageRecorder) shardIndex(keyID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(keyID))
	return int(h.Sum32()) % len(r.workers)
}

func (r *UsageRecorder) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case keyID, ok := <-ch:
			if !ok {
				return
			}
			updateCtx, cancel := context.WithTimeout(ctx, updateTimeout)
			err := r.repo.UpdateLastUsed(updateCtx, keyID, time.Now().UTC())
			cancel()
			if err != nil {
				r.log.Warn().Err(err).
					Str("api_key_id", keyID).
					Int("worker_id", id).
					Msg("last_used update failed")
			}
			metrics.KeyUsageQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}
