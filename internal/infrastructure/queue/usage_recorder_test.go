package queue

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

type recordingRepo struct {
	stamped chan string
}

func (r *recordingRepo) Insert(context.Context, *domain.APIKey) (*domain.APIKey, error) {
	return nil, nil
}

func (r *recordingRepo) FindByValue(context.Context, string) (*domain.APIKey, error) {
	return nil, domain.ErrAPIKeyNotFound
}

func (r *recordingRepo) ListByOwner(context.Context, string) ([]*domain.APIKey, error) {
	return nil, nil
}

func (r *recordingRepo) Delete(context.Context, string, string) error {
	return domain.ErrAPIKeyNotFound
}

func (r *recordingRepo) UpdateLastUsed(_ context.Context, id string, _ time.Time) error {
	r.stamped <- id
	return nil
}

func TestUsageRecorder_StampReachesRepository(t *testing.T) {
	repo := &recordingRepo{stamped: make(chan string, 1)}
	rec := NewUsageRecorder(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx)

	rec.Record("key_1")
	select {
	case id := <-repo.stamped:
		if id != "key_1" {
			t.Fatalf("stamped %q, want key_1", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stamp never reached the repository")
	}
}

func TestUsageRecorder_ShardIndexIsStable(t *testing.T) {
	rec := NewUsageRecorder(4, &recordingRepo{}, zerolog.Nop())
	for _, id := range []string{"key_1", "key_2", "a", ""} {
		first := rec.shardIndex(id)
		if first < 0 || first >= len(rec.workers) {
			t.Fatalf("shard for %q = %d, out of range", id, first)
		}
		for i := 0; i < 10; i++ {
			if got := rec.shardIndex(id); got != first {
				t.Fatalf("shard for %q changed: %d then %d", id, first, got)
			}
		}
	}
}

func TestUsageRecorder_RecordDropsWhenFull(t *testing.T) {
	// Workers never started, so the shard buffer fills and stays full.
	rec := NewUsageRecorder(1, &recordingRepo{}, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < channelBuffer+10; i++ {
			rec.Record("key_1")
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Record blocked on a full shard buffer")
	}
	if got := len(rec.workers[0]); got != channelBuffer {
		t.Fatalf("buffered %d stamps, want %d", got, channelBuffer)
	}
}
