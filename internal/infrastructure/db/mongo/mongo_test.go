package mongo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

func TestStoreErr_TimeoutMapsToUnavailable(t *testing.T) {
	err := storeErr("find api key", context.DeadlineExceeded)
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("deadline exceeded not mapped to store unavailable: %v", err)
	}

	wrapped := storeErr("list clients", fmt.Errorf("round trip: %w", context.DeadlineExceeded))
	if !errors.Is(wrapped, domain.ErrStoreUnavailable) {
		t.Fatalf("wrapped deadline not mapped: %v", wrapped)
	}
}

func TestStoreErr_NetworkErrorMapsToUnavailable(t *testing.T) {
	cmdErr := mongo.CommandError{Message: "connection refused", Labels: []string{"NetworkError"}}
	err := storeErr("find user", cmdErr)
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("network error not mapped to store unavailable: %v", err)
	}
}

func TestStoreErr_OtherErrorsPassThrough(t *testing.T) {
	cause := errors.New("document validation failed")
	err := storeErr("insert template", cause)
	if errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("ordinary error misreported as outage: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause not preserved: %v", err)
	}
	if got := err.Error(); got != "insert template: document validation failed" {
		t.Fatalf("unexpected message %q", got)
	}
}
