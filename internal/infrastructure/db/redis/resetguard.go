package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Consumed markers outlive the 15 minute reset-token validity, so a token
// can never be replayed inside its own window.
const resetMarkTTL = 20 * time.Minute

// ResetTokenGuard tracks consumed password-reset tokens in Redis so each
// token is redeemable exactly once. Only a SHA-256 digest of the token is
// stored; the raw token never reaches Redis.
type ResetTokenGuard struct {
	client *redis.Client
}

func NewResetTokenGuard(client *redis.Client) *ResetTokenGuard {
	return &ResetTokenGuard{client: client}
}

// IsUsed reports whether this token was already consumed.
func (g *ResetTokenGuard) IsUsed(ctx context.Context, token string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("reset guard check: %w", err)
	}
	return n > 0, nil
}

// MarkUsed records the token as consumed (expires after resetMarkTTL).
func (g *ResetTokenGuard) MarkUsed(ctx context.Context, token string) error {
	return g.client.Set(ctx, g.key(token), "1", resetMarkTTL).Err()
}

func (g *ResetTokenGuard) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "reset_used:" + hex.EncodeToString(sum[:])
}
