package domain

import "time"

// APIKeyPrefix makes keys visually distinguishable from JWTs in logs and
// support tickets. The full format is tmk_<48 hex chars>.
const APIKeyPrefix = "tmk_"

// APIKey is a long-lived opaque credential bound to one user and one client.
type APIKey struct {
	ID     string `json:"id" bson:"_id,omitempty"`
	Value  string `json:"value,omitempty" bson:"value"`
	UserID string `json:"user_id" bson:"user_id"`
	// ClientID associates the key with the client record it was issued for.
	ClientID    string     `json:"client_id" bson:"client_id"`
	Name        string     `json:"name" bson:"name"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Active      bool       `json:"active" bson:"active"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty" bson:"last_used_at,omitempty"`
	// ExpiresAt nil means the key never expires.
	ExpiresAt *time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
}

// Usable reports whether the key may authenticate a request at instant now:
// it must be active and either non-expiring or not yet expired.
func (k APIKey) Usable(now time.Time) bool {
	if !k.Active {
		return false
	}
	if k.ExpiresAt != nil && !k.ExpiresAt.After(now) {
		return false
	}
	return true
}

// MaskedValue returns the key value reduced to its prefix and last four
// characters, safe for listings and diagnostics. The full value is shown
// exactly once, at creation time.
func (k APIKey) MaskedValue() string {
	const head, tail = 8, 4
	if len(k.Value) <= head+tail {
		return k.Value
	}
	return k.Value[:head] + "..." + k.Value[len(k.Value)-tail:]
}
