// Package store provides the result cache used to reuse recent optimization
// runs instead of recomputing them.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/JulesSitpach/tradenavigatorpro/internal/pricing"
)

// ResultStore caches optimization results by request signature. Get returns
// (nil, nil) on a miss so callers can fall through to recompute.
type ResultStore interface {
	Get(ctx context.Context, key string) (*pricing.OptimizationResult, error)
	Put(ctx context.Context, key string, result *pricing.OptimizationResult, ttl time.Duration) error
}

// Key derives a stable cache key from the request payload. Two requests with
// the same product, margin, scenarios, and range share a key.
func Key(req pricing.Request) string {
	data, _ := json.Marshal(req)
	sum := sha256.Sum256(data)
	return "optimization:" + hex.EncodeToString(sum[:])
}
