package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"bus-booking/internal/data/repository"
	"bus-booking/pkg/utils"
)

// IdempotencyGuard caches responses of side-effecting operations keyed by
// (client token, user, payload). The caller checks Get before executing and
// calls Store after; the two are not transactionally coupled.
type IdempotencyGuard struct {
	repo repository.IdempotencyRepository
	ttl  time.Duration
}

func NewIdempotencyGuard(repo repository.IdempotencyRepository, config *utils.Config) *IdempotencyGuard {
	return &IdempotencyGuard{
		repo: repo,
		ttl:  time.Duration(config.Idempotency.TTLHours) * time.Hour,
	}
}

// Key derives the dedup key as a SHA-256 digest over the client token, the
// user ID and every payload field, NUL-separated. Distinct payloads can
// never collide onto one key.
func (g *IdempotencyGuard) Key(clientToken, userID string, payloadFields ...string) string {
	h := sha256.New()
	h.Write([]byte(clientToken))
	for _, field := range append([]string{userID}, payloadFields...) {
		h.Write([]byte{0})
		h.Write([]byte(field))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (g *IdempotencyGuard) Get(key string) (any, bool) {
	return g.repo.Get(key)
}

func (g *IdempotencyGuard) Store(key string, result any) {
	g.repo.Store(key, result, time.Now().Add(g.ttl))
}
