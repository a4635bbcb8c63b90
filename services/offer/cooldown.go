package offer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// OfferCooldown is the wait imposed between offers from the same freelancer
// on the same job.
const OfferCooldown = 5 * time.Minute

// cooldownKeyPrefix namespaces cooldown keys in Redis.
const cooldownKeyPrefix = "offer-cooldown:"

// CooldownStore tracks per-(job, freelancer) offer cooldowns. Acquire is an
// atomic check-then-act: it either starts the cooldown and reports success, or
// reports the remaining wait.
type CooldownStore interface {
	// Acquire starts the cooldown for the pair if none is active. Returns
	// whether the caller acquired it and, if not, the remaining wait.
	Acquire(ctx context.Context, jobID, freelancerID string, ttl time.Duration) (bool, time.Duration, error)
	// Remaining returns the remaining wait for the pair (zero if none).
	Remaining(ctx context.Context, jobID, freelancerID string) (time.Duration, error)
	// Release clears the cooldown, used when the guarded action failed and
	// the freelancer should not be penalized for it.
	Release(ctx context.Context, jobID, freelancerID string) error
}

func cooldownKey(jobID, freelancerID string) string {
	return fmt.Sprintf("%s%s:%s", cooldownKeyPrefix, jobID, freelancerID)
}

// RedisCooldownStore implements CooldownStore on Redis. Cooldowns survive
// process restarts as long as Redis persists its keyspace.
type RedisCooldownStore struct {
	Client *redis.Client
}

// NewRedisCooldownStore creates a CooldownStore backed by the given client.
func NewRedisCooldownStore(client *redis.Client) *RedisCooldownStore {
	return &RedisCooldownStore{Client: client}
}

func (s *RedisCooldownStore) Acquire(ctx context.Context, jobID, freelancerID string, ttl time.Duration) (bool, time.Duration, error) {
	key := cooldownKey(jobID, freelancerID)
	ok, err := s.Client.SetNX(ctx, key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, 0, fmt.Errorf("cooldown acquire failed: %w", err)
	}
	if ok {
		return true, 0, nil
	}
	remaining, err := s.Client.PTTL(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("cooldown TTL lookup failed: %w", err)
	}
	if remaining < 0 {
		remaining = 0
	}
	return false, remaining, nil
}

func (s *RedisCooldownStore) Remaining(ctx context.Context, jobID, freelancerID string) (time.Duration, error) {
	remaining, err := s.Client.PTTL(ctx, cooldownKey(jobID, freelancerID)).Result()
	if err != nil {
		return 0, fmt.Errorf("cooldown TTL lookup failed: %w", err)
	}
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

func (s *RedisCooldownStore) Release(ctx context.Context, jobID, freelancerID string) error {
	if err := s.Client.Del(ctx, cooldownKey(jobID, freelancerID)).Err(); err != nil {
		return fmt.Errorf("cooldown release failed: %w", err)
	}
	return nil
}

// MemoryCooldownStore is an in-memory CooldownStore used as a test double.
// The clock is injectable so tests can simulate elapsed time.
type MemoryCooldownStore struct {
	mu     sync.Mutex
	expiry map[string]time.Time
	Clock  func() time.Time
}

// NewMemoryCooldownStore creates an empty in-memory cooldown store.
func NewMemoryCooldownStore() *MemoryCooldownStore {
	return &MemoryCooldownStore{
		expiry: make(map[string]time.Time),
		Clock:  time.Now,
	}
}

func (s *MemoryCooldownStore) Acquire(_ context.Context, jobID, freelancerID string, ttl time.Duration) (bool, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cooldownKey(jobID, freelancerID)
	now := s.Clock()
	if exp, ok := s.expiry[key]; ok && exp.After(now) {
		return false, exp.Sub(now), nil
	}
	s.expiry[key] = now.Add(ttl)
	return true, 0, nil
}

func (s *MemoryCooldownStore) Remaining(_ context.Context, jobID, freelancerID string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cooldownKey(jobID, freelancerID)
	now := s.Clock()
	if exp, ok := s.expiry[key]; ok && exp.After(now) {
		return exp.Sub(now), nil
	}
	return 0, nil
}

func (s *MemoryCooldownStore) Release(_ context.Context, jobID, freelancerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.expiry, cooldownKey(jobID, freelancerID))
	return nil
}
