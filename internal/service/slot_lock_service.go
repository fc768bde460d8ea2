package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotLocked is returned when another request holds the lease for the
// same sitter window
var ErrSlotLocked = errors.New("slot is held by another request")

// releaseLockScript releases a lease only if the caller still owns it.
// GET + DEL as a single Lua script: a lease that expired and was re-acquired
// by someone else must not be deleted by the previous holder.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	// Redis key prefix for sitter slot leases
	RedisSlotLockPrefix = "slot:lock:"

	// How long a lease survives a crashed holder
	slotLockTTL = 30 * time.Second
)

// SlotLockService hands out short-lived per-sitter-slot leases. It
// serializes the check-then-commit section of a reschedule across
// application instances; the database's optimistic version check remains the
// final authority, the lease just keeps concurrent requests from both
// paying the transaction-retry cost for the same window.
type SlotLockService interface {
	// Acquire takes the lease for a sitter window. Returns an opaque token
	// the holder must present to Release, or ErrSlotLocked if another
	// request holds the lease.
	Acquire(ctx context.Context, sitterID uuid.UUID, start time.Time) (string, error)

	// Release gives the lease back. Safe to call after expiry; releasing a
	// lease someone else re-acquired is a no-op.
	Release(ctx context.Context, sitterID uuid.UUID, start time.Time, token string)
}

type redisSlotLockService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSlotLockService(redisClient *redis.Client, log *logrus.Logger) SlotLockService {
	return &redisSlotLockService{
		redisClient: redisClient,
		log:         log,
	}
}

func (s *redisSlotLockService) Acquire(ctx context.Context, sitterID uuid.UUID, start time.Time) (string, error) {
	key := s.lockKey(sitterID, start)
	token := uuid.New().String()

	ok, err := s.redisClient.SetNX(ctx, key, token, slotLockTTL).Result()
	if err != nil {
		s.log.Warnf("Failed to acquire slot lock %s: %+v", key, err)
		return "", fmt.Errorf("acquire slot lock %s: %w", key, err)
	}
	if !ok {
		return "", ErrSlotLocked
	}

	s.log.Debugf("Acquired slot lock %s", key)
	return token, nil
}

func (s *redisSlotLockService) Release(ctx context.Context, sitterID uuid.UUID, start time.Time, token string) {
	key := s.lockKey(sitterID, start)

	if err := releaseLockScript.Run(ctx, s.redisClient, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		// Lease expires on its own; losing the release is not fatal
		s.log.Warnf("Failed to release slot lock %s: %+v", key, err)
		return
	}

	s.log.Debugf("Released slot lock %s", key)
}

func (s *redisSlotLockService) lockKey(sitterID uuid.UUID, start time.Time) string {
	return fmt.Sprintf("%s%s:%d", RedisSlotLockPrefix, sitterID, start.Unix())
}
