package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"go-talent-sift-backend/internal/domain"
)

// inflightTTL bounds how long a stuck submission can block a domain.
const inflightTTL = 5 * time.Minute

type creditLedger struct {
	client *redis.Client
}

func NewCreditLedger(client *redis.Client) domain.CreditLedger {
	return &creditLedger{client: client}
}

func (l *creditLedger) EnsureBalance(ctx context.Context, emailDomain string, initial int64) (int64, error) {
	key := domain.DomainKey(emailDomain)

	balance, err := l.client.Get(ctx, key).Int64()
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("redisstore: read balance: %w", err)
	}

	// Lazy initialization on first reference; SetNX keeps a concurrent
	// initializer from resetting an already-written balance
	ok, err := l.client.SetNX(ctx, key, initial, 0).Result()
	if err != nil {
		return 0, fmt.Errorf("redisstore: init balance: %w", err)
	}
	if !ok {
		return l.client.Get(ctx, key).Int64()
	}
	return initial, nil
}

func (l *creditLedger) Deduct(ctx context.Context, emailDomain string, amount int64) (int64, error) {
	remaining, err := l.client.DecrBy(ctx, domain.DomainKey(emailDomain), amount).Result()
	if err != nil {
		return 0, fmt.Errorf("redisstore: deduct credits: %w", err)
	}
	return remaining, nil
}

type submissionGuard struct {
	client *redis.Client
}

func NewSubmissionGuard(client *redis.Client) domain.SubmissionGuard {
	return &submissionGuard{client: client}
}

func (g *submissionGuard) Acquire(ctx context.Context, emailDomain string) (bool, error) {
	ok, err := g.client.SetNX(ctx, inflightKey(emailDomain), "1", inflightTTL).Result()
	if err != nil {
		return false, fmt.Errorf("redisstore: acquire guard: %w", err)
	}
	return ok, nil
}

func (g *submissionGuard) Release(ctx context.Context, emailDomain string) error {
	return g.client.Del(ctx, inflightKey(emailDomain)).Err()
}

func inflightKey(emailDomain string) string {
	return "submission_inflight_" + emailDomain
}
