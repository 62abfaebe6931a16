package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kondate-app/backend/internal/model"
)

// RateLimitPolicy is one (limit, window) pair. The limiter itself supports
// arbitrary policies; these two are the ones wired to the propose route.
type RateLimitPolicy struct {
	// Limit is the maximum number of admitted attempts per window
	Limit int
	// Window is the trailing time span attempts are counted over
	Window time.Duration
}

// RateLimitResult reports the outcome of one check-and-record call.
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	Reset     time.Time
}

// RateLimiter bounds how often an identity may trigger generation on a
// route. It counts append-only records in a trailing window; the count and
// the insert are deliberately not wrapped in a transaction, so concurrent
// bursts from one identity can slightly exceed the limit.
type RateLimiter struct {
	db *gorm.DB
}

// NewRateLimiter creates a rate limiter backed by the given store.
func NewRateLimiter(db *gorm.DB) *RateLimiter {
	return &RateLimiter{db: db}
}

// CheckAndRecord counts admitted attempts for (identity, route) within the
// policy window. If the count is below the limit it records the attempt and
// admits it; otherwise it denies without writing, so denied attempts never
// consume future quota.
func (rl *RateLimiter) CheckAndRecord(ctx context.Context, identity, route string, policy RateLimitPolicy) (*RateLimitResult, error) {
	now := time.Now()
	windowStart := now.Add(-policy.Window)

	var count int64
	err := rl.db.WithContext(ctx).
		Model(&model.RateLimitRecord{}).
		Where("identity_key = ? AND route = ? AND created_at >= ?", identity, route, windowStart).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count rate limit records: %w", err)
	}

	if count >= int64(policy.Limit) {
		return &RateLimitResult{
			Allowed:   false,
			Remaining: 0,
			Reset:     rl.resetTime(ctx, identity, route, windowStart, policy, now),
		}, nil
	}

	record := model.RateLimitRecord{
		IdentityKey: identity,
		Route:       route,
		CreatedAt:   now,
	}
	if err := rl.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to record rate limit attempt: %w", err)
	}

	remaining := policy.Limit - int(count) - 1
	if remaining < 0 {
		remaining = 0
	}
	return &RateLimitResult{
		Allowed:   true,
		Remaining: remaining,
		Reset:     now.Add(policy.Window),
	}, nil
}

// resetTime estimates when the oldest in-window record ages out. Best
// effort: on lookup failure the full window from now is reported.
func (rl *RateLimiter) resetTime(ctx context.Context, identity, route string, windowStart time.Time, policy RateLimitPolicy, now time.Time) time.Time {
	var oldest model.RateLimitRecord
	err := rl.db.WithContext(ctx).
		Where("identity_key = ? AND route = ? AND created_at >= ?", identity, route, windowStart).
		Order("created_at ASC").
		First(&oldest).Error
	if err != nil {
		return now.Add(policy.Window)
	}
	return oldest.CreatedAt.Add(policy.Window)
}
