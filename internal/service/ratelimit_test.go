package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kondate-app/backend/internal/model"
)

func seedRecords(t *testing.T, db *gorm.DB, identity, route string, n int, age time.Duration) {
	t.Helper()
	for i := 0; i < n; i++ {
		record := model.RateLimitRecord{
			IdentityKey: identity,
			Route:       route,
			CreatedAt:   time.Now().Add(-age),
		}
		require.NoError(t, db.Create(&record).Error)
	}
}

func countRecords(t *testing.T, db *gorm.DB, identity, route string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&model.RateLimitRecord{}).
		Where("identity_key = ? AND route = ?", identity, route).
		Count(&count).Error)
	return count
}

func TestCheckAndRecordAdmitsUnderLimit(t *testing.T) {
	db := newTestDB(t)
	rl := NewRateLimiter(db)
	policy := RateLimitPolicy{Limit: 3, Window: time.Minute}

	for i := 0; i < 3; i++ {
		result, err := rl.CheckAndRecord(context.Background(), "user:a", "propose", policy)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 2-i, result.Remaining)
	}
	assert.Equal(t, int64(3), countRecords(t, db, "user:a", "propose"))
}

// At exactly limit prior records the next attempt is denied; at limit-1 it
// is admitted and recorded.
func TestCheckAndRecordThreshold(t *testing.T) {
	db := newTestDB(t)
	rl := NewRateLimiter(db)
	policy := RateLimitPolicy{Limit: 10, Window: 24 * time.Hour}

	seedRecords(t, db, "user:a", "propose", 9, time.Minute)
	result, err := rl.CheckAndRecord(context.Background(), "user:a", "propose", policy)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, int64(10), countRecords(t, db, "user:a", "propose"))

	result, err = rl.CheckAndRecord(context.Background(), "user:a", "propose", policy)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
}

// Denied attempts must not write a record, so they never consume quota.
func TestDeniedAttemptNotRecorded(t *testing.T) {
	db := newTestDB(t)
	rl := NewRateLimiter(db)
	policy := RateLimitPolicy{Limit: 2, Window: time.Minute}

	seedRecords(t, db, "user:a", "propose", 2, time.Second)
	for i := 0; i < 5; i++ {
		result, err := rl.CheckAndRecord(context.Background(), "user:a", "propose", policy)
		require.NoError(t, err)
		assert.False(t, result.Allowed)
	}
	assert.Equal(t, int64(2), countRecords(t, db, "user:a", "propose"))
}

func TestRecordsOutsideWindowIgnored(t *testing.T) {
	db := newTestDB(t)
	rl := NewRateLimiter(db)
	policy := RateLimitPolicy{Limit: 1, Window: time.Minute}

	seedRecords(t, db, "user:a", "propose", 5, 2*time.Minute)
	result, err := rl.CheckAndRecord(context.Background(), "user:a", "propose", policy)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestLimitsAreScopedToIdentityAndRoute(t *testing.T) {
	db := newTestDB(t)
	rl := NewRateLimiter(db)
	policy := RateLimitPolicy{Limit: 1, Window: time.Minute}

	seedRecords(t, db, "user:a", "propose", 1, time.Second)

	result, err := rl.CheckAndRecord(context.Background(), "user:a", "propose", policy)
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	result, err = rl.CheckAndRecord(context.Background(), "user:b", "propose", policy)
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	result, err = rl.CheckAndRecord(context.Background(), "user:a", "propose:burst", policy)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestDeniedResultReportsReset(t *testing.T) {
	db := newTestDB(t)
	rl := NewRateLimiter(db)
	policy := RateLimitPolicy{Limit: 1, Window: time.Hour}

	seedRecords(t, db, "user:a", "propose", 1, 10*time.Minute)
	result, err := rl.CheckAndRecord(context.Background(), "user:a", "propose", policy)
	require.NoError(t, err)
	require.False(t, result.Allowed)

	// Reset tracks the oldest in-window record plus the window.
	expected := time.Now().Add(50 * time.Minute)
	assert.WithinDuration(t, expected, result.Reset, time.Minute)
}
