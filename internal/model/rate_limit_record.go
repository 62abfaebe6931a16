package model

import "time"

// RateLimitRecord is one admitted generation attempt. Records are
// append-only; old entries age out of window queries and are never deleted.
type RateLimitRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	IdentityKey string    `gorm:"size:255;not null;index:idx_rate_limit_scope" json:"identity_key"`
	Route       string    `gorm:"size:255;not null;index:idx_rate_limit_scope" json:"route"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}
