package service

import (
	"fmt"
	"time"

	"github.com/kondate-app/backend/internal/validate"
)

// RateLimitError is returned when the limiter denies an attempt.
type RateLimitError struct {
	Limit  int
	Window time.Duration
	Reset  time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit of %d requests per %v exceeded", e.Limit, e.Window)
}

// GenerationError is returned when both generation attempts failed
// validation. Issues come from the second attempt; the first attempt's
// violations are superseded by the retry.
type GenerationError struct {
	Issues []validate.Issue
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("LLM output validation failed after retry (%d issues)", len(e.Issues))
}
