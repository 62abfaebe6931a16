package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/kondate-app/backend/internal/types"
)

// LLMClient generates a single chat completion from a system/user message
// pair. Implementations must return "{}" rather than an error when the
// provider produces no content.
type LLMClient interface {
	Generate(ctx context.Context, systemMessage, userMessage string) (string, error)
}

// TitleFetcher loads a user's most recent recipe titles, newest first.
type TitleFetcher interface {
	RecentTitles(ctx context.Context, userID uuid.UUID, limit int) []string
}

// Limiter admits or denies a generation attempt for an identity on a route.
type Limiter interface {
	CheckAndRecord(ctx context.Context, identity, route string, policy RateLimitPolicy) (*RateLimitResult, error)
}

// IProposalService drives the full constrained-generation pipeline.
type IProposalService interface {
	Propose(ctx context.Context, identity string, userID uuid.UUID, constraints *types.RequestConstraints) (*types.RecipeProposal, error)
}
