package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kondate-app/backend/internal/types"
)

const draftTTL = 24 * time.Hour

// ProposalDraft is an accepted proposal cached until the caller decides to
// save or discard it.
type ProposalDraft struct {
	ID        string               `json:"id"`
	CreatedAt time.Time            `json:"created_at"`
	UserID    string               `json:"user_id,omitempty"`
	Proposal  types.RecipeProposal `json:"proposal"`
}

// DraftService stores proposal drafts in Redis.
type DraftService struct {
	redis *redis.Client
}

// NewDraftService creates a new DraftService instance.
func NewDraftService(redisClient *redis.Client) *DraftService {
	return &DraftService{redis: redisClient}
}

// SaveDraft caches an accepted proposal for 24 hours and returns its id.
func (s *DraftService) SaveDraft(ctx context.Context, userID uuid.UUID, proposal *types.RecipeProposal) (*ProposalDraft, error) {
	draft := &ProposalDraft{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Proposal:  *proposal,
	}
	if userID != uuid.Nil {
		draft.UserID = userID.String()
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.redis.Set(ctx, draftKey(draft.ID), data, draftTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to save draft to Redis: %w", err)
	}
	return draft, nil
}

// GetDraft retrieves a proposal draft from Redis.
func (s *DraftService) GetDraft(ctx context.Context, id string) (*ProposalDraft, error) {
	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var draft ProposalDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

// DeleteDraft removes a proposal draft from Redis.
func (s *DraftService) DeleteDraft(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}
	return nil
}

func draftKey(id string) string {
	return fmt.Sprintf("proposal:draft:%s", id)
}
