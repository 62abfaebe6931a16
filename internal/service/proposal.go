package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kondate-app/backend/internal/types"
	"github.com/kondate-app/backend/internal/validate"
)

// ProposeRoute is the limiter route key for the generation endpoint.
const ProposeRoute = "propose"

// ProposalService drives the constrained-generation pipeline: rate limiting,
// history-biased prompt construction, generation and strict validation with
// a single reinforced retry.
type ProposalService struct {
	llm        LLMClient
	history    TitleFetcher
	limiter    Limiter
	quota      RateLimitPolicy
	titleCount int
	logger     *zap.Logger
}

// NewProposalService creates a new ProposalService instance.
func NewProposalService(llm LLMClient, history TitleFetcher, limiter Limiter, quota RateLimitPolicy, titleCount int, logger *zap.Logger) *ProposalService {
	return &ProposalService{
		llm:        llm,
		history:    history,
		limiter:    limiter,
		quota:      quota,
		titleCount: titleCount,
		logger:     logger.Named("proposal"),
	}
}

// Propose generates one validated recipe proposal for the given identity.
// identity is the stable rate-limit key (user id or client-IP derived);
// userID is uuid.Nil for anonymous callers, who get no history biasing.
//
// At most two provider calls are made. The second attempt reuses the
// original user message under a reinforced system message, and its
// violations are the ones surfaced if it also fails.
func (s *ProposalService) Propose(ctx context.Context, identity string, userID uuid.UUID, constraints *types.RequestConstraints) (*types.RecipeProposal, error) {
	// The quota check and the history fetch are independent reads against
	// the same store; issue them concurrently, both before prompt building.
	var (
		wg     sync.WaitGroup
		result *RateLimitResult
		rlErr  error
		titles []string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		result, rlErr = s.limiter.CheckAndRecord(ctx, identity, ProposeRoute, s.quota)
	}()
	go func() {
		defer wg.Done()
		titles = s.history.RecentTitles(ctx, userID, s.titleCount)
	}()
	wg.Wait()

	if rlErr != nil {
		return nil, fmt.Errorf("rate limit check: %w", rlErr)
	}
	if !result.Allowed {
		return nil, &RateLimitError{Limit: s.quota.Limit, Window: s.quota.Window, Reset: result.Reset}
	}

	prompt, err := BuildPrompt(constraints, titles)
	if err != nil {
		return nil, err
	}

	// The retry is a deliberate second strategy, not a repeat: same user
	// message, reinforced system message.
	attempts := []PromptPair{
		prompt,
		{System: Reinforce(prompt.System), User: prompt.User},
	}

	var lastIssues []validate.Issue
	for i, attempt := range attempts {
		raw, genErr := s.llm.Generate(ctx, attempt.System, attempt.User)
		if genErr != nil {
			return nil, fmt.Errorf("generation attempt %d: %w", i+1, genErr)
		}

		proposal, valErr := validate.Proposal([]byte(raw))
		if valErr == nil {
			return proposal, nil
		}

		var ve *validate.Error
		if !errors.As(valErr, &ve) {
			return nil, valErr
		}
		lastIssues = ve.Issues
		s.logger.Warn("generated proposal failed validation",
			zap.Int("attempt", i+1),
			zap.Int("issues", len(ve.Issues)))
	}

	return nil, &GenerationError{Issues: lastIssues}
}
