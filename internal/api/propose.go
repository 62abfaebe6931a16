package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kondate-app/backend/internal/middleware"
	"github.com/kondate-app/backend/internal/service"
	"github.com/kondate-app/backend/internal/validate"
)

// ProposeHandler handles recipe generation requests
type ProposeHandler struct {
	proposals service.IProposalService
	drafts    *service.DraftService
	logger    *zap.Logger
}

// NewProposeHandler creates a new ProposeHandler instance. drafts may be
// nil when no draft cache is configured.
func NewProposeHandler(proposals service.IProposalService, drafts *service.DraftService, logger *zap.Logger) *ProposeHandler {
	return &ProposeHandler{
		proposals: proposals,
		drafts:    drafts,
		logger:    logger.Named("propose"),
	}
}

// Propose runs the full pipeline for one generation request.
func (h *ProposeHandler) Propose(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read request body"})
		return
	}

	constraints, err := validate.Constraints(body)
	if err != nil {
		var ve *validate.Error
		if errors.As(err, &ve) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "input validation error",
				"issues": ve.Issues,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	identity := middleware.Identity(c)
	userID := middleware.UserID(c)

	proposal, err := h.proposals.Propose(c.Request.Context(), identity, userID, constraints)
	if err != nil {
		var rle *service.RateLimitError
		if errors.As(err, &rle) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       rle.Error(),
				"retry_after": int(time.Until(rle.Reset).Seconds()),
			})
			return
		}
		var ge *service.GenerationError
		if errors.As(err, &ge) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "LLM output validation failed",
				"issues": ge.Issues,
			})
			return
		}
		h.logger.Error("proposal pipeline failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Draft caching is a convenience for the save flow, never a reason to
	// fail an accepted proposal.
	if h.drafts != nil {
		if draft, err := h.drafts.SaveDraft(c.Request.Context(), userID, proposal); err == nil {
			c.Header("X-Draft-ID", draft.ID)
		} else {
			h.logger.Warn("failed to cache proposal draft", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, proposal)
}

// GetDraft returns a cached proposal draft by id.
func (h *ProposeHandler) GetDraft(c *gin.Context) {
	if h.drafts == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}

	draft, err := h.drafts.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}

	userID := middleware.UserID(c)
	if draft.UserID != "" && draft.UserID != userID.String() {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}

	c.JSON(http.StatusOK, draft)
}

// DeleteDraft removes a cached proposal draft.
func (h *ProposeHandler) DeleteDraft(c *gin.Context) {
	if h.drafts == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}

	if err := h.drafts.DeleteDraft(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete draft"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
