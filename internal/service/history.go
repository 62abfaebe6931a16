package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kondate-app/backend/internal/model"
)

// HistoryService loads a user's recent recipe titles so the generator can
// be steered away from repeating them.
type HistoryService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewHistoryService creates a new HistoryService instance.
func NewHistoryService(db *gorm.DB, logger *zap.Logger) *HistoryService {
	return &HistoryService{db: db, logger: logger.Named("history")}
}

// RecentTitles returns up to limit titles owned by userID, newest first.
// Anonymous callers get no history. A lookup failure degrades to an empty
// result: novelty-biasing is best effort and must never abort generation.
func (s *HistoryService) RecentTitles(ctx context.Context, userID uuid.UUID, limit int) []string {
	if userID == uuid.Nil {
		return nil
	}

	var titles []string
	err := s.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Pluck("title", &titles).Error
	if err != nil {
		s.logger.Warn("failed to fetch recent titles, continuing without history",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil
	}
	return titles
}
