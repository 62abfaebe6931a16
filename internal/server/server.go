package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kondate-app/backend/config"
	"github.com/kondate-app/backend/internal/api"
	"github.com/kondate-app/backend/internal/router"
	"github.com/kondate-app/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	engine *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// New assembles services, handlers and routes into a runnable server.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *zap.Logger) *Server {
	authService := service.NewAuthService(cfg.JWTSecret)
	limiter := service.NewRateLimiter(db)
	history := service.NewHistoryService(db, logger)
	llm := service.NewOpenAIClient(cfg, logger)
	recipes := service.NewRecipeService(db)
	drafts := service.NewDraftService(redisClient)

	quota := service.RateLimitPolicy{Limit: cfg.DailyQuota, Window: cfg.DailyQuotaWindow}
	burst := service.RateLimitPolicy{Limit: cfg.BurstLimit, Window: cfg.BurstWindow}

	proposals := service.NewProposalService(llm, history, limiter, quota, cfg.HistoryTitleCount, logger)

	engine := router.SetupRouter(
		api.NewProposeHandler(proposals, drafts, logger),
		api.NewRecipeHandler(recipes),
		api.NewShoppingHandler(recipes),
		authService,
		limiter,
		burst,
	)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
		logger: logger,
	}
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
