package api

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kondate-app/backend/internal/middleware"
	"github.com/kondate-app/backend/internal/service"
	"github.com/kondate-app/backend/internal/types"
)

const testDailyQuota = 10

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	statements := []string{
		`CREATE TABLE recipes (
            id TEXT PRIMARY KEY,
            created_at DATETIME,
            updated_at DATETIME,
            deleted_at DATETIME,
            user_id TEXT,
            title TEXT,
            description TEXT,
            cook_time_min INTEGER,
            ingredients TEXT,
            steps TEXT,
            tools TEXT,
            notes TEXT
        );`,
		`CREATE TABLE shopping_lists (
            id TEXT PRIMARY KEY,
            created_at DATETIME,
            updated_at DATETIME,
            user_id TEXT,
            recipe_id TEXT,
            items TEXT
        );`,
		`CREATE TABLE rate_limit_records (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            identity_key TEXT,
            route TEXT,
            created_at DATETIME
        );`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create table: %v", err)
		}
	}
	return db
}

// setupTestRouter wires the real pipeline (sqlite store, real limiter and
// history) around the given LLM client, mirroring the production routes.
func setupTestRouter(t *testing.T, llm service.LLMClient) (*gin.Engine, *gorm.DB, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	logger := zap.NewNop()
	authService := service.NewAuthService("test-jwt-secret")
	limiter := service.NewRateLimiter(db)
	history := service.NewHistoryService(db, logger)
	recipes := service.NewRecipeService(db)

	quota := service.RateLimitPolicy{Limit: testDailyQuota, Window: 24 * time.Hour}
	burst := service.RateLimitPolicy{Limit: 5, Window: time.Minute}
	proposals := service.NewProposalService(llm, history, limiter, quota, 10, logger)

	proposeHandler := NewProposeHandler(proposals, nil, logger)
	recipeHandler := NewRecipeHandler(recipes)
	shoppingHandler := NewShoppingHandler(recipes)

	router := gin.New()
	v1 := router.Group("/api/v1")

	propose := v1.Group("/propose")
	propose.Use(middleware.OptionalAuthMiddleware(authService))
	propose.POST("",
		middleware.RateLimitMiddleware(limiter, "propose:burst", burst),
		proposeHandler.Propose)
	propose.GET("/drafts/:id", proposeHandler.GetDraft)
	propose.DELETE("/drafts/:id", proposeHandler.DeleteDraft)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		protected.POST("/recipes", recipeHandler.SaveRecipe)
		protected.GET("/recipes", recipeHandler.ListRecipes)
		protected.GET("/recipes/:id", recipeHandler.GetRecipe)
		protected.GET("/shopping", shoppingHandler.ListShoppingLists)
		protected.GET("/shopping/latest", shoppingHandler.LatestShoppingList)
		protected.DELETE("/shopping", shoppingHandler.ClearShoppingLists)
	}

	return router, db, authService
}

func mustNewUUID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.NewRandom()
	if err != nil {
		t.Fatalf("failed to generate uuid: %v", err)
	}
	return id
}

func makeToken(t *testing.T, authService *service.AuthService, userID uuid.UUID) string {
	t.Helper()
	token, err := authService.GenerateToken(&types.TokenClaims{
		UserID:   userID,
		Username: "tester",
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func validProposalBody() string {
	return `{
		"title": "Ginger pork stir fry",
		"description": "A quick weeknight stir fry.",
		"cook_time_min": 20,
		"ingredients": [
			{"name": "pork", "qty": 200, "unit": "g"},
			{"name": "cabbage", "qty": 100, "unit": "g"}
		],
		"steps": ["Slice the pork.", "Fry everything."],
		"tools": ["frying pan"],
		"shopping_list": [
			{"name": "pork", "qty": 200, "unit": "g", "category": "meat"},
			{"name": "cabbage", "qty": 100, "unit": "g", "category": "vegetable"}
		],
		"notes": ["Serve with rice."]
	}`
}
