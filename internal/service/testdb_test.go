package service

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	createRecipes := `CREATE TABLE recipes (
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
   );`
	if err := db.Exec(createRecipes).Error; err != nil {
		t.Fatalf("failed to create recipes table: %v", err)
	}

	createLists := `CREATE TABLE shopping_lists (
        id TEXT PRIMARY KEY,
        created_at DATETIME,
        updated_at DATETIME,
        user_id TEXT,
        recipe_id TEXT,
        items TEXT
   );`
	if err := db.Exec(createLists).Error; err != nil {
		t.Fatalf("failed to create shopping_lists table: %v", err)
	}

	createRateLimits := `CREATE TABLE rate_limit_records (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        identity_key TEXT,
        route TEXT,
        created_at DATETIME
   );`
	if err := db.Exec(createRateLimits).Error; err != nil {
		t.Fatalf("failed to create rate_limit_records table: %v", err)
	}

	return db
}
