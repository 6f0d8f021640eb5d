package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/igorvsx/WalletControlAPI/internal/config"
	"github.com/igorvsx/WalletControlAPI/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Init(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Foreign-key enforcement is per connection in SQLite. Holding several
// pooled connections at once forces the pool to open fresh ones; each of
// them must come up with the pragma set.
func TestInitForeignKeysOnEveryConnection(t *testing.T) {
	db := initTestDB(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}

	ctx := context.Background()
	var conns []*sql.Conn
	defer func() {
		for _, conn := range conns {
			conn.Close()
		}
	}()

	for i := 0; i < 4; i++ {
		conn, err := sqlDB.Conn(ctx)
		if err != nil {
			t.Fatalf("open connection %d: %v", i, err)
		}
		conns = append(conns, conn)

		var enabled int
		if err := conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
			t.Fatalf("query pragma on connection %d: %v", i, err)
		}
		if enabled != 1 {
			t.Fatalf("foreign_keys = %d on connection %d, want 1", enabled, i)
		}
	}
}

func seedGraph(t *testing.T, db *gorm.DB) (models.User, models.Account) {
	t.Helper()

	user := models.User{Name: "Cascade", Login: "cascade", Email: "cascade@example.com", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	account := models.Account{Name: "Main", Balance: decimal.NewFromInt(100), UserID: user.ID}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}
	category := models.Category{Name: "Misc"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	tx := models.Transaction{
		Name: "t", Amount: decimal.NewFromInt(10), Date: "2024-07-01",
		AccountID: account.ID, CategoryID: category.ID,
	}
	if err := db.Create(&tx).Error; err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
	budget := models.Budget{
		Name: "b", Amount: decimal.NewFromInt(50), Wasted: decimal.Zero,
		UserID: user.ID, AccountID: account.ID,
	}
	if err := db.Create(&budget).Error; err != nil {
		t.Fatalf("seed budget: %v", err)
	}
	goal := models.FinancialGoal{
		Name: "g", Amount: decimal.Zero, TargetAmount: decimal.NewFromInt(500),
		UserID: user.ID,
	}
	if err := db.Create(&goal).Error; err != nil {
		t.Fatalf("seed goal: %v", err)
	}
	return user, account
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return count
}

func TestAccountDeleteCascades(t *testing.T) {
	db := initTestDB(t)
	_, account := seedGraph(t, db)

	if err := db.Delete(&models.Account{}, account.ID).Error; err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if n := countRows(t, db, &models.Transaction{}); n != 0 {
		t.Fatalf("transactions left after account delete: %d", n)
	}
	if n := countRows(t, db, &models.Budget{}); n != 0 {
		t.Fatalf("budgets left after account delete: %d", n)
	}
	// user and goal are untouched
	if n := countRows(t, db, &models.User{}); n != 1 {
		t.Fatalf("users after account delete: %d", n)
	}
	if n := countRows(t, db, &models.FinancialGoal{}); n != 1 {
		t.Fatalf("goals after account delete: %d", n)
	}
}

func TestUserDeleteCascades(t *testing.T) {
	db := initTestDB(t)
	user, _ := seedGraph(t, db)

	if err := db.Delete(&models.User{}, user.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if n := countRows(t, db, &models.Account{}); n != 0 {
		t.Fatalf("accounts left after user delete: %d", n)
	}
	if n := countRows(t, db, &models.Transaction{}); n != 0 {
		t.Fatalf("transactions left after user delete: %d", n)
	}
	if n := countRows(t, db, &models.Budget{}); n != 0 {
		t.Fatalf("budgets left after user delete: %d", n)
	}
	if n := countRows(t, db, &models.FinancialGoal{}); n != 0 {
		t.Fatalf("goals left after user delete: %d", n)
	}
	// categories are standalone
	if n := countRows(t, db, &models.Category{}); n != 1 {
		t.Fatalf("categories after user delete: %d", n)
	}
}
