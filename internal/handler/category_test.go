package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/igorvsx/WalletControlAPI/internal/ledger"
	"github.com/igorvsx/WalletControlAPI/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newCategoryRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	h := NewCategoryHandler(db)

	r := gin.New()
	r.POST("/categories/add", h.Create)
	r.GET("/categories", h.List)
	r.DELETE("/categories/delete/:category_id", h.Delete)
	return r, db
}

func TestCategoryCreateTrimsAndValidates(t *testing.T) {
	r, db := newCategoryRouter(t)

	w := doJSON(t, r, http.MethodPost, "/categories/add", gin.H{"name": "  Groceries  "})
	if w.Code != http.StatusOK {
		t.Fatalf("create: status = %d, body = %s", w.Code, w.Body.String())
	}

	var category models.Category
	if err := db.First(&category).Error; err != nil {
		t.Fatalf("load category: %v", err)
	}
	if category.Name != "Groceries" {
		t.Fatalf("name = %q, want trimmed Groceries", category.Name)
	}

	w = doJSON(t, r, http.MethodPost, "/categories/add", gin.H{"name": "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank name: status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestCategoryDeleteLeavesTransactions(t *testing.T) {
	r, db := newCategoryRouter(t)
	user, account, category := seedLedgerFixtures(t, db, 0)

	svc := ledger.New(db)
	ctx := context.Background()
	if _, err := svc.Create(ctx, ledger.NewTransaction{
		Name:       "orphan-to-be",
		Amount:     decimal.NewFromInt(25),
		Date:       time.Now().Format("2006-01-02"),
		Income:     false,
		AccountID:  account.ID,
		CategoryID: category.ID,
	}); err != nil {
		t.Fatalf("seed transaction: %v", err)
	}

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/categories/delete/%d", category.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d, body = %s", w.Code, w.Body.String())
	}

	// the transaction survives with its stale category reference
	var tx models.Transaction
	if err := db.First(&tx).Error; err != nil {
		t.Fatalf("load transaction: %v", err)
	}
	if tx.CategoryID != category.ID {
		t.Fatalf("category_id = %d, want %d", tx.CategoryID, category.ID)
	}

	// and it no longer shows up in category aggregation
	sums, err := svc.SumByCategory(ctx, user.ID, false, "")
	if err != nil {
		t.Fatalf("sum by category: %v", err)
	}
	if len(sums) != 0 {
		t.Fatalf("sums = %v after category delete, want empty", sums)
	}
}

func TestCategoryDeleteMissing(t *testing.T) {
	r, _ := newCategoryRouter(t)

	w := doJSON(t, r, http.MethodDelete, "/categories/delete/42", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete missing: status = %d, body = %s", w.Code, w.Body.String())
	}
}
