package handler

import (
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

func newTransactionRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	svc := ledger.New(db)
	h := NewTransactionHandler(db, svc)

	r := gin.New()
	r.POST("/transactions/add", h.Create)
	r.GET("/transactions/account/:account_id", h.ListByAccount)
	r.GET("/transactions/detail/:transaction_id", h.GetByID)
	r.PUT("/transactions/update/:transaction_id", h.Update)
	r.DELETE("/transactions/delete/:transaction_id", h.Delete)
	r.GET("/transactions/user/:user_id/income/:day", h.SumIncomeByCategory)
	r.GET("/transactions/user/:user_id/expense/:day", h.SumExpenseByCategory)
	return r, db
}

func seedLedgerFixtures(t *testing.T, db *gorm.DB, balance int64) (models.User, models.Account, models.Category) {
	t.Helper()

	user := models.User{
		Name:         "Fixture",
		Login:        fmt.Sprintf("fixture-%s", t.Name()),
		Email:        fmt.Sprintf("%s@example.com", t.Name()),
		PasswordHash: "x",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	account := models.Account{Name: "Main", Balance: decimal.NewFromInt(balance), UserID: user.ID}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}

	category := models.Category{Name: "Misc"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return user, account, category
}

func loadBalance(t *testing.T, db *gorm.DB, id uint) decimal.Decimal {
	t.Helper()
	var account models.Account
	if err := db.First(&account, id).Error; err != nil {
		t.Fatalf("reload account: %v", err)
	}
	return account.Balance
}

func TestTransactionCreateMovesBalance(t *testing.T) {
	r, db := newTransactionRouter(t)
	_, account, category := seedLedgerFixtures(t, db, 100)

	today := time.Now().Format("2006-01-02")
	w := doJSON(t, r, http.MethodPost, "/transactions/add", gin.H{
		"name":        "salary",
		"amount":      "250.50",
		"date":        today,
		"income":      true,
		"account_id":  account.ID,
		"category_id": category.ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create: status = %d, body = %s", w.Code, w.Body.String())
	}

	got := loadBalance(t, db, account.ID)
	if want := decimal.RequireFromString("350.50"); !got.Equal(want) {
		t.Fatalf("balance = %s, want %s", got, want)
	}
}

func TestTransactionCreateValidation(t *testing.T) {
	r, db := newTransactionRouter(t)
	_, account, category := seedLedgerFixtures(t, db, 100)

	today := time.Now().Format("2006-01-02")

	cases := []struct {
		name   string
		body   gin.H
		status int
	}{
		{
			name: "negative amount",
			body: gin.H{
				"name": "bad", "amount": "-5", "date": today,
				"account_id": account.ID, "category_id": category.ID,
			},
			status: http.StatusBadRequest,
		},
		{
			name: "malformed date",
			body: gin.H{
				"name": "bad", "amount": "5", "date": "07/10/2024",
				"account_id": account.ID, "category_id": category.ID,
			},
			status: http.StatusBadRequest,
		},
		{
			name: "missing category",
			body: gin.H{
				"name": "bad", "amount": "5", "date": today,
				"account_id": account.ID, "category_id": 9999,
			},
			status: http.StatusNotFound,
		},
		{
			name: "missing account",
			body: gin.H{
				"name": "bad", "amount": "5", "date": today,
				"account_id": 9999, "category_id": category.ID,
			},
			status: http.StatusNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/transactions/add", tc.body)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d, body = %s", w.Code, tc.status, w.Body.String())
			}
		})
	}

	// none of the rejected requests moved the balance
	if got := loadBalance(t, db, account.ID); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("balance moved by rejected requests: %s", got)
	}
}

func TestTransactionUpdateIncomeFlipRejected(t *testing.T) {
	r, db := newTransactionRouter(t)
	_, account, category := seedLedgerFixtures(t, db, 100)

	today := time.Now().Format("2006-01-02")
	w := doJSON(t, r, http.MethodPost, "/transactions/add", gin.H{
		"name":        "salary",
		"amount":      "50",
		"date":        today,
		"income":      true,
		"account_id":  account.ID,
		"category_id": category.ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create: status = %d, body = %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	txID := env["data"].(map[string]interface{})["transaction"].(map[string]interface{})["id"].(float64)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/transactions/update/%.0f", txID), gin.H{
		"name":        "salary",
		"amount":      "50",
		"date":        today,
		"income":      false,
		"category_id": category.ID,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("income flip: status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := loadBalance(t, db, account.ID); !got.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("balance = %s after rejected flip, want 150", got)
	}
}

func TestTransactionDeleteRestoresBalance(t *testing.T) {
	r, db := newTransactionRouter(t)
	_, account, category := seedLedgerFixtures(t, db, 100)

	today := time.Now().Format("2006-01-02")
	w := doJSON(t, r, http.MethodPost, "/transactions/add", gin.H{
		"name":        "dinner",
		"amount":      "40",
		"date":        today,
		"income":      false,
		"account_id":  account.ID,
		"category_id": category.ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create: status = %d, body = %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	txID := env["data"].(map[string]interface{})["transaction"].(map[string]interface{})["id"].(float64)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/transactions/delete/%.0f", txID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := loadBalance(t, db, account.ID); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("balance = %s after delete, want 100", got)
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/transactions/delete/%.0f", txID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete: status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestTransactionListByAccountEmpty(t *testing.T) {
	r, db := newTransactionRouter(t)
	_, account, _ := seedLedgerFixtures(t, db, 0)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/transactions/account/%d", account.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("empty account: status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestTransactionSumEndpoints(t *testing.T) {
	r, db := newTransactionRouter(t)
	user, account, category := seedLedgerFixtures(t, db, 0)

	today := time.Now().Format("2006-01-02")
	for _, tx := range []gin.H{
		{"name": "pay", "amount": "900", "date": today, "income": true,
			"account_id": account.ID, "category_id": category.ID},
		{"name": "food", "amount": "60", "date": today, "income": false,
			"account_id": account.ID, "category_id": category.ID},
	} {
		w := doJSON(t, r, http.MethodPost, "/transactions/add", tx)
		if w.Code != http.StatusOK {
			t.Fatalf("seed via endpoint: status = %d, body = %s", w.Code, w.Body.String())
		}
	}

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/transactions/user/%d/income/Day", user.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("income sums: status = %d, body = %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	sums := env["data"].(map[string]interface{})["sums"].(map[string]interface{})
	if sums["Misc"] != "900" {
		t.Fatalf("income sums = %v, want Misc 900", sums)
	}

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/transactions/user/%d/expense/Day", user.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expense sums: status = %d, body = %s", w.Code, w.Body.String())
	}
	env = decodeEnvelope(t, w)
	sums = env["data"].(map[string]interface{})["sums"].(map[string]interface{})
	if sums["Misc"] != "60" {
		t.Fatalf("expense sums = %v, want Misc 60", sums)
	}

	// no transactions for this user yields an empty object with status 200
	other := models.User{Name: "Other", Login: "other", Email: "other@example.com", PasswordHash: "x"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed other user: %v", err)
	}
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/transactions/user/%d/income/Day", other.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("empty sums: status = %d, body = %s", w.Code, w.Body.String())
	}
	env = decodeEnvelope(t, w)
	sums = env["data"].(map[string]interface{})["sums"].(map[string]interface{})
	if len(sums) != 0 {
		t.Fatalf("empty sums = %v, want empty object", sums)
	}
}
