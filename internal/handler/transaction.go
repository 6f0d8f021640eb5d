package handler

import (
	"errors"
	"net/http"

	"github.com/igorvsx/WalletControlAPI/internal/ledger"
	"github.com/igorvsx/WalletControlAPI/internal/models"
	"github.com/igorvsx/WalletControlAPI/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionHandler serves transaction CRUD and the category
// aggregation endpoints. All balance-affecting writes go through the
// ledger service.
type TransactionHandler struct {
	DB     *gorm.DB
	Ledger *ledger.Service
}

func NewTransactionHandler(db *gorm.DB, svc *ledger.Service) *TransactionHandler {
	return &TransactionHandler{DB: db, Ledger: svc}
}

type createTransactionReq struct {
	Name        string          `json:"name" binding:"required,max=64"`
	Description string          `json:"description" binding:"max=255"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date" binding:"required"`
	Income      bool            `json:"income"`
	AccountID   uint            `json:"account_id" binding:"required"`
	CategoryID  uint            `json:"category_id" binding:"required"`
}

type updateTransactionReq struct {
	Name        string          `json:"name" binding:"required,max=64"`
	Description string          `json:"description" binding:"max=255"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date" binding:"required"`
	Income      bool            `json:"income"`
	CategoryID  uint            `json:"category_id" binding:"required"`
}

type transactionResp struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Income      bool            `json:"income"`
	AccountID   uint            `json:"account_id"`
	CategoryID  uint            `json:"category_id"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Amount:      t.Amount,
		Date:        t.Date,
		Income:      t.Income,
		AccountID:   t.AccountID,
		CategoryID:  t.CategoryID,
	}
}

func (h *TransactionHandler) validateBody(c *gin.Context, amount decimal.Decimal, date string, categoryID uint) bool {
	if err := util.ValidateAmount(amount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return false
	}
	if err := util.ValidateDate(date); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return false
	}

	var count int64
	if err := h.DB.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query category failed")
		return false
	}
	if count == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "category not found")
		return false
	}
	return true
}

// Create records a transaction and adjusts the account balance.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if !h.validateBody(c, req.Amount, req.Date, req.CategoryID) {
		return
	}

	row, err := h.Ledger.Create(c.Request.Context(), ledger.NewTransaction{
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Income:      req.Income,
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "account not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create transaction failed")
		}
		return
	}

	util.Success(c, util.Response{
		"transaction": toTransactionResp(row),
	})
}

// List returns all transactions.
func (h *TransactionHandler) List(c *gin.Context) {
	var txs []models.Transaction
	if err := h.DB.Find(&txs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query transactions failed")
		return
	}

	items := make([]transactionResp, 0, len(txs))
	for i := range txs {
		items = append(items, toTransactionResp(&txs[i]))
	}
	util.Success(c, util.Response{
		"transactions": items,
	})
}

// ListByAccount returns an account's transactions; none is a not-found
// condition.
func (h *TransactionHandler) ListByAccount(c *gin.Context) {
	accountID, ok := paramID(c, "account_id")
	if !ok {
		return
	}

	var txs []models.Transaction
	if err := h.DB.Where("account_id = ?", accountID).Find(&txs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query transactions failed")
		return
	}
	if len(txs) == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "no transactions for this account")
		return
	}

	items := make([]transactionResp, 0, len(txs))
	for i := range txs {
		items = append(items, toTransactionResp(&txs[i]))
	}
	util.Success(c, util.Response{
		"transactions": items,
	})
}

// ListByAccountIncome returns an account's transactions filtered by the
// income flag.
func (h *TransactionHandler) ListByAccountIncome(c *gin.Context) {
	accountID, ok := paramID(c, "account_id")
	if !ok {
		return
	}
	income, ok := paramBool(c, "income")
	if !ok {
		return
	}

	var txs []models.Transaction
	if err := h.DB.Where("account_id = ? AND income = ?", accountID, income).
		Find(&txs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query transactions failed")
		return
	}
	if len(txs) == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "no transactions for this account")
		return
	}

	items := make([]transactionResp, 0, len(txs))
	for i := range txs {
		items = append(items, toTransactionResp(&txs[i]))
	}
	util.Success(c, util.Response{
		"transactions": items,
	})
}

// GetByID returns one transaction.
func (h *TransactionHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "transaction_id")
	if !ok {
		return
	}

	var tx models.Transaction
	if err := h.DB.First(&tx, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query transaction failed")
		}
		return
	}

	util.Success(c, util.Response{
		"transaction": toTransactionResp(&tx),
	})
}

// Update overwrites the mutable fields and corrects the balance delta.
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "transaction_id")
	if !ok {
		return
	}

	var req updateTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if !h.validateBody(c, req.Amount, req.Date, req.CategoryID) {
		return
	}

	row, err := h.Ledger.Update(c.Request.Context(), id, ledger.TransactionUpdate{
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Income:      req.Income,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrTransactionNotFound):
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		case errors.Is(err, ledger.ErrAccountNotFound):
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "account not found")
		case errors.Is(err, ledger.ErrIncomeImmutable):
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		default:
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update transaction failed")
		}
		return
	}

	util.Success(c, util.Response{
		"transaction": toTransactionResp(row),
	})
}

// Delete removes a transaction and reverses its balance effect.
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "transaction_id")
	if !ok {
		return
	}

	if err := h.Ledger.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ledger.ErrTransactionNotFound):
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		case errors.Is(err, ledger.ErrAccountNotFound):
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "account not found")
		default:
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete transaction failed")
		}
		return
	}

	util.Success(c, util.Response{
		"message":        "transaction deleted",
		"transaction_id": id,
	})
}

// SumIncomeByCategory aggregates income amounts per category over the
// bucket window. An empty result is an empty object, not an error.
func (h *TransactionHandler) SumIncomeByCategory(c *gin.Context) {
	h.sumByCategory(c, true)
}

// SumExpenseByCategory aggregates expense amounts per category over the
// bucket window.
func (h *TransactionHandler) SumExpenseByCategory(c *gin.Context) {
	h.sumByCategory(c, false)
}

func (h *TransactionHandler) sumByCategory(c *gin.Context, income bool) {
	userID, ok := paramID(c, "user_id")
	if !ok {
		return
	}
	bucket := c.Param("day")

	sums, err := h.Ledger.SumByCategory(c.Request.Context(), userID, income, bucket)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "aggregate transactions failed")
		return
	}

	util.Success(c, util.Response{
		"sums": sums,
	})
}
