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
	"gorm.io/gorm/clause"
)

// AccountHandler serves account CRUD. The update contract deliberately
// excludes balance: after creation only the ledger service writes it.
type AccountHandler struct {
	DB     *gorm.DB
	Ledger *ledger.Service
}

func NewAccountHandler(db *gorm.DB, svc *ledger.Service) *AccountHandler {
	return &AccountHandler{DB: db, Ledger: svc}
}

type createAccountReq struct {
	Name    string          `json:"name" binding:"required,max=64"`
	Balance decimal.Decimal `json:"balance"` // accepted seed value
	UserID  uint            `json:"user_id" binding:"required"`
}

type updateAccountReq struct {
	Name string `json:"name" binding:"required,max=64"`
}

type accountResp struct {
	ID      uint            `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	UserID  uint            `json:"user_id"`
}

func toAccountResp(a *models.Account) accountResp {
	return accountResp{
		ID:      a.ID,
		Name:    a.Name,
		Balance: a.Balance,
		UserID:  a.UserID,
	}
}

// Create opens an account with a caller-supplied starting balance.
func (h *AccountHandler) Create(c *gin.Context) {
	var req createAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).Where("id = ?", req.UserID).Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query user failed")
		return
	}
	if count == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "user not found")
		return
	}

	account := models.Account{
		Name:    req.Name,
		Balance: req.Balance,
		UserID:  req.UserID,
	}
	if err := h.DB.Omit(clause.Associations).Create(&account).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create account failed")
		return
	}

	util.Success(c, util.Response{
		"account": toAccountResp(&account),
	})
}

// List returns all accounts.
func (h *AccountHandler) List(c *gin.Context) {
	var accounts []models.Account
	if err := h.DB.Find(&accounts).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query accounts failed")
		return
	}

	items := make([]accountResp, 0, len(accounts))
	for i := range accounts {
		items = append(items, toAccountResp(&accounts[i]))
	}
	util.Success(c, util.Response{
		"accounts": items,
	})
}

// ListByUser returns a user's accounts; none is a not-found condition.
func (h *AccountHandler) ListByUser(c *gin.Context) {
	userID, ok := paramID(c, "user_id")
	if !ok {
		return
	}

	var accounts []models.Account
	if err := h.DB.Where("user_id = ?", userID).Find(&accounts).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query accounts failed")
		return
	}
	if len(accounts) == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "no accounts for this user")
		return
	}

	items := make([]accountResp, 0, len(accounts))
	for i := range accounts {
		items = append(items, toAccountResp(&accounts[i]))
	}
	util.Success(c, util.Response{
		"accounts": items,
	})
}

// GetByID returns one account.
func (h *AccountHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "account_id")
	if !ok {
		return
	}

	var account models.Account
	if err := h.DB.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "account not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query account failed")
		}
		return
	}

	util.Success(c, util.Response{
		"account": toAccountResp(&account),
	})
}

// TotalBalance sums a user's account balances; zero when they have none.
func (h *AccountHandler) TotalBalance(c *gin.Context) {
	userID, ok := paramID(c, "user_id")
	if !ok {
		return
	}

	total, err := h.Ledger.TotalBalance(c.Request.Context(), userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query total balance failed")
		return
	}

	util.Success(c, util.Response{
		"total_balance": total,
	})
}

// Update renames an account. Balance is not part of the contract.
func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "account_id")
	if !ok {
		return
	}

	var req updateAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	var account models.Account
	if err := h.DB.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "account not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query account failed")
		}
		return
	}

	if err := h.DB.Model(&account).Update("name", req.Name).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update account failed")
		return
	}
	account.Name = req.Name

	util.Success(c, util.Response{
		"account": toAccountResp(&account),
	})
}

// Delete removes an account and, through cascade, its transactions and
// budgets.
func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "account_id")
	if !ok {
		return
	}

	res := h.DB.Delete(&models.Account{}, id)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete account failed")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "account not found")
		return
	}

	util.Success(c, util.Response{
		"message":    "account deleted",
		"account_id": id,
	})
}
