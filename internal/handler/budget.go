package handler

import (
	"errors"
	"net/http"

	"github.com/igorvsx/WalletControlAPI/internal/models"
	"github.com/igorvsx/WalletControlAPI/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BudgetHandler serves budget CRUD. Wasted is a stored field the caller
// maintains; nothing derives it from transactions.
type BudgetHandler struct {
	DB *gorm.DB
}

func NewBudgetHandler(db *gorm.DB) *BudgetHandler {
	return &BudgetHandler{DB: db}
}

type createBudgetReq struct {
	Name       string          `json:"name" binding:"required,max=64"`
	Amount     decimal.Decimal `json:"amount"`
	Wasted     decimal.Decimal `json:"wasted"`
	Date       string          `json:"date"`
	TargetDate string          `json:"target_date"`
	UserID     uint            `json:"user_id" binding:"required"`
	AccountID  uint            `json:"account_id" binding:"required"`
}

type updateBudgetReq struct {
	Name       string          `json:"name" binding:"required,max=64"`
	Amount     decimal.Decimal `json:"amount"`
	Wasted     decimal.Decimal `json:"wasted"`
	Date       string          `json:"date"`
	TargetDate string          `json:"target_date"`
}

type budgetResp struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Wasted     decimal.Decimal `json:"wasted"`
	Date       string          `json:"date"`
	TargetDate string          `json:"target_date"`
	UserID     uint            `json:"user_id"`
	AccountID  uint            `json:"account_id"`
}

func toBudgetResp(b *models.Budget) budgetResp {
	return budgetResp{
		ID:         b.ID,
		Name:       b.Name,
		Amount:     b.Amount,
		Wasted:     b.Wasted,
		Date:       b.Date,
		TargetDate: b.TargetDate,
		UserID:     b.UserID,
		AccountID:  b.AccountID,
	}
}

// Create adds a budget bound to a user and one of their accounts.
func (h *BudgetHandler) Create(c *gin.Context) {
	var req createBudgetReq
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

	if err := h.DB.Model(&models.Account{}).Where("id = ?", req.AccountID).Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query account failed")
		return
	}
	if count == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "account not found")
		return
	}

	budget := models.Budget{
		Name:       req.Name,
		Amount:     req.Amount,
		Wasted:     req.Wasted,
		Date:       req.Date,
		TargetDate: req.TargetDate,
		UserID:     req.UserID,
		AccountID:  req.AccountID,
	}
	if err := h.DB.Omit(clause.Associations).Create(&budget).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create budget failed")
		return
	}

	util.Success(c, util.Response{
		"budget": toBudgetResp(&budget),
	})
}

// List returns all budgets.
func (h *BudgetHandler) List(c *gin.Context) {
	var budgets []models.Budget
	if err := h.DB.Find(&budgets).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query budgets failed")
		return
	}

	items := make([]budgetResp, 0, len(budgets))
	for i := range budgets {
		items = append(items, toBudgetResp(&budgets[i]))
	}
	util.Success(c, util.Response{
		"budgets": items,
	})
}

// ListByUser returns a user's budgets.
func (h *BudgetHandler) ListByUser(c *gin.Context) {
	userID, ok := paramID(c, "user_id")
	if !ok {
		return
	}

	var budgets []models.Budget
	if err := h.DB.Where("user_id = ?", userID).Find(&budgets).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query budgets failed")
		return
	}

	items := make([]budgetResp, 0, len(budgets))
	for i := range budgets {
		items = append(items, toBudgetResp(&budgets[i]))
	}
	util.Success(c, util.Response{
		"budgets": items,
	})
}

// GetByID returns one budget.
func (h *BudgetHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "budget_id")
	if !ok {
		return
	}

	var budget models.Budget
	if err := h.DB.First(&budget, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "budget not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query budget failed")
		}
		return
	}

	util.Success(c, util.Response{
		"budget": toBudgetResp(&budget),
	})
}

// Update overwrites the mutable fields of a budget. Owning user and
// account are fixed at creation.
func (h *BudgetHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "budget_id")
	if !ok {
		return
	}

	var req updateBudgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	var budget models.Budget
	if err := h.DB.First(&budget, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "budget not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query budget failed")
		}
		return
	}

	budget.Name = req.Name
	budget.Amount = req.Amount
	budget.Wasted = req.Wasted
	budget.Date = req.Date
	budget.TargetDate = req.TargetDate
	if err := h.DB.Omit(clause.Associations).Save(&budget).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update budget failed")
		return
	}

	util.Success(c, util.Response{
		"budget": toBudgetResp(&budget),
	})
}

// Delete removes a budget.
func (h *BudgetHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "budget_id")
	if !ok {
		return
	}

	res := h.DB.Delete(&models.Budget{}, id)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete budget failed")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "budget not found")
		return
	}

	util.Success(c, util.Response{
		"message":   "budget deleted",
		"budget_id": id,
	})
}
