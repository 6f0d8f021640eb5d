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

// GoalHandler serves financial goal CRUD. A goal is a pure record: the
// system never flips is_done when amount reaches the target.
type GoalHandler struct {
	DB *gorm.DB
}

func NewGoalHandler(db *gorm.DB) *GoalHandler {
	return &GoalHandler{DB: db}
}

type createGoalReq struct {
	Name         string          `json:"name" binding:"required,max=64"`
	Description  string          `json:"description" binding:"max=255"`
	Amount       decimal.Decimal `json:"amount"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	TargetDate   string          `json:"target_date"`
	UserID       uint            `json:"user_id" binding:"required"`
}

type updateGoalReq struct {
	Name         string          `json:"name" binding:"required,max=64"`
	Description  string          `json:"description" binding:"max=255"`
	Amount       decimal.Decimal `json:"amount"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	TargetDate   string          `json:"target_date"`
	IsDone       bool            `json:"is_done"`
}

type goalResp struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	TargetDate   string          `json:"target_date"`
	IsDone       bool            `json:"is_done"`
	UserID       uint            `json:"user_id"`
}

func toGoalResp(g *models.FinancialGoal) goalResp {
	return goalResp{
		ID:           g.ID,
		Name:         g.Name,
		Description:  g.Description,
		Amount:       g.Amount,
		TargetAmount: g.TargetAmount,
		TargetDate:   g.TargetDate,
		IsDone:       g.IsDone,
		UserID:       g.UserID,
	}
}

// Create adds a financial goal for a user.
func (h *GoalHandler) Create(c *gin.Context) {
	var req createGoalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if req.TargetDate != "" {
		if err := util.ValidateDate(req.TargetDate); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
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

	goal := models.FinancialGoal{
		Name:         req.Name,
		Description:  req.Description,
		Amount:       req.Amount,
		TargetAmount: req.TargetAmount,
		TargetDate:   req.TargetDate,
		UserID:       req.UserID,
	}
	if err := h.DB.Omit(clause.Associations).Create(&goal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create financial goal failed")
		return
	}

	util.Success(c, util.Response{
		"financial_goal": toGoalResp(&goal),
	})
}

// List returns all financial goals.
func (h *GoalHandler) List(c *gin.Context) {
	var goals []models.FinancialGoal
	if err := h.DB.Find(&goals).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query financial goals failed")
		return
	}

	items := make([]goalResp, 0, len(goals))
	for i := range goals {
		items = append(items, toGoalResp(&goals[i]))
	}
	util.Success(c, util.Response{
		"financial_goals": items,
	})
}

// ListByUser returns a user's goals filtered by completion state.
func (h *GoalHandler) ListByUser(c *gin.Context) {
	userID, ok := paramID(c, "user_id")
	if !ok {
		return
	}
	isDone, ok := paramBool(c, "is_done")
	if !ok {
		return
	}

	var goals []models.FinancialGoal
	if err := h.DB.Where("user_id = ? AND is_done = ?", userID, isDone).
		Find(&goals).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query financial goals failed")
		return
	}

	items := make([]goalResp, 0, len(goals))
	for i := range goals {
		items = append(items, toGoalResp(&goals[i]))
	}
	util.Success(c, util.Response{
		"financial_goals": items,
	})
}

// GetByID returns one financial goal.
func (h *GoalHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "goal_id")
	if !ok {
		return
	}

	var goal models.FinancialGoal
	if err := h.DB.First(&goal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "financial goal not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query financial goal failed")
		}
		return
	}

	util.Success(c, util.Response{
		"financial_goal": toGoalResp(&goal),
	})
}

// Update overwrites the mutable fields of a goal.
func (h *GoalHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "goal_id")
	if !ok {
		return
	}

	var req updateGoalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if req.TargetDate != "" {
		if err := util.ValidateDate(req.TargetDate); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
	}

	var goal models.FinancialGoal
	if err := h.DB.First(&goal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "financial goal not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query financial goal failed")
		}
		return
	}

	goal.Name = req.Name
	goal.Description = req.Description
	goal.Amount = req.Amount
	goal.TargetAmount = req.TargetAmount
	goal.TargetDate = req.TargetDate
	goal.IsDone = req.IsDone
	if err := h.DB.Omit(clause.Associations).Save(&goal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update financial goal failed")
		return
	}

	util.Success(c, util.Response{
		"financial_goal": toGoalResp(&goal),
	})
}

// Delete removes a financial goal.
func (h *GoalHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "goal_id")
	if !ok {
		return
	}

	res := h.DB.Delete(&models.FinancialGoal{}, id)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete financial goal failed")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "financial goal not found")
		return
	}

	util.Success(c, util.Response{
		"message": "financial goal deleted",
		"goal_id": id,
	})
}
