package handler

import (
	"net/http"
	"strings"

	"github.com/igorvsx/WalletControlAPI/internal/models"
	"github.com/igorvsx/WalletControlAPI/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler serves category CRUD. Deleting a category does not
// cascade onto its transactions; they keep their category reference and
// simply drop out of category joins.
type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

type createCategoryReq struct {
	Name string `json:"name" binding:"required,max=64"`
}

type categoryResp struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Create adds a category.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := util.ValidateName(req.Name); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	category := models.Category{Name: req.Name}
	if err := h.DB.Create(&category).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create category failed")
		return
	}

	util.Success(c, util.Response{
		"category": categoryResp{ID: category.ID, Name: category.Name},
	})
}

// List returns all categories.
func (h *CategoryHandler) List(c *gin.Context) {
	var categories []models.Category
	if err := h.DB.Find(&categories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query categories failed")
		return
	}

	items := make([]categoryResp, 0, len(categories))
	for _, cat := range categories {
		items = append(items, categoryResp{ID: cat.ID, Name: cat.Name})
	}
	util.Success(c, util.Response{
		"categories": items,
	})
}

// Delete removes a category.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "category_id")
	if !ok {
		return
	}

	res := h.DB.Delete(&models.Category{}, id)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete category failed")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "category not found")
		return
	}

	util.Success(c, util.Response{
		"message":     "category deleted",
		"category_id": id,
	})
}
