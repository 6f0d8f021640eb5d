package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/igorvsx/WalletControlAPI/internal/models"
	"github.com/igorvsx/WalletControlAPI/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler downloads an account's transaction history as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeaders = []string{"Date", "Name", "Description", "Type", "Amount", "Category"}

type exportRow struct {
	Date        string
	Name        string
	Description string
	Type        string
	Amount      string
	Category    string
}

func (h *ExportHandler) loadRows(c *gin.Context) ([]exportRow, bool) {
	accountID, ok := paramID(c, "account_id")
	if !ok {
		return nil, false
	}

	var account models.Account
	if err := h.DB.First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "account not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query account failed")
		}
		return nil, false
	}

	var txs []models.Transaction
	if err := h.DB.Where("account_id = ?", accountID).
		Order("date DESC, id DESC").
		Find(&txs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query transactions failed")
		return nil, false
	}

	var categories []models.Category
	if err := h.DB.Find(&categories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query categories failed")
		return nil, false
	}
	names := make(map[uint]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	rows := make([]exportRow, 0, len(txs))
	for i := range txs {
		t := &txs[i]
		typeText := "expense"
		if t.Income {
			typeText = "income"
		}
		rows = append(rows, exportRow{
			Date:        t.Date,
			Name:        t.Name,
			Description: t.Description,
			Type:        typeText,
			Amount:      t.Amount.StringFixed(2),
			Category:    names[t.CategoryID], // empty for orphaned categories
		})
	}
	return rows, true
}

// ExportCSV streams the account's transactions as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	rows, ok := h.loadRows(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, r := range rows {
		writer.Write([]string{r.Date, r.Name, r.Description, r.Type, r.Amount, r.Category})
	}
}

// ExportXLSX streams the account's transactions as an XLSX attachment.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	rows, ok := h.loadRows(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, r := range rows {
		row := idx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.Date)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Type)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.Category)
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "C", 30)
	f.SetColWidth(sheetName, "D", "D", 10)
	f.SetColWidth(sheetName, "E", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 15)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
