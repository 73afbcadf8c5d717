package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/zsbati/tenants/internal/models"
	"github.com/zsbati/tenants/internal/rent"
	"github.com/zsbati/tenants/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

// ExportPaymentsCSV writes all payments as CSV, optionally limited to
// one tenant. The BOM keeps Excel from mangling the encoding.
func (h *ExportHandler) ExportPaymentsCSV(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	q := h.DB.Model(&models.Payment{}).Order("payment_date DESC")
	if s := c.Query("tenant_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil || id <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid tenant_id")
			return
		}
		q = q.Where("tenant_id = ?", id)
	}

	var payments []models.Payment
	if err := q.Find(&payments).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	names := map[uint]string{}
	var tenants []models.Tenant
	if err := h.DB.Select("id, name").Find(&tenants).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	for _, t := range tenants {
		names[t.ID] = t.Name
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"payments_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM for Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write([]string{"Tenant", "Date", "Amount", "Type", "Status", "Reference Month", "Description"})

	for _, p := range payments {
		writer.Write([]string{
			names[p.TenantID],
			p.PaymentDate.Format("2006-01-02"),
			util.FormatCent(p.AmountCent),
			string(p.PaymentType),
			string(p.Status),
			p.ReferenceMonth.Format("2006-01"),
			p.Description,
		})
	}
}

// ExportStatementXLSX renders one tenant's statement for a date range
// as a spreadsheet.
func (h *ExportHandler) ExportStatementXLSX(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}
	start, err := util.ValidateDate(c.Query("start"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "start must be YYYY-MM-DD")
		return
	}
	end, err := util.ValidateDate(c.Query("end"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "end must be YYYY-MM-DD")
		return
	}
	if start.After(end) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "start is after end")
		return
	}

	var tenant models.Tenant
	if err := h.DB.First(&tenant, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "tenant not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}
	var history []models.RentHistory
	if err := h.DB.Where("tenant_id = ?", tenant.ID).Find(&history).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	var payments []models.Payment
	if err := h.DB.Where("tenant_id = ?", tenant.ID).Find(&payments).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	st := rent.BuildStatement(tenant.EntryDate, tenant.RentCent, history, payments, start, end)

	f := excelize.NewFile()
	sheetName := "Statement"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	f.SetCellValue(sheetName, "A1", "Tenant")
	f.SetCellValue(sheetName, "B1", tenant.Name)
	f.SetCellValue(sheetName, "A2", "Period")
	f.SetCellValue(sheetName, "B2", fmt.Sprintf("%s to %s",
		st.Start.Format("2006-01-02"), st.End.Format("2006-01-02")))
	f.SetCellValue(sheetName, "A3", "Opening balance")
	f.SetCellValue(sheetName, "B3", util.FormatCent(st.OpeningBalanceCent))

	headers := []string{"Date", "Kind", "Description", "Amount", "Balance"}
	headerRow := 5
	for i, hd := range headers {
		cell := fmt.Sprintf("%c%d", 'A'+i, headerRow)
		f.SetCellValue(sheetName, cell, hd)
	}

	for idx, l := range st.Lines {
		row := headerRow + 1 + idx
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), l.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), string(l.Kind))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), l.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), util.FormatCent(l.AmountCent))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), util.FormatCent(l.BalanceCent))
	}

	footerRow := headerRow + len(st.Lines) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", footerRow), "Total rent due")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", footerRow), util.FormatCent(st.TotalRentDueCent))
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", footerRow+1), "Total payments")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", footerRow+1), util.FormatCent(st.TotalPaymentsCent))
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", footerRow+2), "Closing balance")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", footerRow+2), util.FormatCent(st.ClosingBalanceCent))

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 35)
	f.SetColWidth(sheetName, "D", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"statement_%d_%s.xlsx\"",
		tenant.ID, time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
