package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zsbati/tenants/internal/models"
	"github.com/zsbati/tenants/internal/rent"
	"github.com/zsbati/tenants/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaymentHandler records payments and serves payment history.
// Payments are append-only: there is no edit or void endpoint, the
// status is fixed at creation.
type PaymentHandler struct {
	DB *gorm.DB
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{DB: db}
}

type recordPaymentReq struct {
	Amount         string `json:"amount" binding:"required"` // decimal string
	PaymentDate    string `json:"payment_date"`              // default: now
	PaymentType    string `json:"payment_type"`              // default: rent
	Status         string `json:"status"`                    // default: completed
	ReferenceMonth string `json:"reference_month" binding:"required"` // YYYY-MM
	Description    string `json:"description" binding:"max=255"`
}

type paymentResp struct {
	ID             uint      `json:"id"`
	TenantID       uint      `json:"tenant_id"`
	AmountCent     int64     `json:"amount_cent"`
	Amount         string    `json:"amount"`
	PaymentDate    time.Time `json:"payment_date"`
	PaymentType    string    `json:"payment_type"`
	Status         string    `json:"status"`
	ReferenceMonth string    `json:"reference_month"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}

func toPaymentResp(p *models.Payment) paymentResp {
	return paymentResp{
		ID:             p.ID,
		TenantID:       p.TenantID,
		AmountCent:     p.AmountCent,
		Amount:         util.FormatCent(p.AmountCent),
		PaymentDate:    p.PaymentDate,
		PaymentType:    string(p.PaymentType),
		Status:         string(p.Status),
		ReferenceMonth: p.ReferenceMonth.Format("2006-01"),
		Description:    p.Description,
		CreatedAt:      p.CreatedAt,
	}
}

// ---------- record ----------

// RecordPayment writes one payment against an active tenant.
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	tenantID, err := strconv.Atoi(c.Param("id"))
	if err != nil || tenantID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req recordPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	// recording against a missing or deleted tenant is an explicit
	// failure, not a silent zero
	var tenant models.Tenant
	if err := h.DB.First(&tenant, tenantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "tenant not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}
	if !tenant.IsActive() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "tenant is deleted")
		return
	}

	amountCent, err := util.ParseAmountCent(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return
	}
	if err := util.ValidatePaymentAmount(amountCent); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	paymentDate := time.Now()
	if req.PaymentDate != "" {
		t, ok := parseDateTime(req.PaymentDate)
		if !ok {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid payment_date")
			return
		}
		paymentDate = t
	}

	paymentType := models.PaymentTypeRent
	if req.PaymentType != "" {
		paymentType = models.PaymentType(strings.ToLower(req.PaymentType))
		if !paymentType.Valid() {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid payment_type")
			return
		}
	}

	status := models.PaymentStatusCompleted
	if req.Status != "" {
		status = models.PaymentStatus(strings.ToLower(req.Status))
		if !status.Valid() {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid status")
			return
		}
	}

	refMonth, ok := parseMonth(req.ReferenceMonth)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "reference_month must be YYYY-MM")
		return
	}

	payment := models.Payment{
		TenantID:       tenant.ID,
		AmountCent:     amountCent,
		PaymentDate:    paymentDate,
		PaymentType:    paymentType,
		Status:         status,
		ReferenceMonth: refMonth,
		Description:    req.Description,
	}
	if err := h.DB.Create(&payment).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save payment")
		return
	}

	util.Success(c, util.Response{
		"payment": toPaymentResp(&payment),
	})
}

// ---------- list ----------

// ListPayments returns a tenant's payment history with date range,
// status, reference month and description filters, paginated.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	tenantID, err := strconv.Atoi(c.Param("id"))
	if err != nil || tenantID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var tenant models.Tenant
	if err := h.DB.First(&tenant, tenantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "tenant not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	base := h.DB.Model(&models.Payment{}).Where("tenant_id = ?", tenant.ID)

	if startStr := c.Query("start"); startStr != "" {
		start, err := util.ValidateDate(startStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "start must be YYYY-MM-DD")
			return
		}
		base = base.Where("payment_date >= ?", start)
	}
	if endStr := c.Query("end"); endStr != "" {
		end, err := util.ValidateDate(endStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "end must be YYYY-MM-DD")
			return
		}
		// end is inclusive: stop before the next day
		base = base.Where("payment_date < ?", end.AddDate(0, 0, 1))
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.PaymentStatus(strings.ToLower(statusStr))
		if !status.Valid() {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid status")
			return
		}
		base = base.Where("status = ?", status)
	}
	if monthStr := c.Query("month"); monthStr != "" {
		month, ok := parseMonth(monthStr)
		if !ok {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "month must be YYYY-MM")
			return
		}
		base = base.Where("reference_month >= ? AND reference_month < ?", month, month.AddDate(0, 1, 0))
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		base = base.Where("description LIKE ?", "%"+q+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	var payments []models.Payment
	if err := base.Session(&gorm.Session{}).
		Order("payment_date DESC, id DESC").
		Limit(size).
		Offset(offset).
		Find(&payments).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]paymentResp, 0, len(payments))
	for i := range payments {
		items = append(items, toPaymentResp(&payments[i]))
	}

	// the balance label shown above the table
	var history []models.RentHistory
	if err := h.DB.Where("tenant_id = ?", tenant.ID).Find(&history).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	var all []models.Payment
	if err := h.DB.Where("tenant_id = ?", tenant.ID).Find(&all).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	balance := rent.Balance(tenant.EntryDate, tenant.RentCent, history, all, time.Now())

	util.Success(c, util.Response{
		"items":        items,
		"total":        total,
		"page":         page,
		"size":         size,
		"balance_cent": balance,
		"balance":      util.FormatCent(balance),
	})
}
