package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/zsbati/tenants/internal/models"
	"github.com/zsbati/tenants/internal/rent"
	"github.com/zsbati/tenants/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportHandler exposes balances, statements and the summary
// aggregates. It loads one consistent snapshot of a tenant's history
// and payments per request and hands everything to the rent package.
type ReportHandler struct {
	DB *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db}
}

// tenantSnapshot is one tenant's data as loaded for a computation.
type tenantSnapshot struct {
	Tenant   models.Tenant
	History  []models.RentHistory
	Payments []models.Payment
}

// loadSnapshot returns found=false for an unknown tenant; read paths
// treat that as empty data, not as an error.
func (h *ReportHandler) loadSnapshot(tenantID int) (*tenantSnapshot, bool, error) {
	var snap tenantSnapshot
	if err := h.DB.First(&snap.Tenant, tenantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	if err := h.DB.Where("tenant_id = ?", snap.Tenant.ID).
		Order("valid_from ASC, id ASC").
		Find(&snap.History).Error; err != nil {
		return nil, false, err
	}
	if err := h.DB.Where("tenant_id = ?", snap.Tenant.ID).
		Find(&snap.Payments).Error; err != nil {
		return nil, false, err
	}

	if n := rent.OpenIntervals(snap.History); n > 1 {
		log.Printf("tenant %d has %d open rent intervals, using the most recent", snap.Tenant.ID, n)
	}
	return &snap, true, nil
}

// ---------- balance ----------

// GetBalance returns the signed balance as of a date (default now).
// Unknown tenants read as zero.
func (h *ReportHandler) GetBalance(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	asOf := time.Now()
	if s := c.Query("as_of"); s != "" {
		t, ok := parseDateTime(s)
		if !ok {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "as_of must be YYYY-MM-DD")
			return
		}
		asOf = t
	}

	snap, found, err := h.loadSnapshot(id)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	if !found {
		util.Success(c, util.Response{
			"balance_cent": int64(0),
			"balance":      util.FormatCent(0),
			"found":        false,
		})
		return
	}

	balance := rent.Balance(snap.Tenant.EntryDate, snap.Tenant.RentCent, snap.History, snap.Payments, asOf)

	util.Success(c, util.Response{
		"balance_cent": balance,
		"balance":      util.FormatCent(balance),
		"as_of":        rent.DateOnly(asOf).Format("2006-01-02"),
		"found":        true,
	})
}

// ---------- statement ----------

type lineItemResp struct {
	Date        string `json:"date"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	AmountCent  int64  `json:"amount_cent"`
	Amount      string `json:"amount"`
	BalanceCent int64  `json:"balance_cent"`
	Balance     string `json:"balance"`
	PaymentID   uint   `json:"payment_id,omitempty"`
}

type statementResp struct {
	Start              string         `json:"start"`
	End                string         `json:"end"`
	OpeningBalanceCent int64          `json:"opening_balance_cent"`
	OpeningBalance     string         `json:"opening_balance"`
	Lines              []lineItemResp `json:"lines"`
	ClosingBalanceCent int64          `json:"closing_balance_cent"`
	ClosingBalance     string         `json:"closing_balance"`
	TotalRentDueCent   int64          `json:"total_rent_due_cent"`
	TotalRentDue       string         `json:"total_rent_due"`
	TotalPaymentsCent  int64          `json:"total_payments_cent"`
	TotalPayments      string         `json:"total_payments"`
}

func toStatementResp(st rent.Statement) statementResp {
	resp := statementResp{
		Start:              st.Start.Format("2006-01-02"),
		End:                st.End.Format("2006-01-02"),
		OpeningBalanceCent: st.OpeningBalanceCent,
		OpeningBalance:     util.FormatCent(st.OpeningBalanceCent),
		Lines:              make([]lineItemResp, 0, len(st.Lines)),
		ClosingBalanceCent: st.ClosingBalanceCent,
		ClosingBalance:     util.FormatCent(st.ClosingBalanceCent),
		TotalRentDueCent:   st.TotalRentDueCent,
		TotalRentDue:       util.FormatCent(st.TotalRentDueCent),
		TotalPaymentsCent:  st.TotalPaymentsCent,
		TotalPayments:      util.FormatCent(st.TotalPaymentsCent),
	}
	for _, l := range st.Lines {
		resp.Lines = append(resp.Lines, lineItemResp{
			Date:        l.Date.Format("2006-01-02"),
			Kind:        string(l.Kind),
			Description: l.Description,
			AmountCent:  l.AmountCent,
			Amount:      util.FormatCent(l.AmountCent),
			BalanceCent: l.BalanceCent,
			Balance:     util.FormatCent(l.BalanceCent),
			PaymentID:   l.PaymentID,
		})
	}
	return resp
}

// GetStatement builds the chronological statement for [start, end].
// Unknown tenants get a null statement.
func (h *ReportHandler) GetStatement(c *gin.Context) {
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

	snap, found, err := h.loadSnapshot(id)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	if !found {
		util.Success(c, util.Response{
			"statement": nil,
			"found":     false,
		})
		return
	}

	st := rent.BuildStatement(snap.Tenant.EntryDate, snap.Tenant.RentCent, snap.History, snap.Payments, start, end)

	util.Success(c, util.Response{
		"statement": toStatementResp(st),
		"tenant": gin.H{
			"id":   snap.Tenant.ID,
			"name": snap.Tenant.Name,
		},
		"found": true,
	})
}

// ---------- aggregates ----------

// GetRentCollected sums completed rent-type payments attributed to a
// reference month.
func (h *ReportHandler) GetRentCollected(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	monthStr := c.Query("month")
	if monthStr == "" {
		monthStr = time.Now().Format("2006-01")
	}
	month, ok := parseMonth(monthStr)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "month must be YYYY-MM")
		return
	}

	var totalCent int64
	if err := h.DB.Model(&models.Payment{}).
		Where("payment_type = ? AND status = ?", models.PaymentTypeRent, models.PaymentStatusCompleted).
		Where("reference_month >= ? AND reference_month < ?", month, month.AddDate(0, 1, 0)).
		Select("COALESCE(SUM(amount_cent), 0)").
		Scan(&totalCent).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	util.Success(c, util.Response{
		"month":      month.Format("2006-01"),
		"total_cent": totalCent,
		"total":      util.FormatCent(totalCent),
	})
}

// GetTotalDebt sums the positive balances of all active tenants as of
// a date. Credits never offset other tenants' debts.
func (h *ReportHandler) GetTotalDebt(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	asOf := time.Now()
	if s := c.Query("as_of"); s != "" {
		t, ok := parseDateTime(s)
		if !ok {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "as_of must be YYYY-MM-DD")
			return
		}
		asOf = t
	}

	var tenants []models.Tenant
	if err := h.DB.Where("deleted_at IS NULL").Find(&tenants).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	var totalCent int64
	debtors := 0
	// one query pair per tenant; the register holds tens of tenants,
	// not thousands
	for i := range tenants {
		t := &tenants[i]

		var history []models.RentHistory
		if err := h.DB.Where("tenant_id = ?", t.ID).Find(&history).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
			return
		}
		var payments []models.Payment
		if err := h.DB.Where("tenant_id = ?", t.ID).Find(&payments).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
			return
		}

		if balance := rent.Balance(t.EntryDate, t.RentCent, history, payments, asOf); balance > 0 {
			totalCent += balance
			debtors++
		}
	}

	util.Success(c, util.Response{
		"as_of":      rent.DateOnly(asOf).Format("2006-01-02"),
		"total_cent": totalCent,
		"total":      util.FormatCent(totalCent),
		"debtors":    debtors,
	})
}
