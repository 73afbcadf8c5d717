package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zsbati/tenants/internal/models"
	"github.com/zsbati/tenants/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TenantHandler serves tenant CRUD, soft delete and restore.
type TenantHandler struct {
	DB *gorm.DB
}

func NewTenantHandler(db *gorm.DB) *TenantHandler {
	return &TenantHandler{DB: db}
}

// ---------- request/response structures ----------

type emergencyContactReq struct {
	Name  string `json:"name" binding:"max=100"`
	Phone string `json:"phone" binding:"max=20"`
	Email string `json:"email" binding:"max=100"`
}

type createTenantReq struct {
	Name             string               `json:"name" binding:"required,max=100"`
	BI               string               `json:"bi" binding:"required,max=20"`
	Email            string               `json:"email" binding:"max=100"`
	Phone            string               `json:"phone" binding:"max=20"`
	Address          string               `json:"address" binding:"max=200"`
	BirthDate        string               `json:"birth_date" binding:"required"`
	EntryDate        string               `json:"entry_date" binding:"required"`
	RoomID           uint                 `json:"room_id" binding:"required"`
	Rent             string               `json:"rent" binding:"required"` // decimal string, e.g. "500.00"
	EmergencyContact *emergencyContactReq `json:"emergency_contact"`
}

type updateTenantReq struct {
	Name             string               `json:"name" binding:"required,max=100"`
	Email            string               `json:"email" binding:"max=100"`
	Phone            string               `json:"phone" binding:"max=20"`
	Address          string               `json:"address" binding:"max=200"`
	RoomID           uint                 `json:"room_id" binding:"required"`
	Rent             string               `json:"rent" binding:"required"`
	EmergencyContact *emergencyContactReq `json:"emergency_contact"`
}

type tenantResp struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	BI        string     `json:"bi"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	BirthDate string     `json:"birth_date"`
	EntryDate string     `json:"entry_date"`
	RoomID    uint       `json:"room_id"`
	RoomName  string     `json:"room_name,omitempty"`
	RentCent  int64      `json:"rent_cent"`
	Rent      string     `json:"rent"`
	IsActive  bool       `json:"is_active"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func toTenantResp(t *models.Tenant) tenantResp {
	resp := tenantResp{
		ID:        t.ID,
		Name:      t.Name,
		BI:        t.BI,
		Email:     t.Email,
		Phone:     t.Phone,
		Address:   t.Address,
		BirthDate: t.BirthDate.Format("2006-01-02"),
		EntryDate: t.EntryDate.Format("2006-01-02"),
		RoomID:    t.RoomID,
		RentCent:  t.RentCent,
		Rent:      util.FormatCent(t.RentCent),
		IsActive:  t.IsActive(),
		DeletedAt: t.DeletedAt,
	}
	if t.Room.ID != 0 {
		resp.RoomName = t.Room.Name
	}
	return resp
}

// activeTenantCount counts active tenants assigned to a room.
func activeTenantCount(db *gorm.DB, roomID uint) (int64, error) {
	var n int64
	err := db.Model(&models.Tenant{}).
		Where("room_id = ? AND deleted_at IS NULL", roomID).
		Count(&n).Error
	return n, err
}

// ---------- create ----------

func (h *TenantHandler) CreateTenant(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var req createTenantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.BI = strings.TrimSpace(req.BI)
	if req.Name == "" || req.BI == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name and bi are required")
		return
	}

	birthDate, err := util.ValidateDate(req.BirthDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "birth_date must be YYYY-MM-DD")
		return
	}
	entryDate, err := util.ValidateDate(req.EntryDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "entry_date must be YYYY-MM-DD")
		return
	}

	rentCent, err := util.ParseAmountCent(req.Rent)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid rent amount")
		return
	}
	if err := util.ValidateRentAmount(rentCent); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	// BI must be unique among all tenants, deleted ones included
	var count int64
	if err := h.DB.Model(&models.Tenant{}).Where("bi = ?", req.BI).Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "a tenant with this bi already exists")
		return
	}

	var room models.Room
	if err := h.DB.First(&room, req.RoomID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "room does not exist")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	occupancy, err := activeTenantCount(h.DB, room.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	if occupancy >= int64(room.Capacity) {
		util.Error(c, http.StatusConflict, util.CodeConflict, "room is full")
		return
	}

	tenant := models.Tenant{
		Name:      req.Name,
		BI:        req.BI,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		BirthDate: birthDate,
		EntryDate: entryDate,
		RoomID:    room.ID,
		RentCent:  rentCent,
	}
	if req.EmergencyContact != nil {
		tenant.EmergencyContact = &models.EmergencyContact{
			Name:  req.EmergencyContact.Name,
			Phone: req.EmergencyContact.Phone,
			Email: req.EmergencyContact.Email,
		}
	}

	// the tenant and its opening rent interval are one write: balance
	// reconstruction depends on the interval starting at entry date
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}
		history := models.RentHistory{
			TenantID:   tenant.ID,
			AmountCent: rentCent,
			ValidFrom:  entryDate,
			ChangedAt:  time.Now(),
			ChangedBy:  user.Username,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save tenant")
		return
	}

	tenant.Room = room
	util.Success(c, util.Response{
		"tenant": toTenantResp(&tenant),
	})
}

// ---------- list ----------

// ListTenants supports pagination, name/bi search and an
// include_deleted switch.
func (h *TenantHandler) ListTenants(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
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

	base := h.DB.Model(&models.Tenant{})

	if c.Query("include_deleted") != "true" {
		base = base.Where("deleted_at IS NULL")
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		base = base.Where("name LIKE ? OR bi LIKE ?", like, like)
	}
	if roomStr := c.Query("room_id"); roomStr != "" {
		if roomID, err := strconv.Atoi(roomStr); err == nil && roomID > 0 {
			base = base.Where("room_id = ?", roomID)
		}
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	var tenants []models.Tenant
	if err := base.Session(&gorm.Session{}).
		Preload("Room").
		Order("name ASC, id ASC").
		Limit(size).
		Offset(offset).
		Find(&tenants).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]tenantResp, 0, len(tenants))
	for i := range tenants {
		items = append(items, toTenantResp(&tenants[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}

// ---------- get ----------

func (h *TenantHandler) GetTenant(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var tenant models.Tenant
	if err := h.DB.Preload("Room").Preload("EmergencyContact").First(&tenant, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "tenant not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	resp := util.Response{
		"tenant": toTenantResp(&tenant),
	}
	if tenant.EmergencyContact != nil {
		resp["emergency_contact"] = gin.H{
			"name":  tenant.EmergencyContact.Name,
			"phone": tenant.EmergencyContact.Phone,
			"email": tenant.EmergencyContact.Email,
		}
	}
	util.Success(c, resp)
}

// ---------- update ----------

// UpdateTenant edits contact fields, room assignment and rent. A rent
// change closes the open history interval and appends a new one in
// the same transaction as the tenant row update.
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req updateTenantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	rentCent, err := util.ParseAmountCent(req.Rent)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid rent amount")
		return
	}
	if err := util.ValidateRentAmount(rentCent); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
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

	// moving rooms re-checks the destination's capacity
	if req.RoomID != tenant.RoomID {
		var room models.Room
		if err := h.DB.First(&room, req.RoomID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "room does not exist")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
			}
			return
		}
		occupancy, err := activeTenantCount(h.DB, room.ID)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
			return
		}
		if tenant.IsActive() && occupancy >= int64(room.Capacity) {
			util.Error(c, http.StatusConflict, util.CodeConflict, "room is full")
			return
		}
	}

	rentChanged := rentCent != tenant.RentCent

	tenant.Name = strings.TrimSpace(req.Name)
	tenant.Email = req.Email
	tenant.Phone = req.Phone
	tenant.Address = req.Address
	tenant.RoomID = req.RoomID
	tenant.RentCent = rentCent

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&tenant).Error; err != nil {
			return err
		}

		if req.EmergencyContact != nil {
			contact := models.EmergencyContact{
				Name:  req.EmergencyContact.Name,
				Phone: req.EmergencyContact.Phone,
				Email: req.EmergencyContact.Email,
			}
			var existing models.EmergencyContact
			switch err := tx.Where("tenant_id = ?", tenant.ID).First(&existing).Error; err {
			case nil:
				contact.ID = existing.ID
				contact.TenantID = tenant.ID
				if err := tx.Save(&contact).Error; err != nil {
					return err
				}
			case gorm.ErrRecordNotFound:
				contact.TenantID = tenant.ID
				if err := tx.Create(&contact).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}

		if !rentChanged {
			return nil
		}

		// close the open interval and append the new one; both writes
		// succeed or neither does
		now := time.Now()
		if err := tx.Model(&models.RentHistory{}).
			Where("tenant_id = ? AND valid_to IS NULL", tenant.ID).
			Update("valid_to", now).Error; err != nil {
			return err
		}
		history := models.RentHistory{
			TenantID:   tenant.ID,
			AmountCent: rentCent,
			ValidFrom:  now,
			ChangedAt:  now,
			ChangedBy:  user.Username,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save tenant")
		return
	}

	util.Success(c, util.Response{
		"tenant": toTenantResp(&tenant),
	})
}

// ---------- soft delete / restore ----------

func (h *TenantHandler) DeleteTenant(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
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
	if !tenant.IsActive() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "tenant is already deleted")
		return
	}

	now := time.Now()
	if err := h.DB.Model(&tenant).Update("deleted_at", now).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete tenant")
		return
	}

	util.Success(c, util.Response{
		"message":    "tenant deleted",
		"deleted_at": now,
	})
}

// RestoreTenant clears the soft-delete flag. The tenant's room must
// still have a free bed.
func (h *TenantHandler) RestoreTenant(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var tenant models.Tenant
	if err := h.DB.Preload("Room").First(&tenant, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "tenant not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}
	if tenant.IsActive() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "tenant is not deleted")
		return
	}

	occupancy, err := activeTenantCount(h.DB, tenant.RoomID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	if occupancy >= int64(tenant.Room.Capacity) {
		util.Error(c, http.StatusConflict, util.CodeConflict, "room is full, assign another room first")
		return
	}

	if err := h.DB.Model(&tenant).Update("deleted_at", nil).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to restore tenant")
		return
	}

	util.Success(c, util.Response{
		"message": "tenant restored",
	})
}
