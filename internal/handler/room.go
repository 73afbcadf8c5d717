package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/zsbati/tenants/internal/models"
	"github.com/zsbati/tenants/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RoomHandler serves room CRUD and occupancy.
type RoomHandler struct {
	DB *gorm.DB
}

func NewRoomHandler(db *gorm.DB) *RoomHandler {
	return &RoomHandler{DB: db}
}

type roomReq struct {
	Name        string `json:"name" binding:"required,max=50"`
	Capacity    int    `json:"capacity" binding:"required"`
	Description string `json:"description" binding:"max=200"`
}

type roomResp struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
	Occupancy   int64  `json:"occupancy"`
	IsFull      bool   `json:"is_full"`
}

func (h *RoomHandler) toRoomResp(r *models.Room) (roomResp, error) {
	occupancy, err := activeTenantCount(h.DB, r.ID)
	if err != nil {
		return roomResp{}, err
	}
	return roomResp{
		ID:          r.ID,
		Name:        r.Name,
		Capacity:    r.Capacity,
		Description: r.Description,
		Occupancy:   occupancy,
		IsFull:      occupancy >= int64(r.Capacity),
	}, nil
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var req roomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name is required")
		return
	}
	if err := util.ValidateRoomCapacity(req.Capacity); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var count int64
	if err := h.DB.Model(&models.Room{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "a room with this name already exists")
		return
	}

	room := models.Room{
		Name:        req.Name,
		Capacity:    req.Capacity,
		Description: req.Description,
	}
	if err := h.DB.Create(&room).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save room")
		return
	}

	resp, err := h.toRoomResp(&room)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	util.Success(c, util.Response{
		"room": resp,
	})
}

func (h *RoomHandler) ListRooms(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var rooms []models.Room
	if err := h.DB.Order("name ASC").Find(&rooms).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]roomResp, 0, len(rooms))
	for i := range rooms {
		resp, err := h.toRoomResp(&rooms[i])
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
			return
		}
		items = append(items, resp)
	}

	util.Success(c, util.Response{
		"items": items,
	})
}

// UpdateRoom edits a room. Capacity cannot drop below the current
// number of active tenants.
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req roomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := util.ValidateRoomCapacity(req.Capacity); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var room models.Room
	if err := h.DB.First(&room, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "room not found")
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
	if int64(req.Capacity) < occupancy {
		util.Error(c, http.StatusConflict, util.CodeConflict, "capacity below current occupancy")
		return
	}

	if req.Name != room.Name {
		var count int64
		if err := h.DB.Model(&models.Room{}).
			Where("name = ? AND id <> ?", req.Name, room.ID).
			Count(&count).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
			return
		}
		if count > 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "a room with this name already exists")
			return
		}
	}

	room.Name = req.Name
	room.Capacity = req.Capacity
	room.Description = req.Description

	if err := h.DB.Save(&room).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save room")
		return
	}

	resp, err := h.toRoomResp(&room)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	util.Success(c, util.Response{
		"room": resp,
	})
}

// DeleteRoom removes a room. Any assigned tenants, deleted ones
// included, block the removal: their history still references the
// room.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var room models.Room
	if err := h.DB.First(&room, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "room not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	var assigned int64
	if err := h.DB.Model(&models.Tenant{}).Where("room_id = ?", room.ID).Count(&assigned).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	if assigned > 0 {
		util.Error(c, http.StatusConflict, util.CodeConflict, "room has assigned tenants")
		return
	}

	if err := h.DB.Delete(&room).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete room")
		return
	}

	util.Success(c, util.Response{
		"message": "room deleted",
	})
}
