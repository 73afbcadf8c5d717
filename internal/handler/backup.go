package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/zsbati/tenants/internal/models"
	"github.com/zsbati/tenants/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BackupHandler struct {
	DB        *gorm.DB
	BackupDir string
}

func NewBackupHandler(db *gorm.DB, backupDir string) *BackupHandler {
	return &BackupHandler{
		DB:        db,
		BackupDir: backupDir,
	}
}

// backupData is the full register snapshot written to a backup file.
// IDs are kept as stored because the tables cross-reference each other.
type backupData struct {
	Created           time.Time                 `json:"created"`
	Rooms             []models.Room             `json:"rooms"`
	Tenants           []models.Tenant           `json:"tenants"`
	EmergencyContacts []models.EmergencyContact `json:"emergency_contacts"`
	RentHistory       []models.RentHistory      `json:"rent_history"`
	Payments          []models.Payment          `json:"payments"`
}

// CreateBackup writes a JSON snapshot of the whole register.
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	data := backupData{Created: time.Now()}
	if err := h.DB.Order("id ASC").Find(&data.Rooms).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	if err := h.DB.Order("id ASC").Find(&data.Tenants).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	if err := h.DB.Order("id ASC").Find(&data.EmergencyContacts).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	if err := h.DB.Order("id ASC").Find(&data.RentHistory).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	if err := h.DB.Order("id ASC").Find(&data.Payments).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	raw, err := json.MarshalIndent(&data, "", "  ")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "serialize failed")
		return
	}

	if err := os.MkdirAll(h.BackupDir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create backup dir failed")
		return
	}

	fileName := fmt.Sprintf("backup-%s.json", uuid.New().String())
	filePath := filepath.Join(h.BackupDir, fileName)

	if err := os.WriteFile(filePath, raw, 0o600); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "write backup file failed")
		return
	}

	info, _ := os.Stat(filePath)

	backup := models.Backup{
		UserID:   user.ID,
		FileName: fileName,
		FilePath: filePath,
		Size:     info.Size(),
	}
	if err := h.DB.Create(&backup).Error; err != nil {
		_ = os.Remove(filePath)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save backup record failed")
		return
	}

	util.Success(c, util.Response{
		"backup": gin.H{
			"id":         backup.ID,
			"file_name":  backup.FileName,
			"size":       backup.Size,
			"created_at": backup.CreatedAt,
		},
	})
}

// ListBackups lists existing backups, newest first.
func (h *BackupHandler) ListBackups(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var list []models.Backup
	if err := h.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]gin.H, 0, len(list))
	for i := range list {
		b := &list[i]
		items = append(items, gin.H{
			"id":         b.ID,
			"file_name":  b.FileName,
			"size":       b.Size,
			"created_at": b.CreatedAt,
		})
	}

	util.Success(c, util.Response{
		"items": items,
	})
}

// DownloadBackup streams a backup file.
func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var backup models.Backup
	if err := h.DB.First(&backup, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", backup.FileName))
	c.File(backup.FilePath)
}

// DeleteBackup removes the record and its file.
func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var backup models.Backup
	if err := h.DB.First(&backup, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	// file first, then record
	_ = os.Remove(backup.FilePath)
	if err := h.DB.Delete(&backup).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete backup record failed")
		return
	}

	util.Success(c, util.Response{
		"message": "backup deleted",
	})
}

// RestoreBackup replaces the whole register with a snapshot's content.
// IDs are restored as-is so rent history and payments keep pointing at
// the right tenants.
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	if currentUser(c) == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var backup models.Backup
	if err := h.DB.First(&backup, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	raw, err := os.ReadFile(backup.FilePath)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "read backup file failed")
		return
	}

	var data backupData
	if err := json.Unmarshal(raw, &data); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "parse backup data failed")
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.Payment{}, &models.RentHistory{}, &models.EmergencyContact{},
			&models.Tenant{}, &models.Room{},
		} {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return err
			}
		}

		for i := range data.Rooms {
			if err := tx.Create(&data.Rooms[i]).Error; err != nil {
				return err
			}
		}
		for i := range data.Tenants {
			t := data.Tenants[i]
			t.Room = models.Room{}
			t.EmergencyContact = nil
			t.RentHistory = nil
			t.Payments = nil
			if err := tx.Create(&t).Error; err != nil {
				return err
			}
		}
		for i := range data.EmergencyContacts {
			if err := tx.Create(&data.EmergencyContacts[i]).Error; err != nil {
				return err
			}
		}
		for i := range data.RentHistory {
			if err := tx.Create(&data.RentHistory[i]).Error; err != nil {
				return err
			}
		}
		for i := range data.Payments {
			if err := tx.Create(&data.Payments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "restore failed")
		return
	}

	util.Success(c, util.Response{
		"message":        "restore complete",
		"rooms_count":    len(data.Rooms),
		"tenants_count":  len(data.Tenants),
		"payments_count": len(data.Payments),
	})
}
