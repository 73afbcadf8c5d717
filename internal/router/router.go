package router

import (
	"net/http"

	"github.com/zsbati/tenants/internal/config"
	"github.com/zsbati/tenants/internal/handler"
	"github.com/zsbati/tenants/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(jwtSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", handler.GetMe)
	protected.POST("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db))

	tenantHandler := handler.NewTenantHandler(db)
	protected.POST("/tenants", tenantHandler.CreateTenant)
	protected.GET("/tenants", tenantHandler.ListTenants)
	protected.GET("/tenants/:id", tenantHandler.GetTenant)
	protected.PUT("/tenants/:id", tenantHandler.UpdateTenant)
	protected.DELETE("/tenants/:id", tenantHandler.DeleteTenant)
	protected.POST("/tenants/:id/restore", tenantHandler.RestoreTenant)

	roomHandler := handler.NewRoomHandler(db)
	protected.POST("/rooms", roomHandler.CreateRoom)
	protected.GET("/rooms", roomHandler.ListRooms)
	protected.PUT("/rooms/:id", roomHandler.UpdateRoom)
	protected.DELETE("/rooms/:id", roomHandler.DeleteRoom)

	paymentHandler := handler.NewPaymentHandler(db)
	protected.POST("/tenants/:id/payments", paymentHandler.RecordPayment)
	protected.GET("/tenants/:id/payments", paymentHandler.ListPayments)

	reportHandler := handler.NewReportHandler(db)
	protected.GET("/tenants/:id/balance", reportHandler.GetBalance)
	protected.GET("/tenants/:id/statement", reportHandler.GetStatement)
	protected.GET("/reports/rent-collected", reportHandler.GetRentCollected)
	protected.GET("/reports/total-debt", reportHandler.GetTotalDebt)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/payments.csv", exportHandler.ExportPaymentsCSV)
	protected.GET("/tenants/:id/statement.xlsx", exportHandler.ExportStatementXLSX)

	backupHandler := handler.NewBackupHandler(db, cfg.Backup.Dir)
	protected.POST("/backups", backupHandler.CreateBackup)
	protected.GET("/backups", backupHandler.ListBackups)
	protected.GET("/backups/:id/download", backupHandler.DownloadBackup)
	protected.POST("/backups/:id/restore", backupHandler.RestoreBackup)
	protected.DELETE("/backups/:id", backupHandler.DeleteBackup)

	logHandler := handler.NewLogHandler(db)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
