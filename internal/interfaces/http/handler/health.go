package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports service liveness and database reachability
type HealthHandler struct {
	db      *gorm.DB
	appName string
	version string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *gorm.DB, appName, version string) *HealthHandler {
	return &HealthHandler{db: db, appName: appName, version: version}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	dbStatus := "up"

	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "down"
		}
	}

	c.JSON(status, gin.H{
		"service":  h.appName,
		"version":  h.version,
		"database": dbStatus,
	})
}
