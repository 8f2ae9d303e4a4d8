package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"lingo_admin_console/internal/config"
	"lingo_admin_console/internal/webutil"
)

type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Audit   string `json:"audit"`
}

// HealthHandler reports liveness. The audit database is pinged when one is
// configured; the document store is not contacted.
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(r, "Health")
	status := HealthStatus{Status: "ok", Version: config.AppVersion, Audit: "disabled"}

	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			logger.Error("Health check failed: could not ping audit database", "error", err)
			status.Status = "degraded"
			status.Audit = "unreachable"
			webutil.RespondWithJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		status.Audit = "ok"
	}
	webutil.RespondWithJSON(w, http.StatusOK, status)
}
