package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/sasi433/log-report-automation/internal/validation"
	"github.com/sasi433/log-report-automation/pkg/contracts"
	v1 "github.com/sasi433/log-report-automation/pkg/contracts/api/v1"
)

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	validator  *validation.FileValidator
	uploadsDir string
	logger     *slog.Logger
}

// NewHealthHandler creates a new health handler. Readiness verifies the
// uploads directory since every report run stages files there.
func NewHealthHandler(validator *validation.FileValidator, uploadsDir string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		validator:  validator,
		uploadsDir: uploadsDir,
		logger:     logger.With(slog.String("component", "health_handler")),
	}
}

// Liveness handles GET /api/healthz
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, v1.HealthResponse{
		Status:    v1.HealthStatusHealthy,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Readiness handles GET /api/readyz
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := v1.HealthResponse{
		Status:    v1.HealthStatusReady,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    map[string]string{"uploads_dir": "ok"},
	}

	if err := h.validator.ValidateOutputDirectory(h.uploadsDir); err != nil {
		h.logger.WarnContext(r.Context(), "readiness check failed",
			slog.String("check", "uploads_dir"),
			slog.String("error", err.Error()))
		resp.Status = v1.HealthStatusNotReady
		resp.Checks["uploads_dir"] = err.Error()
		render.Status(r, http.StatusServiceUnavailable)
	}

	render.JSON(w, r, resp)
}

// Version handles GET /api/version
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, contracts.GetVersionInfo())
}
