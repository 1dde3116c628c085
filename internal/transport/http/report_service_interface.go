package http

import (
	"context"

	"github.com/sasi433/log-report-automation/internal/service"
)

// ReportServiceInterface defines the report operations the handler depends on
type ReportServiceInterface interface {
	Generate(ctx context.Context, req service.Request) (*service.Result, error)
}
