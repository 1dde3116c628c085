package config

import "time"

// Application metadata
const (
	AppName    = "Log Report Automation"
	AppVersion = "1.0.0"
)

// Report defaults
const (
	// DefaultInputPath is the log export read when no --input flag is given
	DefaultInputPath = "sample_data/example.csv"

	// DefaultOutputPath is the workbook written when no --output flag is given
	DefaultOutputPath = "report.xlsx"

	// DefaultMaxUploadBytes caps the size of log exports accepted over HTTP
	DefaultMaxUploadBytes = 50 << 20 // 50MB

	// ReportGenerationTimeout bounds a single report generation run
	ReportGenerationTimeout = 2 * time.Minute
)

// Directory defaults, relative to the executable directory
const (
	DefaultDataDir    = "data"
	DefaultReportsDir = "data/reports"
	DefaultUploadsDir = "data/uploads"
	DefaultCacheDir   = "data/cache"
	DefaultLogsDir    = "logs"
)

// Logging defaults
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Rate limiting defaults
const (
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50
)

// API endpoints
const (
	EndpointReports = "/api/reports"
	EndpointHealth  = "/api/healthz"
	EndpointReady   = "/api/readyz"
	EndpointVersion = "/api/version"
	EndpointMetrics = "/metrics"
)
