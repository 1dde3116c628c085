// Package config provides centralized configuration management for the log
// report automation tools. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for accessing
// configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern LOGREPORT_* for namespacing:
//
//	LOGREPORT_SERVER_PORT=8080
//	LOGREPORT_LOGGING_LEVEL=info
//	LOGREPORT_REPORT_DEFAULT_OUTPUT=report.xlsx
//	LOGREPORT_SECURITY_RATE_LIMIT_ENABLED=true
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which handles all file system paths relative to the executable location:
//
//	paths, err := config.GetPaths()
//	reportPath := paths.GetReportPath("report.xlsx")
//	uploadPath := paths.GetUploadPath("export.csv")
//
// # Validation
//
// All configuration is validated at load time to ensure:
//
//	- Required fields are present
//	- Values are within acceptable ranges
//	- Dependent fields are consistent
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
