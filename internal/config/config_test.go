package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadFromFile tests configuration loading with various scenarios
func TestLoadFromFile(t *testing.T) {
	// Save original environment to restore later
	originalEnv := make(map[string]string)
	envVars := []string{
		"LOGREPORT_SERVER_PORT", "LOGREPORT_SERVER_READ_TIMEOUT",
		"LOGREPORT_SECURITY_ALLOWED_ORIGINS", "LOGREPORT_SECURITY_ENABLE_CORS",
		"LOGREPORT_LOGGING_LEVEL", "LOGREPORT_LOGGING_FORMAT",
		"LOGREPORT_REPORT_DEFAULT_INPUT", "LOGREPORT_REPORT_DEFAULT_OUTPUT",
		"LOGREPORT_REPORT_MAX_UPLOAD_BYTES",
	}

	for _, envVar := range envVars {
		originalEnv[envVar] = os.Getenv(envVar)
	}

	defer func() {
		for _, envVar := range envVars {
			if val, exists := originalEnv[envVar]; exists && val != "" {
				os.Setenv(envVar, val)
			} else {
				os.Unsetenv(envVar)
			}
		}
	}()

	clearEnv := func() {
		for _, envVar := range envVars {
			os.Unsetenv(envVar)
		}
	}

	tests := []struct {
		name        string
		setupEnv    func()
		setupFile   func(t *testing.T) string // returns config file path, "" for none
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name:     "default configuration with no env vars",
			setupEnv: clearEnv,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
				assert.Equal(t, 1048576, cfg.Server.MaxHeaderBytes)
				assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)

				assert.Equal(t, []string{"http://localhost:8080"}, cfg.Security.AllowedOrigins)
				assert.True(t, cfg.Security.EnableCORS)
				assert.True(t, cfg.Security.RateLimit.Enabled)
				assert.Equal(t, 100.0, cfg.Security.RateLimit.RPS)
				assert.Equal(t, 50, cfg.Security.RateLimit.Burst)

				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "console", cfg.Logging.Output)

				assert.Equal(t, "sample_data/example.csv", cfg.Report.DefaultInput)
				assert.Equal(t, "report.xlsx", cfg.Report.DefaultOutput)
				assert.Equal(t, int64(50<<20), cfg.Report.MaxUploadBytes)

				assert.NotEmpty(t, cfg.Paths.ExecutableDir)
			},
		},
		{
			name: "environment variables override defaults",
			setupEnv: func() {
				clearEnv()
				os.Setenv("LOGREPORT_SERVER_PORT", "9090")
				os.Setenv("LOGREPORT_SERVER_READ_TIMEOUT", "30s")
				os.Setenv("LOGREPORT_SECURITY_ALLOWED_ORIGINS", "http://example.com,https://example.com")
				os.Setenv("LOGREPORT_SECURITY_ENABLE_CORS", "false")
				os.Setenv("LOGREPORT_LOGGING_LEVEL", "debug")
				os.Setenv("LOGREPORT_REPORT_DEFAULT_OUTPUT", "out/custom.xlsx")
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, []string{"http://example.com", "https://example.com"}, cfg.Security.AllowedOrigins)
				assert.False(t, cfg.Security.EnableCORS)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "out/custom.xlsx", cfg.Report.DefaultOutput)
			},
		},
		{
			name:     "config file overrides defaults",
			setupEnv: clearEnv,
			setupFile: func(t *testing.T) string {
				t.Helper()
				path := filepath.Join(t.TempDir(), "config.yaml")
				content := `server:
  port: 3000
logging:
  level: warn
report:
  default_output: data/reports/weekly.xlsx
`
				require.NoError(t, os.WriteFile(path, []byte(content), 0644))
				return path
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 3000, cfg.Server.Port)
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, "data/reports/weekly.xlsx", cfg.Report.DefaultOutput)
				// Keys absent from the file keep their defaults
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "sample_data/example.csv", cfg.Report.DefaultInput)
			},
		},
		{
			name: "env vars take precedence over config file",
			setupEnv: func() {
				clearEnv()
				os.Setenv("LOGREPORT_SERVER_PORT", "4000")
			},
			setupFile: func(t *testing.T) string {
				t.Helper()
				path := filepath.Join(t.TempDir(), "config.yaml")
				require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 3000\n"), 0644))
				return path
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 4000, cfg.Server.Port)
			},
		},
		{
			name: "invalid port number",
			setupEnv: func() {
				clearEnv()
				os.Setenv("LOGREPORT_SERVER_PORT", "99999")
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			setupEnv: func() {
				clearEnv()
				os.Setenv("LOGREPORT_LOGGING_LEVEL", "verbose")
			},
			wantErr: true,
		},
		{
			name: "empty default output rejected",
			setupEnv: func() {
				clearEnv()
			},
			setupFile: func(t *testing.T) string {
				t.Helper()
				path := filepath.Join(t.TempDir(), "config.yaml")
				require.NoError(t, os.WriteFile(path, []byte("report:\n  default_output: \"\"\n"), 0644))
				return path
			},
			wantErr: true,
		},
		{
			name:     "nonexistent config file",
			setupEnv: clearEnv,
			setupFile: func(t *testing.T) string {
				t.Helper()
				return filepath.Join(t.TempDir(), "missing.yaml")
			},
			wantErr: true,
		},
		{
			name:     "malformed config file",
			setupEnv: clearEnv,
			setupFile: func(t *testing.T) string {
				t.Helper()
				path := filepath.Join(t.TempDir(), "config.yaml")
				require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0644))
				return path
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupEnv()

			configFile := ""
			if tt.setupFile != nil {
				configFile = tt.setupFile(t)
			}

			cfg, err := LoadFromFile(configFile)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DefaultInputPath, cfg.Report.DefaultInput)
	assert.Equal(t, DefaultOutputPath, cfg.Report.DefaultOutput)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.Report.MaxUploadBytes)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
	assert.Equal(t, float64(DefaultRateLimit), cfg.Security.RateLimit.RPS)
	assert.Equal(t, DefaultBurstSize, cfg.Security.RateLimit.Burst)
	assert.Equal(t, DefaultDataDir, cfg.Paths.DataDir)
	assert.Equal(t, DefaultReportsDir, cfg.Paths.ReportsDir)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "default config is valid",
			modify:  func(cfg *Config) {},
			wantErr: false,
		},
		{
			name: "zero port",
			modify: func(cfg *Config) {
				cfg.Server.Port = 0
			},
			wantErr: true,
		},
		{
			name: "negative read timeout",
			modify: func(cfg *Config) {
				cfg.Server.ReadTimeout = -1 * time.Second
			},
			wantErr: true,
		},
		{
			name: "no allowed origins",
			modify: func(cfg *Config) {
				cfg.Security.AllowedOrigins = nil
			},
			wantErr: true,
		},
		{
			name: "invalid logging format",
			modify: func(cfg *Config) {
				cfg.Logging.Format = "xml"
			},
			wantErr: true,
		},
		{
			name: "file output without file path",
			modify: func(cfg *Config) {
				cfg.Logging.Output = "file"
				cfg.Logging.FilePath = ""
			},
			wantErr: true,
		},
		{
			name: "zero max upload bytes",
			modify: func(cfg *Config) {
				cfg.Report.MaxUploadBytes = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_DirAccessors(t *testing.T) {
	cfg := Default()
	cfg.Paths.ExecutableDir = filepath.Join("/opt", "logreport")

	t.Run("relative dirs join executable dir", func(t *testing.T) {
		assert.Equal(t, filepath.Join("/opt", "logreport", "data"), cfg.GetDataDir())
		assert.Equal(t, filepath.Join("/opt", "logreport", "data", "reports"), cfg.GetReportsDir())
		assert.Equal(t, filepath.Join("/opt", "logreport", "data", "uploads"), cfg.GetUploadsDir())
		assert.Equal(t, filepath.Join("/opt", "logreport", "logs"), cfg.GetLogsDir())
	})

	t.Run("absolute dirs returned unchanged", func(t *testing.T) {
		abs := filepath.Join(string(filepath.Separator), "var", "lib", "logreport")
		cfg.Paths.DataDir = abs
		assert.Equal(t, abs, cfg.GetDataDir())
	})
}
