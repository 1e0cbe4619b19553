package config

import (
	"os"
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Test server defaults
	if cfg.Server.Port != defaultServerPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, defaultServerPort)
	}
	if cfg.Server.Host != defaultServerHost {
		t.Errorf("Server.Host = %s, want %s", cfg.Server.Host, defaultServerHost)
	}

	// Test database defaults
	if cfg.Database.Path != defaultDatabasePath {
		t.Errorf("Database.Path = %s, want %s", cfg.Database.Path, defaultDatabasePath)
	}
	if cfg.Database.EnableWAL != defaultDatabaseEnableWAL {
		t.Errorf("Database.EnableWAL = %v, want %v", cfg.Database.EnableWAL, defaultDatabaseEnableWAL)
	}

	// Test logging defaults
	if cfg.Logging.Level != defaultLogLevel {
		t.Errorf("Logging.Level = %s, want %s", cfg.Logging.Level, defaultLogLevel)
	}
	if cfg.Logging.Pretty != defaultLogPretty {
		t.Errorf("Logging.Pretty = %v, want %v", cfg.Logging.Pretty, defaultLogPretty)
	}

	// Test recommendation defaults
	if cfg.Recommendations.ListSize != defaultRecommendationListSize {
		t.Errorf("Recommendations.ListSize = %d, want %d", cfg.Recommendations.ListSize, defaultRecommendationListSize)
	}
	if cfg.Recommendations.FreshnessWindow != defaultFreshnessWindow {
		t.Errorf("Recommendations.FreshnessWindow = %v, want %v", cfg.Recommendations.FreshnessWindow, defaultFreshnessWindow)
	}
	if cfg.Recommendations.RefreshInterval != defaultRefreshInterval {
		t.Errorf("Recommendations.RefreshInterval = %v, want %v", cfg.Recommendations.RefreshInterval, defaultRefreshInterval)
	}
	if cfg.Recommendations.MinNeighbors != defaultMinNeighbors {
		t.Errorf("Recommendations.MinNeighbors = %d, want %d", cfg.Recommendations.MinNeighbors, defaultMinNeighbors)
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	if err := os.Setenv("RESONATE_SERVER_PORT", "9090"); err != nil {
		t.Fatalf("Setenv error = %v", err)
	}
	if err := os.Setenv("RESONATE_LOGGING_LEVEL", "debug"); err != nil {
		t.Fatalf("Setenv error = %v", err)
	}
	if err := os.Setenv("RESONATE_RECOMMENDATIONS_FRESHNESSWINDOW", "1h"); err != nil {
		t.Fatalf("Setenv error = %v", err)
	}
	defer func() {
		_ = os.Unsetenv("RESONATE_SERVER_PORT")
		_ = os.Unsetenv("RESONATE_LOGGING_LEVEL")
		_ = os.Unsetenv("RESONATE_RECOMMENDATIONS_FRESHNESSWINDOW")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Recommendations.FreshnessWindow != time.Hour {
		t.Errorf("Recommendations.FreshnessWindow = %v, want 1h", cfg.Recommendations.FreshnessWindow)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid port zero",
			modify:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "invalid port too large",
			modify:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "invalid read timeout",
			modify:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid list size",
			modify:  func(c *Config) { c.Recommendations.ListSize = 0 },
			wantErr: true,
		},
		{
			name:    "invalid freshness window",
			modify:  func(c *Config) { c.Recommendations.FreshnessWindow = -time.Hour },
			wantErr: true,
		},
		{
			name:    "invalid refresh interval",
			modify:  func(c *Config) { c.Recommendations.RefreshInterval = 0 },
			wantErr: true,
		},
		{
			name:    "invalid neighbor like floor",
			modify:  func(c *Config) { c.Recommendations.MinNeighbors = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server: ServerConfig{
					Port:         defaultServerPort,
					Host:         defaultServerHost,
					ReadTimeout:  defaultReadTimeout,
					WriteTimeout: defaultWriteTimeout,
				},
				Database: DatabaseConfig{
					Path:              defaultDatabasePath,
					ConnectionTimeout: defaultDatabaseConnectionTimeout,
					EnableWAL:         defaultDatabaseEnableWAL,
				},
				Logging: LoggingConfig{
					Level:  defaultLogLevel,
					Pretty: defaultLogPretty,
				},
				Recommendations: RecommendationsConfig{
					ListSize:        defaultRecommendationListSize,
					FreshnessWindow: defaultFreshnessWindow,
					RefreshInterval: defaultRefreshInterval,
					MinNeighbors:    defaultMinNeighbors,
				},
			}
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
