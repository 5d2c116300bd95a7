package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid localstore backend config",
			config: Config{
				DataBackend: "localstore",
				DataDir:     filepath.Join(tmpDir, "data"),
				ExportDir:   ".",
				LogLevel:    "info",
			},
			wantErr: false,
		},
		{
			name: "valid sqlite backend config",
			config: Config{
				DataBackend:  "sqlite",
				SQLiteDBPath: filepath.Join(tmpDir, "db", "fintrack.db"),
				ExportDir:    ".",
				LogLevel:     "debug",
			},
			wantErr: false,
		},
		{
			name: "invalid data backend",
			config: Config{
				DataBackend: "memory",
				DataDir:     tmpDir,
				ExportDir:   ".",
				LogLevel:    "info",
			},
			wantErr:     true,
			errorString: "invalid data backend 'memory': must be one of [localstore sqlite]",
		},
		{
			name: "localstore backend missing data directory",
			config: Config{
				DataBackend: "localstore",
				DataDir:     "",
				ExportDir:   ".",
				LogLevel:    "info",
			},
			wantErr:     true,
			errorString: "data directory cannot be empty when using localstore backend",
		},
		{
			name: "sqlite backend missing database path",
			config: Config{
				DataBackend:  "sqlite",
				SQLiteDBPath: "",
				ExportDir:    ".",
				LogLevel:     "info",
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name: "empty export directory",
			config: Config{
				DataBackend: "localstore",
				DataDir:     tmpDir,
				ExportDir:   "",
				LogLevel:    "info",
			},
			wantErr:     true,
			errorString: "export directory cannot be empty",
		},
		{
			name: "invalid log level",
			config: Config{
				DataBackend: "localstore",
				DataDir:     tmpDir,
				ExportDir:   ".",
				LogLevel:    "verbose",
			},
			wantErr:     true,
			errorString: "invalid log level 'verbose': must be one of [debug info warn error]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else {
				if err != nil {
					t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			}
		})
	}
}

func TestConfig_ValidateCreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "nested", "data")

	cfg := Config{
		DataBackend: "localstore",
		DataDir:     dataDir,
		ExportDir:   ".",
		LogLevel:    "info",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Config.Validate() error = %v", err)
	}
	if _, err := os.Stat(dataDir); err != nil {
		t.Errorf("data directory was not created: %v", err)
	}
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalVars := map[string]string{
		"DATA_BACKEND":   os.Getenv("DATA_BACKEND"),
		"DATA_DIR":       os.Getenv("DATA_DIR"),
		"SQLITE_DB_PATH": os.Getenv("SQLITE_DB_PATH"),
		"EXPORT_DIR":     os.Getenv("EXPORT_DIR"),
		"LOG_LEVEL":      os.Getenv("LOG_LEVEL"),
	}

	// Clean environment
	for key := range originalVars {
		os.Unsetenv(key)
	}

	// Restore env vars at end of test
	defer func() {
		for key, value := range originalVars {
			if value != "" {
				os.Setenv(key, value)
			} else {
				os.Unsetenv(key)
			}
		}
	}()

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.DataBackend != "localstore" {
			t.Errorf("Load() DataBackend = %v, want localstore", cfg.DataBackend)
		}
		if cfg.DataDir != "./data" {
			t.Errorf("Load() DataDir = %v, want ./data", cfg.DataDir)
		}
		if cfg.SQLiteDBPath != "./data/fintrack.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want ./data/fintrack.db", cfg.SQLiteDBPath)
		}
		if cfg.ExportDir != "." {
			t.Errorf("Load() ExportDir = %v, want .", cfg.ExportDir)
		}
		if cfg.LogLevel != "info" {
			t.Errorf("Load() LogLevel = %v, want info", cfg.LogLevel)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		os.Setenv("DATA_BACKEND", "sqlite")
		os.Setenv("SQLITE_DB_PATH", "/tmp/test.db")
		os.Setenv("EXPORT_DIR", "/tmp/exports")
		os.Setenv("LOG_LEVEL", "debug")

		cfg := Load()

		if cfg.DataBackend != "sqlite" {
			t.Errorf("Load() DataBackend = %v, want sqlite", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "/tmp/test.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want /tmp/test.db", cfg.SQLiteDBPath)
		}
		if cfg.ExportDir != "/tmp/exports" {
			t.Errorf("Load() ExportDir = %v, want /tmp/exports", cfg.ExportDir)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Load() LogLevel = %v, want debug", cfg.LogLevel)
		}
	})
}
