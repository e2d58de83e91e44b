package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.WordsPerDay != 5 {
		t.Errorf("Expected default words per day 5, got %d", config.WordsPerDay)
	}

	if config.RefreshSchedule != "5 0 * * *" {
		t.Errorf("Expected default refresh schedule '5 0 * * *', got %s", config.RefreshSchedule)
	}

	if config.PlatformSafeWipe {
		t.Error("Expected platform-safe wipe to be off by default")
	}

	if config.DBPath != "" {
		t.Errorf("Expected default db path empty, got %s", config.DBPath)
	}
}

func TestConfigManager_LoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	cm := NewConfigManagerWithPath(configPath)

	config, err := cm.Load()
	if err != nil {
		t.Fatalf("Expected no error loading non-existent config, got: %v", err)
	}

	expectedDefault := DefaultConfig()
	if config.WordsPerDay != expectedDefault.WordsPerDay {
		t.Errorf("Expected default words per day %d, got %d", expectedDefault.WordsPerDay, config.WordsPerDay)
	}
}

func TestConfigManager_SaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nested", "config.yaml")

	cm := NewConfigManagerWithPath(configPath)

	testConfig := &Config{
		DBPath:           "/custom/vocab.db",
		CatalogFile:      "/custom/words.yaml",
		WordsPerDay:      12,
		RefreshSchedule:  "@daily",
		PlatformSafeWipe: true,
	}

	if err := cm.Save(testConfig); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := cm.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if *loaded != *testConfig {
		t.Errorf("Loaded config %+v does not match saved %+v", loaded, testConfig)
	}
}

func TestConfigManager_PartialFileKeepsDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("log_sql: true\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := NewConfigManagerWithPath(configPath).Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if !config.LogSQL {
		t.Error("Expected log_sql from file")
	}
	if config.WordsPerDay != 5 {
		t.Errorf("Expected default words per day, got %d", config.WordsPerDay)
	}
}

func TestConfigManager_Validation(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr string
	}{
		{
			name:    "zero words per day",
			config:  &Config{WordsPerDay: 0, RefreshSchedule: "@daily"},
			wantErr: "words_per_day must be greater than 0",
		},
		{
			name:    "too many words per day",
			config:  &Config{WordsPerDay: 101, RefreshSchedule: "@daily"},
			wantErr: "cannot exceed 100",
		},
		{
			name:    "bad schedule",
			config:  &Config{WordsPerDay: 5, RefreshSchedule: "every morning"},
			wantErr: "refresh_schedule",
		},
		{
			name:    "two catalogs",
			config:  &Config{WordsPerDay: 5, RefreshSchedule: "@daily", CatalogURL: "http://x", CatalogFile: "y"},
			wantErr: "mutually exclusive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm := NewConfigManagerWithPath(filepath.Join(t.TempDir(), "config.yaml"))
			err := cm.Save(tt.config)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigManager_UpdateAndGet(t *testing.T) {
	cm := NewConfigManagerWithPath(filepath.Join(t.TempDir(), "config.yaml"))

	if err := cm.Update("words-per-day", "8"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := cm.Update("platform-safe-wipe", "true"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	value, err := cm.Get("words-per-day")
	if err != nil || value != "8" {
		t.Errorf("Get(words-per-day) = %q, %v", value, err)
	}
	value, err = cm.Get("platform-safe-wipe")
	if err != nil || value != "true" {
		t.Errorf("Get(platform-safe-wipe) = %q, %v", value, err)
	}
	value, err = cm.Get("db-path")
	if err != nil || value != "[default]" {
		t.Errorf("Get(db-path) = %q, %v", value, err)
	}

	if err := cm.Update("words-per-day", "many"); err == nil {
		t.Error("Expected error for non-integer words-per-day")
	}
	if err := cm.Update("log-sql", "yes"); err == nil {
		t.Error("Expected error for invalid boolean")
	}
	if err := cm.Update("colour", "blue"); err == nil {
		t.Error("Expected error for unknown key")
	}
	if _, err := cm.Get("colour"); err == nil {
		t.Error("Expected error for unknown key")
	}
}

func TestConfigManager_List(t *testing.T) {
	cm := NewConfigManagerWithPath(filepath.Join(t.TempDir(), "config.yaml"))

	values, err := cm.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	for _, key := range Keys() {
		if _, ok := values[key]; !ok {
			t.Errorf("List is missing key %s", key)
		}
	}
}
