package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const defaultConfigDir = ".dayone-migrator/"

//go:embed config/settings.yaml
var defaultSettings string

// Settings represents the YAML configuration structure
type Settings struct {
	ExportDirectory string  `yaml:"export_directory"`
	PhotoDirectory  string  `yaml:"photo_directory"`
	OutputFile      string  `yaml:"output_file"`
	DelaySeconds    float64 `yaml:"delay_seconds"`
}

// Secrets holds the Notion credentials read from secrets.yaml
type Secrets struct {
	NotionToken      string `yaml:"notion_token"`
	NotionDatabaseID string `yaml:"notion_database_id"`
}

// GetConfigPath returns the full path to a config file
func GetConfigPath(filename string) string {
	return filepath.Join(defaultConfigDir, filename)
}

// loadSettings loads settings from YAML file with fallback to defaults
func loadSettings(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		// Return default settings if file doesn't exist
		return &Settings{
			ExportDirectory: "dayone",
			PhotoDirectory:  filepath.Join("dayone", "photos"),
			OutputFile:      "dayone_export.csv",
			DelaySeconds:    1,
		}, nil
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parsing settings YAML: %w", err)
	}

	if settings.DelaySeconds <= 0 {
		settings.DelaySeconds = 1
	}

	return &settings, nil
}

// loadSecrets loads the Notion credentials, failing on any missing piece.
// The run must abort before any processing when credentials are absent.
func loadSecrets(secretsPath string) (*Secrets, error) {
	data, err := os.ReadFile(secretsPath)
	if err != nil {
		return nil, fmt.Errorf("reading secrets file %s: %w", secretsPath, err)
	}

	var secrets Secrets
	if err := yaml.Unmarshal(data, &secrets); err != nil {
		return nil, fmt.Errorf("parsing secrets YAML: %w", err)
	}

	if secrets.NotionToken == "" {
		return nil, fmt.Errorf("secrets file %s: notion_token is empty", secretsPath)
	}
	if secrets.NotionDatabaseID == "" {
		return nil, fmt.Errorf("secrets file %s: notion_database_id is empty", secretsPath)
	}

	return &secrets, nil
}

// ensureConfigExists creates config directory and writes settings.yaml if needed
func ensureConfigExists() error {
	if err := os.MkdirAll(defaultConfigDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write settings.yaml - this should be customized by users
	settingsFile := GetConfigPath("settings.yaml")
	if _, err := os.Stat(settingsFile); os.IsNotExist(err) {
		if err := os.WriteFile(settingsFile, []byte(defaultSettings), 0644); err != nil {
			return fmt.Errorf("writing settings.yaml: %w", err)
		}
	}

	return nil
}
