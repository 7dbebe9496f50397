package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var (
	exportDir   string
	outputFile  string
	photoDir    string
	secretsFile string
	createDelay time.Duration
	debugMode   bool
)

var debugEnabled bool

// SetDebugMode enables or disables debug logging
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

func debugLog(format string, args ...any) {
	if debugEnabled {
		log.Printf("[DEBUG] "+format, args...)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dayone-migrator",
	Short: "Migrate Day One journal exports to CSV or Notion",
	Long:  `A tool for converting Day One JSON exports into a CSV file or a Notion database, attached photos included.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		SetDebugMode(debugMode)
	},
}

var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Convert export files to a CSV file",
	Run: func(cmd *cobra.Command, args []string) {
		settings := mustLoadSettings()

		dir := exportDir
		if dir == "" {
			dir = settings.ExportDirectory
		}
		output := outputFile
		if output == "" {
			output = settings.OutputFile
		}

		entries, _, err := ReadExportDir(dir)
		if err != nil {
			log.Fatalf("Reading export directory failed: %v", err)
		}

		if err := WriteCSV(entries, output); err != nil {
			log.Fatalf("Writing CSV failed: %v", err)
		}
	},
}

var notionCmd = &cobra.Command{
	Use:   "notion",
	Short: "Migrate export files into a Notion database",
	Run: func(cmd *cobra.Command, args []string) {
		settings := mustLoadSettings()

		dir := exportDir
		if dir == "" {
			dir = settings.ExportDirectory
		}
		photos := photoDir
		if photos == "" {
			photos = settings.PhotoDirectory
		}
		if photos == "" {
			photos = filepath.Join(dir, "photos")
		}

		// Credentials are validated before any files are touched
		secretsPath := secretsFile
		if secretsPath == "" {
			secretsPath = GetConfigPath("secrets.yaml")
		}
		secrets, err := loadSecrets(secretsPath)
		if err != nil {
			log.Fatalf("Notion credentials required: %v", err)
		}

		delay := createDelay
		if delay == 0 {
			delay = time.Duration(settings.DelaySeconds * float64(time.Second))
		}

		entries, _, err := ReadExportDir(dir)
		if err != nil {
			log.Fatalf("Reading export directory failed: %v", err)
		}

		client := NewNotionClient(secrets.NotionToken)
		processor := NewEntryProcessor(client, secrets.NotionDatabaseID, photos, delay)
		results := processor.ProcessEntries(entries)

		created, skipped, failed := Summarize(results)
		log.Printf("Done: %d created, %d skipped, %d failed", created, skipped, failed)
	},
}

// mustLoadSettings scaffolds the config directory and loads settings
func mustLoadSettings() *Settings {
	if err := ensureConfigExists(); err != nil {
		log.Fatalf("Failed to prepare config directory: %v", err)
	}

	settings, err := loadSettings(GetConfigPath("settings.yaml"))
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	return settings
}

func init() {
	rootCmd.PersistentFlags().StringVar(&exportDir, "dir", "", "Directory containing Day One JSON export files")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	csvCmd.Flags().StringVar(&outputFile, "output", "", "Path of the CSV file to write")

	notionCmd.Flags().StringVar(&photoDir, "photos", "", "Directory containing exported photo files")
	notionCmd.Flags().StringVar(&secretsFile, "secrets", "", "Path to the Notion secrets file")
	notionCmd.Flags().DurationVar(&createDelay, "delay", 0, "Delay between page creations")

	rootCmd.AddCommand(csvCmd, notionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
