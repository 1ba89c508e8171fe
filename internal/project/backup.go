package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/ShaperCut/internal/model"
)

const backupVersion = "1.1.0"

// BackupData bundles everything ShaperCut keeps on disk: preferences, the
// bit inventory and the saved jobs.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Inventory model.Inventory `json:"inventory"`
	Jobs      []model.Job     `json:"jobs,omitempty"`
}

// ExportAllData writes config, inv and every job saved in jobsDir to a
// single JSON file at exportPath.
func ExportAllData(exportPath string, config model.AppConfig, inv model.Inventory, jobsDir string) error {
	paths, err := ListJobs(jobsDir)
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}
	backup := BackupData{
		Version:   backupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Inventory: inv,
	}
	for _, p := range paths {
		job, _, err := LoadJob(p)
		if err != nil {
			return err
		}
		backup.Jobs = append(backup.Jobs, job)
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(exportPath), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads and validates a backup file. Nothing is written;
// see RestoreAllData.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	backup := BackupData{Config: model.DefaultAppConfig()}
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if err := backup.Config.Validate(); err != nil {
		return BackupData{}, fmt.Errorf("invalid backup config: %w", err)
	}
	for i, job := range backup.Jobs {
		if job.ID == "" {
			return BackupData{}, fmt.Errorf("invalid backup file: job %d has no id", i+1)
		}
	}
	if backup.Config.RecentJobs == nil {
		backup.Config.RecentJobs = []string{}
	}
	return backup, nil
}

// RestoreAllData writes a backup back to disk. Jobs are saved in jobsDir
// as <id>.json, replacing saved jobs with the same id.
func RestoreAllData(backup BackupData, configPath, inventoryPath, jobsDir string) error {
	if err := SaveAppConfig(configPath, backup.Config); err != nil {
		return fmt.Errorf("failed to restore config: %w", err)
	}
	if err := SaveInventory(inventoryPath, backup.Inventory); err != nil {
		return fmt.Errorf("failed to restore inventory: %w", err)
	}
	for _, job := range backup.Jobs {
		if err := SaveJob(filepath.Join(jobsDir, job.ID+".json"), job); err != nil {
			return fmt.Errorf("failed to restore job %s: %w", job.Name, err)
		}
	}
	return nil
}
