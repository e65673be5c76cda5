// Package report writes a YAML record of a finished run.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/tanq16/pgfetch/internal/scheduler"
	"github.com/tanq16/pgfetch/internal/utils"
	"gopkg.in/yaml.v3"
)

type Report struct {
	RunID          string    `yaml:"run_id"`
	StartedAt      time.Time `yaml:"started_at"`
	BaseURL        string    `yaml:"base_url"`
	Folder         string    `yaml:"folder"`
	Files          int       `yaml:"files"`
	Threads        int       `yaml:"threads"`
	Succeeded      int       `yaml:"succeeded"`
	Failed         int       `yaml:"failed"`
	ElapsedSeconds float64   `yaml:"elapsed_seconds"`
}

func New(cfg utils.RunConfig, result scheduler.Result, startedAt time.Time) Report {
	return Report{
		RunID:          uuid.New().String(),
		StartedAt:      startedAt.UTC().Truncate(time.Second),
		BaseURL:        cfg.BaseURL,
		Folder:         cfg.Folder,
		Files:          result.Files,
		Threads:        result.Threads,
		Succeeded:      result.Succeeded,
		Failed:         result.Failed,
		ElapsedSeconds: result.Elapsed.Seconds(),
	}
}

func Write(path string, r Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("error encoding report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating report folder: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return nil
}
