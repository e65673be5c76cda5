package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func FileName(id int) string {
	return fmt.Sprintf("pg%d.txt", id)
}

func BuildURL(baseURL string, id int) string {
	return fmt.Sprintf("%s/%d/%s", strings.TrimRight(baseURL, "/"), id, FileName(id))
}

func BuildOutputPath(folder string, id int) string {
	return filepath.Join(folder, FileName(id))
}

// BuildJobs expands the dense range 1..cfg.Files in identifier order.
func BuildJobs(cfg RunConfig) []Job {
	jobs := make([]Job, 0, max(cfg.Files, 0))
	for i := 1; i <= cfg.Files; i++ {
		jobs = append(jobs, Job{
			ID:         i,
			URL:        BuildURL(cfg.BaseURL, i),
			OutputPath: BuildOutputPath(cfg.Folder, i),
		})
	}
	return jobs
}

func EnsureFolder(folder string) error {
	info, err := os.Stat(folder)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", folder)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(folder, 0755); err != nil {
		return fmt.Errorf("error creating folder: %w", err)
	}
	return nil
}
