package utils

import (
	"context"
	"errors"
)

// Downloader fetches a single job to its output path.
type Downloader interface {
	Download(ctx context.Context, job Job) error
}

// Job is one identifier of the range together with its source and destination.
type Job struct {
	ID         int
	URL        string
	OutputPath string
}

// RunConfig holds the parameters of one run.
type RunConfig struct {
	Folder  string
	Files   int
	Threads int
	BaseURL string
}

func (c RunConfig) Validate() error {
	var errs []error
	if c.Folder == "" {
		errs = append(errs, errors.New("--folder must not be empty"))
	}
	if c.Files < 0 {
		errs = append(errs, errors.New("--files must be a non-negative integer"))
	}
	if c.Threads < 1 {
		errs = append(errs, errors.New("--threads must be a positive integer"))
	}
	if c.BaseURL == "" {
		errs = append(errs, errors.New("base URL must not be empty"))
	}
	return errors.Join(errs...)
}
