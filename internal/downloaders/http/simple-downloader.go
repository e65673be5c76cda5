package pghttp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/pgfetch/internal/utils"
)

// StatusError is returned when the server answers outside the 2xx class.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

// SimpleDownloader issues exactly one GET per job and writes the body to the
// job's output path. It never retries.
type SimpleDownloader struct {
	Client utils.HTTPDoer
}

func NewSimpleDownloader(client utils.HTTPDoer) *SimpleDownloader {
	return &SimpleDownloader{Client: client}
}

func (d *SimpleDownloader) Download(ctx context.Context, job utils.Job) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, job.URL, nil)
	if err != nil {
		return fmt.Errorf("error creating GET request: %w", err)
	}
	resp, err := d.Client.Do(req)
	if err != nil {
		return fmt.Errorf("error executing GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can go back to the pool
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}
	log.Debug().Str(utils.LogOpKey, "http/simple-downloader").Int("id", job.ID).Int("status", resp.StatusCode).Int("bytes", len(body)).Msg("response received")
	return writeFile(job.OutputPath, body)
}

func writeFile(path string, data []byte) error {
	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	if _, err := outFile.Write(data); err != nil {
		outFile.Close()
		return fmt.Errorf("error writing to output file: %w", err)
	}
	if err := outFile.Close(); err != nil {
		return fmt.Errorf("error closing output file: %w", err)
	}
	return nil
}
