// Package filestorage keeps each run's files on the local filesystem: the
// uploaded input table and the two generated output tables. Files live under
// a per-run subdirectory named by the run ID, so the storage root can be
// wiped without affecting a running process.
package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ayushgpt/facalloc/internal/pkg/logger"
)

// Canonical file names inside a run directory.
const (
	InputFileName  = "input.csv"
	ResultFileName = "output_btp_mtp_allocation.csv"
	TallyFileName  = "fac_preference_count.csv"
)

// LocalStorage handles saving run files to the local filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath,
// creating the directory if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// SaveInput copies the uploaded input table into the run's directory and
// returns its path on disk.
func (ls *LocalStorage) SaveInput(runID string, r io.Reader) (string, error) {
	dir, err := ls.runDir(runID)
	if err != nil {
		return "", err
	}

	dstPath := filepath.Join(dir, InputFileName)
	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, r); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("saved_as", dstPath).Msg("Upload saved")
	return dstPath, nil
}

// WriteOutput stores one generated output table under the run's directory and
// returns its path on disk.
func (ls *LocalStorage) WriteOutput(runID, name string, content []byte) (string, error) {
	dir, err := ls.runDir(runID)
	if err != nil {
		return "", err
	}

	dstPath := filepath.Join(dir, name)
	if err := os.WriteFile(dstPath, content, 0o644); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write output file")
		return "", fmt.Errorf("failed to write output file: %w", err)
	}

	logger.Info().Str("path", dstPath).Int("bytes", len(content)).Msg("Output file written")
	return dstPath, nil
}

// OutputPath returns the on-disk path of a run file without checking that it
// exists.
func (ls *LocalStorage) OutputPath(runID, name string) string {
	return filepath.Join(ls.basePath, runID, name)
}

// DeleteRun removes a run's directory and everything in it. Deleting a run
// that was never stored is not an error.
func (ls *LocalStorage) DeleteRun(runID string) error {
	if runID == "" {
		return nil
	}
	dir := filepath.Join(ls.basePath, runID)
	if err := os.RemoveAll(dir); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to delete run directory")
		return fmt.Errorf("failed to delete run directory: %w", err)
	}
	return nil
}

func (ls *LocalStorage) runDir(runID string) (string, error) {
	if runID == "" {
		return "", fmt.Errorf("run ID is required")
	}
	dir := filepath.Join(ls.basePath, runID)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create run directory")
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}
	return dir, nil
}
