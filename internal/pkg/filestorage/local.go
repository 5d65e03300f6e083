package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/campusworks/studenttrack/internal/pkg/apperrors"
	"github.com/campusworks/studenttrack/internal/pkg/logger"
)

// LocalStorage stores blobs as files under a single base directory.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage instance, ensuring basePath exists.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{basePath: basePath}, nil
}

// Store writes r to a uniquely named file and returns its locator. Only the
// extension of suggestedName survives into the stored name, so colliding
// uploads never overwrite each other.
func (ls *LocalStorage) Store(r io.Reader, suggestedName string) (string, error) {
	ext := filepath.Ext(suggestedName)
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(ls.basePath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, r); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", suggestedName).Str("locator", uniqueFilename).Msg("File stored")
	return uniqueFilename, nil
}

// Retrieve reads the blob behind a locator.
func (ls *LocalStorage) Retrieve(locator string) ([]byte, error) {
	physicalPath, err := ls.resolve(locator)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(physicalPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("locator", locator).Msg("Blob missing from storage")
			return nil, apperrors.ErrBlobMissing
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

// Remove deletes the blob behind a locator. An already-absent blob is treated
// as a successful removal.
func (ls *LocalStorage) Remove(locator string) error {
	physicalPath, err := ls.resolve(locator)
	if err != nil {
		return err
	}

	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physicalPath).Msg("Blob to remove does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to remove blob")
		return fmt.Errorf("failed to remove blob: %w", err)
	}

	return nil
}

// resolve maps a locator to a path inside basePath. Only the base name of the
// locator is used, so a crafted locator cannot escape the storage directory.
func (ls *LocalStorage) resolve(locator string) (string, error) {
	filename := filepath.Base(locator)
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return "", fmt.Errorf("invalid locator: %q", locator)
	}
	return filepath.Join(ls.basePath, filename), nil
}
