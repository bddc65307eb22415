package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Snapshot copies the vocabulary file into an archive directory next to it,
// named with a timestamp, and returns the path of the copy
func Snapshot(path string) (string, error) {
	// Check if the vocabulary file exists
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("vocabulary file does not exist: %s", path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat vocabulary file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("vocabulary path is a directory: %s", path)
	}

	// Create archive directory if it doesn't exist
	archiveDir := filepath.Join(filepath.Dir(path), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	ext := filepath.Ext(path)
	name := strings.TrimSuffix(filepath.Base(path), ext)

	now := time.Now()
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", name, now.Format("20060102-150405"), ext))

	// Check if archive already exists (two runs within the same second)
	if _, err := os.Stat(archivePath); err == nil {
		// Add microseconds to make it unique
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s%s", name, now.Format("20060102-150405.000000"), ext))
	}

	if err := copyFile(path, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive vocabulary file: %w", err)
	}

	return archivePath, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
