package handlers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalUploadDir returns the local upload root, UPLOAD_DIR or ./uploads.
func LocalUploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// saveFileLocal writes an upload to the local filesystem under the
// upload root, creating directories as needed.
func saveFileLocal(src io.Reader, storedName string) (string, error) {
	target := filepath.Join(LocalUploadDir(), filepath.FromSlash(storedName))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return fmt.Sprintf("/uploads/%s", storedName), nil
}

func deleteFileLocal(storedName string) error {
	target := filepath.Join(LocalUploadDir(), filepath.FromSlash(storedName))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
