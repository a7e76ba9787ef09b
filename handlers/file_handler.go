package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// useGCS reports whether uploads should go to Google Cloud Storage.
// Cloud Run sets K_SERVICE; local development falls back to disk.
func useGCS() bool {
	return os.Getenv("USE_GCS") == "true" ||
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" ||
		os.Getenv("K_SERVICE") != ""
}

// storedFileName builds a collision-free object name under prefix,
// keeping the original extension so downloads open correctly.
func storedFileName(prefix, original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%s/%s-%s-%s%s", prefix, time.Now().Format("20060102-150405"), uuid.New().String()[:8], base, ext)
}

// SaveUploadedFile stores an uploaded file and returns its public URL
// and the stored object name (for later deletion).
func SaveUploadedFile(ctx context.Context, file multipart.File, header *multipart.FileHeader, prefix string) (url string, storedName string, err error) {
	storedName = storedFileName(prefix, header.Filename)
	if useGCS() {
		url, err = saveFileGCS(ctx, file, storedName, header.Header.Get("Content-Type"))
	} else {
		url, err = saveFileLocal(file, storedName)
	}
	return url, storedName, err
}

// DeleteStoredFile removes a previously stored upload.
func DeleteStoredFile(ctx context.Context, storedName string) error {
	if useGCS() {
		return deleteFileGCS(ctx, storedName)
	}
	return deleteFileLocal(storedName)
}

// UploadFileHandler accepts a standalone multipart upload and returns
// the stored file's URL.
func UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	prefix := r.FormValue("prefix")
	if prefix == "" {
		prefix = "uploads"
	}

	url, storedName, err := SaveUploadedFile(r.Context(), file, header, prefix)
	if err != nil {
		http.Error(w, "failed to save file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"url":      url,
		"filename": storedName,
	})
}
