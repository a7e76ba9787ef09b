package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"cloud.google.com/go/storage"
)

var (
	gcsClient     *storage.Client
	gcsClientOnce sync.Once
	gcsClientErr  error
)

func gcsBucket() string {
	if b := os.Getenv("GCS_BUCKET"); b != "" {
		return b
	}
	return "launchpad-uploads"
}

func getGCSClient(ctx context.Context) (*storage.Client, error) {
	gcsClientOnce.Do(func() {
		gcsClient, gcsClientErr = storage.NewClient(ctx)
	})
	return gcsClient, gcsClientErr
}

// saveFileGCS streams an upload into the configured bucket and returns
// the public object URL.
func saveFileGCS(ctx context.Context, src io.Reader, storedName, contentType string) (string, error) {
	client, err := getGCSClient(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create GCS client: %w", err)
	}

	bucket := gcsBucket()
	obj := client.Bucket(bucket).Object(storedName)
	writer := obj.NewWriter(ctx)
	if contentType != "" {
		writer.ContentType = contentType
	}

	if _, err := io.Copy(writer, src); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, storedName), nil
}

func deleteFileGCS(ctx context.Context, storedName string) error {
	client, err := getGCSClient(ctx)
	if err != nil {
		return err
	}
	err = client.Bucket(gcsBucket()).Object(storedName).Delete(ctx)
	if err == storage.ErrObjectNotExist {
		return nil
	}
	return err
}
