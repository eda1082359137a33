package managers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// StorageMgr is an interface that outlines the contract for profile-image storage.
// Images are stored under an opaque filename and served back by the API.
type StorageMgr interface {
	Save(ctx context.Context, filename, contentType string, data []byte) error
	Open(ctx context.Context, filename string) ([]byte, string, error)
	Remove(ctx context.Context, filename string) error
}

// DiskStorageManager stores images on the local filesystem under a configured directory.
type DiskStorageManager struct {
	dir string
}

// NewDiskStorageManager creates the upload directory if needed and returns a disk-backed StorageMgr.
func NewDiskStorageManager(dir string) (StorageMgr, error) {
	if dir == "" {
		dir = "uploads"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	log.Info("Initialized disk storage manager with directory ", dir)
	return &DiskStorageManager{dir: dir}, nil
}

// Save writes the image bytes to the upload directory.
func (sm *DiskStorageManager) Save(_ context.Context, filename, _ string, data []byte) error {
	return os.WriteFile(filepath.Join(sm.dir, filepath.Base(filename)), data, 0o644)
}

// Open reads the image bytes back. The content type is not tracked on disk
// and is inferred from the file extension instead.
func (sm *DiskStorageManager) Open(_ context.Context, filename string) ([]byte, string, error) {
	data, err := os.ReadFile(filepath.Join(sm.dir, filepath.Base(filename)))
	if err != nil {
		return nil, "", err
	}

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}

// Remove deletes the image file. Removing a missing file is not an error.
func (sm *DiskStorageManager) Remove(_ context.Context, filename string) error {
	err := os.Remove(filepath.Join(sm.dir, filepath.Base(filename)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MinioStorageManager stores images in a MinIO bucket.
type MinioStorageManager struct {
	client *minio.Client
	bucket string
}

// NewMinioStorageManager connects to MinIO with the given credentials and ensures the bucket exists.
func NewMinioStorageManager(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (StorageMgr, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	log.Info("Initialized minio storage manager with bucket ", bucket)
	return &MinioStorageManager{client: client, bucket: bucket}, nil
}

// Save uploads the image bytes under the given object key.
func (sm *MinioStorageManager) Save(ctx context.Context, filename, contentType string, data []byte) error {
	_, err := sm.client.PutObject(ctx, sm.bucket, filename, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// Open retrieves the image bytes and their content type.
func (sm *MinioStorageManager) Open(ctx context.Context, filename string) ([]byte, string, error) {
	obj, err := sm.client.GetObject(ctx, sm.bucket, filename, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", err
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		return nil, "", err
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, "", err
	}
	return data, info.ContentType, nil
}

// Remove deletes the object from the bucket.
func (sm *MinioStorageManager) Remove(ctx context.Context, filename string) error {
	return sm.client.RemoveObject(ctx, sm.bucket, filename, minio.RemoveObjectOptions{})
}

// NewStorageManagerFromEnv picks the storage backend based on STORAGE_BACKEND:
// "minio" selects the MinIO backend, anything else falls back to disk.
func NewStorageManagerFromEnv(ctx context.Context) (StorageMgr, error) {
	if os.Getenv("STORAGE_BACKEND") == "minio" {
		return NewMinioStorageManager(ctx,
			os.Getenv("MINIO_ENDPOINT"),
			os.Getenv("MINIO_ACCESS_KEY"),
			os.Getenv("MINIO_SECRET_KEY"),
			os.Getenv("MINIO_BUCKET"),
			os.Getenv("MINIO_USE_SSL") == "true",
		)
	}

	return NewDiskStorageManager(os.Getenv("UPLOAD_DIR"))
}
