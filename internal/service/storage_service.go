package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"quiz_platform_backend/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider abstracts where uploaded files end up so the rest of the
// code never cares whether it is a local directory or an object store.
type StorageProvider interface {
	Save(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

type LocalStorageProvider struct {
	BasePath string
}

func (p *LocalStorageProvider) Save(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	path := filepath.Join(p.BasePath, objectName)
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return "/uploads/" + objectName, nil
}

type MinioStorageProvider struct {
	Client *minio.Client
	Bucket string
}

func (p *MinioStorageProvider) Save(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", p.Client.EndpointURL(), p.Bucket, objectName), nil
}

type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	switch cfg.Storage.Type {
	case "minio":
		client, err := minio.New(cfg.Storage.MinioEndpoint, &minio.Options{
			Creds: credentials.NewStaticV4(cfg.Storage.MinioAccessID, cfg.Storage.MinioSecret, ""),
		})
		if err != nil {
			return nil, err
		}
		return &StorageService{Provider: &MinioStorageProvider{
			Client: client,
			Bucket: cfg.Storage.MinioBucket,
		}}, nil
	default:
		return &StorageService{Provider: &LocalStorageProvider{
			BasePath: cfg.Storage.LocalPath,
		}}, nil
	}
}

// SaveUpload stores the file under a fresh name so uploads never collide
// and returns the public URL.
func (s *StorageService) SaveUpload(ctx context.Context, originalName string, reader io.Reader, size int64, contentType string) (string, error) {
	ext := filepath.Ext(originalName)
	objectName := uuid.New().String() + ext
	return s.Provider.Save(ctx, objectName, reader, size, contentType)
}
