package services

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioService struct {
	Client     *minio.Client
	BucketName string
}

var minioInstance *MinioService

func InitializeMinio(endpoint, accessKey, secretKey, bucket string, useSSL bool) error {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %v", err)
	}

	// Create bucket if it doesn't exist
	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		err = client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %v", err)
		}
		log.Printf("Created bucket: %s", bucket)
	}

	minioInstance = &MinioService{
		Client:     client,
		BucketName: bucket,
	}
	SetBlobStore(minioInstance)

	log.Println("Connected to MinIO successfully")
	return nil
}

func GetMinioService() *MinioService {
	return minioInstance
}

// CheckConnection is used by the health endpoint.
func (m *MinioService) CheckConnection() error {
	if m == nil || m.Client == nil {
		return fmt.Errorf("minio service not initialized")
	}
	_, err := m.Client.BucketExists(context.Background(), m.BucketName)
	return err
}

func (m *MinioService) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := m.Client.PutObject(
		ctx,
		m.BucketName,
		key,
		reader,
		size,
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	return err
}

// Get returns a stream over the object plus its size. A missing key maps to
// ErrBlobNotFound; MinIO only reports it at Stat/Read time, so the object
// is stat'ed before handing the stream out.
func (m *MinioService) Get(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	obj, err := m.Client.GetObject(ctx, m.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, err
	}

	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, 0, ErrBlobNotFound
		}
		return nil, 0, err
	}

	return obj, stat.Size, nil
}

func (m *MinioService) Remove(ctx context.Context, key string) error {
	return m.Client.RemoveObject(ctx, m.BucketName, key, minio.RemoveObjectOptions{})
}
