package storage

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"kml2gpx/internal/logging"
)

// GPXContentType is set on stored GPX objects.
const GPXContentType = "application/gpx+xml"

// S3Service is a client for S3-compatible storage holding KML uploads and
// the GPX documents converted from them.
type S3Service struct {
	client *minio.Client
}

// NewS3Service initializes and returns a new S3 storage service.
// It connects to the MinIO server using credentials from environment variables.
func NewS3Service() (*S3Service, error) {
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if minioEndpoint == "" || minioAccessKey == "" || minioSecretKey == "" {
		return nil, errors.New("missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}

	minioClient, err := minio.New(minioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(minioAccessKey, minioSecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MinIO client")
	}

	logging.Logger.Infow("connected to MinIO", "endpoint", minioEndpoint)
	return &S3Service{client: minioClient}, nil
}

// CreateBucket makes bucketName unless it already exists.
func (s *S3Service) CreateBucket(ctx context.Context, bucketName string, location string) error {
	exists, err := s.client.BucketExists(ctx, bucketName)
	if err != nil {
		return errors.Wrap(err, "error checking bucket existence")
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
}

// GetObject reads a whole object, typically an uploaded KML file.
func (s *S3Service) GetObject(ctx context.Context, bucketName, objectKey string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get %s/%s", bucketName, objectKey)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s/%s", bucketName, objectKey)
	}
	logging.Logger.Debugw("fetched object", "bucket", bucketName, "key", objectKey, "bytes", len(data))
	return data, nil
}

// PutGPX stores a converted document, replacing any previous conversion.
func (s *S3Service) PutGPX(ctx context.Context, bucketName, objectKey string, data []byte) error {
	_, err := s.client.PutObject(
		ctx,
		bucketName,
		objectKey,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: GPXContentType},
	)
	if err != nil {
		return errors.Wrapf(err, "failed to store %s/%s", bucketName, objectKey)
	}
	logging.Logger.Infow("stored gpx", "bucket", bucketName, "key", objectKey)
	return nil
}
