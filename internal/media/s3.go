package media

import (
	"bytes"
	"context"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// S3Storage writes images to an S3 compatible bucket.
type S3Storage struct {
	cfg    S3Config
	client *minio.Client
}

func NewS3Storage(cfg S3Config) (*S3Storage, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://")
	cl, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "minio client")
	}
	return &S3Storage{cfg: cfg, client: cl}, nil
}

func (s *S3Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return errors.Wrapf(err, "bucket %q exists", s.cfg.Bucket)
	}
	if exists {
		return nil
	}
	return errors.Wrapf(s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{}), "make bucket %q", s.cfg.Bucket)
}

func (s *S3Storage) Put(ctx context.Context, key, contentType string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	return errors.Wrapf(err, "put %q", key)
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	return errors.Wrapf(s.client.RemoveObject(ctx, s.cfg.Bucket, key, minio.RemoveObjectOptions{}), "remove %q", key)
}
