package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type OSSConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	Prefix     string
	PublicBase string
}

// OSSStorage stores objects in an Aliyun OSS bucket.
type OSSStorage struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string
	PublicBase string
}

func NewOSSStorage(cfg OSSConfig) (*OSSStorage, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}
	client, err := oss.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, errors.Wrap(err, "oss.New")
	}
	bkt, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "client.Bucket")
	}

	if loc, err := client.GetBucketLocation(cfg.Bucket); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			zap.L().Warn("oss: skip location check", zap.String("bucket", cfg.Bucket))
		} else {
			return nil, errors.Wrap(err, "verify bucket")
		}
	} else {
		zap.L().Info("oss bucket ready", zap.String("bucket", cfg.Bucket), zap.String("location", loc))
	}

	return &OSSStorage{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   cfg.Endpoint,
		BucketName: cfg.Bucket,
		Prefix:     strings.Trim(cfg.Prefix, "/"),
		PublicBase: cfg.PublicBase,
	}, nil
}

func (s *OSSStorage) objectKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.Prefix == "" {
		return key
	}
	return s.Prefix + "/" + key
}

func (s *OSSStorage) Put(ctx context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	full := s.objectKey(key)
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(full, r, opts...); err != nil {
		return "", errors.Wrap(err, "oss put object")
	}
	return s.PublicURL(full), nil
}

func (s *OSSStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	body, err := s.Bucket.GetObject(s.objectKey(key), oss.WithContext(ctx))
	if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 404 {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "oss get object")
	}
	return body, nil
}

func (s *OSSStorage) Delete(ctx context.Context, key string) error {
	return s.Bucket.DeleteObject(s.objectKey(key), oss.WithContext(ctx))
}

func (s *OSSStorage) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if base := strings.TrimSpace(s.PublicBase); base != "" {
		return strings.TrimRight(base, "/") + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}
