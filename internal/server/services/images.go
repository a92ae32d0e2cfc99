package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/ragvault/internal/server/config"
	"github.com/google/uuid"
)

// ImageStore hands out presigned URLs for item images. Image bytes never pass
// through the server.
type ImageStore interface {
	PresignPut(ctx context.Context, key, contentType string) (url string, expiresAt time.Time, err error)
	PresignGet(ctx context.Context, key string) (string, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// S3ImageStore presigns requests against an S3-compatible bucket (MinIO in
// development).
type S3ImageStore struct {
	client *s3.PresignClient
	bucket string
	expiry time.Duration
	now    func() time.Time
}

// NewS3ImageStore builds the presign client once from cfg.
func NewS3ImageStore(ctx context.Context, cfg *sc.Config) (*S3ImageStore, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3ImageStore{
		client: newS3PresignClient(client),
		bucket: cfg.S3Bucket,
		expiry: cfg.PresignExpiry,
		now:    time.Now,
	}, nil
}

func (s *S3ImageStore) PresignPut(ctx context.Context, key, contentType string) (string, time.Time, error) {
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	expiresAt := s.now().Add(s.expiry)
	req, err := presignPutObject(s.client, ctx, in, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", time.Time{}, err
	}
	return req.URL, expiresAt, nil
}

func (s *S3ImageStore) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := presignGetObject(s.client, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// NewImageKey returns a fresh object key for an item image of the given
// content type.
func NewImageKey(itemID, contentType string) (string, error) {
	ext, ok := imageExtensions[strings.ToLower(contentType)]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", contentType)
	}
	return path.Join("items", itemID, uuid.NewString()+ext), nil
}
