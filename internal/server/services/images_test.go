package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/ragvault/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func s3TestConfig() *sc.Config {
	return &sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "ragvault",
		PresignExpiry:  10 * time.Minute,
	}
}

// stubS3 swaps the AWS constructors for fakes and restores them on cleanup.
func stubS3(t *testing.T) *string {
	t.Helper()
	origLoad, origNewS3, origNewPre := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient
	origPut, origGet := presignPutObject, presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		presignGetObject = origGet
	})

	var baseEndpoint string
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				return aws.Config{}, err
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		baseEndpoint = aws.ToString(opts.BaseEndpoint)
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
	return &baseEndpoint
}

func TestNewS3ImageStore(t *testing.T) {
	endpoint := stubS3(t)

	store, err := NewS3ImageStore(context.Background(), s3TestConfig())
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000", *endpoint)
	assert.Equal(t, "ragvault", store.bucket)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}
	_, err = NewS3ImageStore(context.Background(), s3TestConfig())
	assert.EqualError(t, err, "load-fail")
}

func TestS3ImageStore_PresignPut(t *testing.T) {
	stubS3(t)
	store, err := NewS3ImageStore(context.Background(), s3TestConfig())
	require.NoError(t, err)
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	var gotIn *s3.PutObjectInput
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotIn = in
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		assert.Equal(t, 10*time.Minute, po.Expires)
		return &v4.PresignedHTTPRequest{URL: "http://s3/put"}, nil
	}

	url, expires, err := store.PresignPut(context.Background(), "items/i1/a.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "http://s3/put", url)
	assert.Equal(t, fixed.Add(10*time.Minute), expires)
	assert.Equal(t, "ragvault", aws.ToString(gotIn.Bucket))
	assert.Equal(t, "items/i1/a.jpg", aws.ToString(gotIn.Key))
	assert.Equal(t, "image/jpeg", aws.ToString(gotIn.ContentType))

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-put-fail")
	}
	_, _, err = store.PresignPut(context.Background(), "k", "")
	assert.EqualError(t, err, "presign-put-fail")
}

func TestS3ImageStore_PresignGet(t *testing.T) {
	stubS3(t)
	store, err := NewS3ImageStore(context.Background(), s3TestConfig())
	require.NoError(t, err)

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "http://s3/get/" + aws.ToString(in.Key)}, nil
	}
	url, err := store.PresignGet(context.Background(), "items/i1/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "http://s3/get/items/i1/a.jpg", url)

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-get-fail")
	}
	_, err = store.PresignGet(context.Background(), "k")
	assert.EqualError(t, err, "presign-get-fail")
}

func TestNewImageKey(t *testing.T) {
	key, err := NewImageKey("i1", "IMAGE/PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "items/i1/"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)

	other, err := NewImageKey("i1", "image/png")
	require.NoError(t, err)
	assert.NotEqual(t, key, other)

	_, err = NewImageKey("i1", "application/pdf")
	assert.ErrorContains(t, err, "unsupported image type")
}
