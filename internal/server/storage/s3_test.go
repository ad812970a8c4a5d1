package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testS3Config() S3Config {
	return S3Config{
		RootUser:     "admin",
		RootPassword: "secret",
		Bucket:       "sauces",
		Region:       "us-east-1",
		BaseEndpoint: "http://127.0.0.1:9000/",
	}
}

func TestStorageKey_Shape(t *testing.T) {
	key := storageKey("Fiery.JPG")

	assert.True(t, strings.HasPrefix(key, "sauces/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"), "extension should be preserved lowercased, got %q", key)
	assert.NotEqual(t, storageKey("Fiery.JPG"), key, "keys must be unique per call")
}

func TestS3Store_URL_ConfigLoadError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no creds")
	}

	s := NewS3Store(testS3Config())
	_, err := s.URL(context.Background(), "sauces/2026/8/28/key.png")
	require.Error(t, err)
}

func TestS3Store_URL_Presigned(t *testing.T) {
	origPresign := presignGetObject
	t.Cleanup(func() { presignGetObject = origPresign })

	var gotBucket, gotKey string
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotBucket = *in.Bucket
		gotKey = *in.Key
		return &v4.PresignedHTTPRequest{URL: "http://signed.example/obj"}, nil
	}

	s := NewS3Store(testS3Config())
	url, err := s.URL(context.Background(), "sauces/2026/8/28/key.png")
	require.NoError(t, err)

	assert.Equal(t, "http://signed.example/obj", url)
	assert.Equal(t, "sauces", gotBucket)
	assert.Equal(t, "sauces/2026/8/28/key.png", gotKey)
}

func TestS3Store_URL_PresignError(t *testing.T) {
	origPresign := presignGetObject
	t.Cleanup(func() { presignGetObject = origPresign })

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign failed")
	}

	s := NewS3Store(testS3Config())
	_, err := s.URL(context.Background(), "key")
	require.Error(t, err)
}
