// Package aws uploads fleet reports to S3.
package aws

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3API is a minimal interface for the S3 calls we need.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader writes report objects to S3.
type S3Uploader struct {
	client s3API
}

// NewS3Uploader creates an uploader using the default AWS SDK config chain.
// An empty region defers to AWS_REGION / the shared config.
func NewS3Uploader(ctx context.Context, region string) (*S3Uploader, error) {
	cfg, err := loadConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return &S3Uploader{client: s3.NewFromConfig(cfg)}, nil
}

// Upload stores body as s3://bucket/key.
func (u *S3Uploader) Upload(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:        sdkaws.String(bucket),
		Key:           sdkaws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: sdkaws.Int64(int64(len(body))),
	}
	if contentType != "" {
		input.ContentType = sdkaws.String(contentType)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("uploading s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// ParseS3URL splits "s3://bucket/key" into bucket and key. ok is false when
// s is not an S3 URL or lacks a bucket or key.
func ParseS3URL(s string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(s, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", false
	}
	return bucket, key, true
}
