// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/tomtom215/eventlens/internal/config"
)

// S3Getter reads objects from Amazon S3 or an S3-compatible store.
// Credentials come from the AWS default chain: environment, shared config
// files, then instance or container metadata.
type S3Getter struct {
	client *s3.Client
}

// NewS3Getter builds an S3 client for the configured region. A custom
// endpoint selects an S3-compatible store such as MinIO.
func NewS3Getter(ctx context.Context, cfg config.S3Config) (*S3Getter, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return &S3Getter{client: client}, nil
}

// GetObject implements ObjectGetter. Missing keys and buckets wrap
// ErrObjectNotFound. GetObject only models NoSuchKey, so the check goes by
// API error code.
func (g *S3Getter) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	out, err := g.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFoundCode(err) {
			return nil, fmt.Errorf("%w: s3://%s/%s", ErrObjectNotFound, bucket, key)
		}
		return nil, err
	}
	return out.Body, nil
}

func isNotFoundCode(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return true
	}
	return false
}
