package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/kri-sh27/s3transcribe/internal/shared"
)

// S3Options carries the connection settings for the S3-compatible
// backend. BaseEndpoint is optional and only needed for non-AWS
// backends such as MinIO.
type S3Options struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BaseEndpoint    string
}

type S3Store struct {
	client *s3.Client
}

func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKeyID,
			opts.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		}
	})

	return &S3Store{client: client}, nil
}

func (s *S3Store) List(ctx context.Context, bucket string) ([]string, error) {

	var keys []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Join(shared.ErrTransfer, err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}

	return keys, nil
}

func (s *S3Store) Download(ctx context.Context, bucket, key, dest string) error {

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NoSuchKey
		if errors.As(err, &notFound) {
			return shared.ErrNotFound
		}
		return errors.Join(shared.ErrTransfer, err)
	}
	defer out.Body.Close()

	f, err := os.Create(dest)
	if err != nil {
		return errors.Join(shared.ErrTransfer, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, out.Body); err != nil {
		return errors.Join(shared.ErrTransfer, err)
	}

	return nil
}

func (s *S3Store) Upload(ctx context.Context, bucket, localPath, key string) (string, error) {

	if key == "" {
		key = MakeKey(CategoryRecordings, "", localPath, time.Now())
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", errors.Join(shared.ErrTransfer, err)
	}
	defer f.Close()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return "", errors.Join(shared.ErrTransfer, err)
	}

	return key, nil
}
