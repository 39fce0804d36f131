package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/studiomezzo/studio-site-backend/config"
	"github.com/studiomezzo/studio-site-backend/errs"
)

// Object is one stored item as seen by the maintenance tooling.
type Object struct {
	Key  string
	Size int64
}

// ObjectStore is the slice of object storage the backend needs: put an
// image and get back a public URL, enumerate everything, delete one thing.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	List(ctx context.Context) ([]Object, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// S3Store talks to the Supabase storage bucket through its S3-compatible
// endpoint.
type S3Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	logger        zerolog.Logger
}

// NewS3Store builds an S3 client for the bucket configured via environment:
// SUPABASE_S3_ENDPOINT, SUPABASE_S3_REGION, SUPABASE_S3_ACCESS_KEY,
// SUPABASE_S3_SECRET_KEY, STORAGE_BUCKET and SUPABASE_URL (for public URLs).
func NewS3Store(ctx context.Context, cfg map[string]string) (*S3Store, error) {
	endpoint := config.GetString(cfg, "SUPABASE_S3_ENDPOINT", "")
	accessKey := config.GetString(cfg, "SUPABASE_S3_ACCESS_KEY", "")
	secretKey := config.GetString(cfg, "SUPABASE_S3_SECRET_KEY", "")
	bucket := config.GetString(cfg, "STORAGE_BUCKET", "project-images")
	supabaseURL := config.GetString(cfg, "SUPABASE_URL", "")

	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, errs.NewInternalError("object storage credentials are not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(config.GetString(cfg, "SUPABASE_S3_REGION", "eu-central-1")),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		// Supabase storage only answers path-style requests
		o.UsePathStyle = true
	})

	return &S3Store{
		client:        client,
		bucket:        bucket,
		publicBaseURL: fmt.Sprintf("%s/storage/v1/object/public/%s", strings.TrimRight(supabaseURL, "/"), bucket),
		logger:        log.With().Str("component", "s3Store").Logger(),
	}, nil
}

// Upload stores body under key and returns the public URL for it.
func (s *S3Store) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errs.NewStorageError("upload", errs.ErrStorageUpload, err)
	}

	url := s.PublicURL(key)
	s.logger.Info().Str("key", key).Str("url", url).Msg("Uploaded object")
	return url, nil
}

// List walks the whole bucket and returns every object
func (s *S3Store) List(ctx context.Context) ([]Object, error) {
	var objects []Object

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errs.NewStorageError("list", errs.ErrStorageList, err)
		}
		for _, item := range page.Contents {
			objects = append(objects, Object{
				Key:  aws.ToString(item.Key),
				Size: aws.ToInt64(item.Size),
			})
		}
	}

	return objects, nil
}

// Delete removes one object by key
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return errs.NewStorageError("delete", errs.ErrStorageDelete, err)
	}
	return nil
}

// PublicURL returns the public download URL for a stored key.
func (s *S3Store) PublicURL(key string) string {
	return s.publicBaseURL + "/" + key
}
