package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
	"github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
)

var _ ports.Source = (*S3Source)(nil)

// ObjectGetter is the slice of the S3 client the source needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config holds explicit client parameters. Credentials come from the default AWS chain.
type S3Config struct {
	Region    string
	Endpoint  string // optional; enables S3-compatible stores such as MinIO
	PathStyle bool
}

// NewS3Client builds an S3 client from the default AWS configuration.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// S3Source reads a catalog document from an object store.
type S3Source struct {
	client ObjectGetter
	bucket string
	key    string
}

func NewS3Source(client ObjectGetter, bucket, key string) *S3Source {
	return &S3Source{client: client, bucket: bucket, key: key}
}

// ParseS3URI splits s3://bucket/key.
func ParseS3URI(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("not an s3 uri: %q", raw)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("s3 uri needs bucket and key: %q", raw)
	}
	return u.Host, key, nil
}

func (s *S3Source) Load(ctx context.Context) (catalogtypes.ImportCatalogInput, error) {
	if s == nil || s.client == nil {
		return catalogtypes.ImportCatalogInput{}, fmt.Errorf("s3 catalog source not configured")
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &s.key})
	if err != nil {
		return catalogtypes.ImportCatalogInput{}, fmt.Errorf("get %s: %w", s.Describe(), err)
	}
	defer func() { _ = out.Body.Close() }()
	input, err := Decode(out.Body, s.Describe())
	if err != nil {
		return catalogtypes.ImportCatalogInput{}, err
	}
	if input.IdempotencyKey == "" && out.ETag != nil {
		input.IdempotencyKey = s.Describe() + "@" + strings.Trim(*out.ETag, `"`)
	}
	return input, nil
}

func (s *S3Source) Describe() string { return "s3://" + s.bucket + "/" + s.key }
