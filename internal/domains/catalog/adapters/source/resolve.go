package source

import (
	"context"
	"strings"

	"github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
)

// Resolve picks a source from a location: empty means the embedded seed, s3://bucket/key
// an object store, anything else a local path.
func Resolve(ctx context.Context, location string, s3cfg S3Config) (ports.Source, error) {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return EmbeddedSource{}, nil
	case strings.HasPrefix(location, "s3://"):
		bucket, key, err := ParseS3URI(location)
		if err != nil {
			return nil, err
		}
		client, err := NewS3Client(ctx, s3cfg)
		if err != nil {
			return nil, err
		}
		return NewS3Source(client, bucket, key), nil
	default:
		return NewFileSource(strings.TrimPrefix(location, "file://")), nil
	}
}
