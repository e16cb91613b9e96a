package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `version: "1"
animals:
  - id: axolotl
    name: Ajolote
    species: Ambystoma mexicanum
    category: amphibians
    price: 35
    care_level: Intermedio
    size: Pequeño
    in_stock: true
    stock_quantity: 10
`

func TestParse_MapsFields(t *testing.T) {
	input, err := Parse([]byte(sample), "test")
	require.NoError(t, err)
	require.Len(t, input.Animals, 1)
	a := input.Animals[0]
	assert.Equal(t, "axolotl", a.ID)
	assert.Equal(t, "35", a.Price)
	assert.Equal(t, "Intermedio", a.CareLevel)
	assert.Equal(t, 10, a.StockQuantity)
	assert.Equal(t, "test", input.Source)
}

func TestParse_RejectsUnknownKeysAndEmpty(t *testing.T) {
	_, err := Parse([]byte("animals:\n  - id: x\n    colour: red\n"), "bad")
	require.Error(t, err)

	_, err = Parse([]byte("version: \"1\"\nanimals: []\n"), "empty")
	require.ErrorIs(t, err, ErrEmptyDocument)

	_, err = Parse(nil, "nil")
	require.ErrorIs(t, err, ErrEmptyDocument)
}

func TestEncode_RoundTrips(t *testing.T) {
	input, err := Parse([]byte(sample), "test")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, input))
	again, err := Decode(&buf, "test")
	require.NoError(t, err)
	assert.Equal(t, input.Animals, again.Animals)
}

func TestEmbeddedSource_LoadsSeed(t *testing.T) {
	input, err := EmbeddedSource{}.Load(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, input.Animals)
	assert.Equal(t, "seed-catalog-v1", input.IdempotencyKey)
	for _, a := range input.Animals {
		_, err := a.ToDomainAnimal()
		assert.NoError(t, err, a.ID)
	}
}

func TestFileSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	src := NewFileSource(path)
	input, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "file://"+path, input.Source)

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.yaml")).Load(context.Background())
	require.Error(t, err)
}

type fakeGetter struct {
	body string
	etag *string
	err  error
	got  *s3.GetObjectInput
}

func (f *fakeGetter) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body)), ETag: f.etag}, nil
}

func TestS3Source_LoadDerivesKeyFromETag(t *testing.T) {
	getter := &fakeGetter{body: sample, etag: aws.String(`"abc123"`)}
	src := NewS3Source(getter, "catalogs", "2024/05/catalog.yaml")

	input, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "catalogs", aws.ToString(getter.got.Bucket))
	assert.Equal(t, "2024/05/catalog.yaml", aws.ToString(getter.got.Key))
	assert.Equal(t, "s3://catalogs/2024/05/catalog.yaml@abc123", input.IdempotencyKey)
	assert.Len(t, input.Animals, 1)
}

func TestS3Source_PropagatesErrors(t *testing.T) {
	boom := errors.New("access denied")
	_, err := NewS3Source(&fakeGetter{err: boom}, "b", "k").Load(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestParseS3URI(t *testing.T) {
	bucket, key, err := ParseS3URI("s3://catalogs/2024/catalog.yaml")
	require.NoError(t, err)
	assert.Equal(t, "catalogs", bucket)
	assert.Equal(t, "2024/catalog.yaml", key)

	_, _, err = ParseS3URI("https://catalogs/x")
	require.Error(t, err)
	_, _, err = ParseS3URI("s3://catalogs")
	require.Error(t, err)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	src, err := Resolve(ctx, "", S3Config{})
	require.NoError(t, err)
	assert.IsType(t, EmbeddedSource{}, src)

	src, err = Resolve(ctx, "file:///srv/catalog.yaml", S3Config{})
	require.NoError(t, err)
	assert.Equal(t, "file:///srv/catalog.yaml", src.Describe())

	src, err = Resolve(ctx, "s3://pets/catalog.yaml", S3Config{Region: "eu-west-1", Endpoint: "http://localhost:9000", PathStyle: true})
	require.NoError(t, err)
	assert.Equal(t, "s3://pets/catalog.yaml", src.Describe())

	_, err = Resolve(ctx, "s3://pets", S3Config{})
	assert.Error(t, err)
}
