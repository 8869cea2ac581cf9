package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Source serves artifacts from an Amazon S3 bucket.
type S3Source struct {
	Bucket string
	Prefix string

	client *s3.Client
}

var _ Source = (*S3Source)(nil)

// NewS3Source creates an S3 client from the default AWS configuration chain
// (environment, shared config files, instance metadata).
func NewS3Source(ctx context.Context, bucket, prefix string) (*S3Source, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &S3Source{Bucket: bucket, Prefix: prefix, client: s3.NewFromConfig(cfg)}, nil
}

// Fetch streams s3://Bucket/Prefix/key into w.
func (s *S3Source) Fetch(ctx context.Context, key string, w io.Writer) error {
	name := objectKey(s.Prefix, key)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return fmt.Errorf("s3://%s/%s: %w", s.Bucket, name, fs.ErrNotExist)
		}
		return fmt.Errorf("get object s3://%s/%s: %w", s.Bucket, name, err)
	}
	defer out.Body.Close() //nolint:errcheck // read-only object

	if _, err := io.Copy(w, out.Body); err != nil {
		return fmt.Errorf("downloading s3://%s/%s: %w", s.Bucket, name, err)
	}
	return nil
}

// Close is a no-op; the S3 client holds no resources that need releasing.
func (s *S3Source) Close() error { return nil }

func (s *S3Source) String() string {
	return "s3://" + objectKey(s.Bucket, s.Prefix)
}
