package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"

	"github.com/i474232898/weather-pollution-etl/internal/weather"
)

// GCSSink uploads files to a Google Cloud Storage bucket.
type GCSSink struct {
	client *gcs.Client
	bucket string
	prefix string
}

var _ weather.Sink = (*GCSSink)(nil)

// NewGCSSink creates a client using application default credentials.
func NewGCSSink(ctx context.Context, bucket, prefix string) (*GCSSink, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &GCSSink{client: client, bucket: bucket, prefix: prefix}, nil
}

// Put uploads r as prefix/name and returns its gs:// URI.
func (s *GCSSink) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	object := path.Join(s.prefix, name)

	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = "text/csv"
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload gs://%s/%s: %w", s.bucket, object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize gs://%s/%s: %w", s.bucket, object, err)
	}
	return fmt.Sprintf("gs://%s/%s", s.bucket, object), nil
}

func (s *GCSSink) Close() error {
	return s.client.Close()
}
