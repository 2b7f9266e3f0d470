// Package storage holds the destinations the final dataset is written to.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/i474232898/weather-pollution-etl/internal/weather"
)

// LocalSink writes files into a directory on the local file system.
type LocalSink struct {
	dir string
}

var _ weather.Sink = (*LocalSink)(nil)

// NewLocalSink returns a sink rooted at dir. The directory is created on
// the first write.
func NewLocalSink(dir string) *LocalSink {
	return &LocalSink{dir: dir}
}

// Put writes r to dir/name and returns the file path.
func (s *LocalSink) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory '%s': %w", s.dir, err)
	}

	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file '%s': %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write data to file '%s': %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file '%s': %w", path, err)
	}
	return path, nil
}
