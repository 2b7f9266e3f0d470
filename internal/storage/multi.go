package storage

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/i474232898/weather-pollution-etl/internal/weather"
)

// MultiSink writes the same file to several sinks. Every sink is attempted;
// failures are collected into one error.
type MultiSink struct {
	sinks []weather.Sink
}

var _ weather.Sink = (*MultiSink)(nil)

func NewMultiSink(sinks ...weather.Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Put returns the locations that succeeded, comma separated.
func (m *MultiSink) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	var (
		paths  []string
		result *multierror.Error
	)
	for _, s := range m.sinks {
		p, err := s.Put(ctx, name, bytes.NewReader(data))
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		paths = append(paths, p)
	}
	return strings.Join(paths, ", "), result.ErrorOrNil()
}

// Close closes every sink that holds resources.
func (m *MultiSink) Close() error {
	var result *multierror.Error
	for _, s := range m.sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}
	return result.ErrorOrNil()
}
