package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// FileLoader opens documents from the local filesystem.
type FileLoader struct{}

// Open implements Loader. A file:// prefix is accepted and stripped.
func (FileLoader) Open(_ context.Context, uri string) (io.ReadCloser, error) {
	path := strings.TrimPrefix(uri, "file://")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trade document: %w", err)
	}
	return f, nil
}
