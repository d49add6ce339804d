package testing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MockLoader serves trade documents from memory, keyed by URI.
type MockLoader struct {
	mu        sync.RWMutex
	documents map[string][]byte
	err       error
	calls     []string
}

// NewMockLoader creates an empty mock loader
func NewMockLoader() *MockLoader {
	return &MockLoader{documents: make(map[string][]byte)}
}

// SetDocument registers the content returned for uri
func (m *MockLoader) SetDocument(uri string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[uri] = content
}

// SetError makes every Open call fail with err
func (m *MockLoader) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns the URIs requested so far
func (m *MockLoader) Calls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.calls...)
}

// Open implements the document loader interface
func (m *MockLoader) Open(_ context.Context, uri string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, uri)
	if m.err != nil {
		return nil, m.err
	}
	content, ok := m.documents[uri]
	if !ok {
		return nil, fmt.Errorf("document %q not found", uri)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}
