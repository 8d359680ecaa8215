package discovery

import (
	"context"
	"io"
	"strings"
	"sync"

	"feeder-resolver/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	fetchFunc func(ctx context.Context, url string, opts ...interfaces.FetchOption) (interfaces.Response, error)
}

func (m *mockHTTPClient) Fetch(ctx context.Context, url string, opts ...interfaces.FetchOption) (interfaces.Response, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url, opts...)
	}
	return nil, nil
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
	headers    map[string]string
	requestURL string

	mu     sync.Mutex
	closed int
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	if m.headers != nil {
		return m.headers[key]
	}
	return ""
}

func (m *mockResponse) RequestURL() string {
	return m.requestURL
}

func (m *mockResponse) Close() error {
	m.mu.Lock()
	m.closed++
	m.mu.Unlock()
	return nil
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	warnFunc func(msg string, fields map[string]interface{})
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}

func (m *mockLogger) Info(msg string, fields map[string]interface{}) {}

func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	if m.warnFunc != nil {
		m.warnFunc(msg, fields)
	}
}

func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
