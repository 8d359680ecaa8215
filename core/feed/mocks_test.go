package feed

import (
	"io"
	"sync"

	"github.com/mmcdole/gofeed"
)

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	debugFunc func(msg string, fields map[string]interface{})
	infoFunc  func(msg string, fields map[string]interface{})
	warnFunc  func(msg string, fields map[string]interface{})
	errorFunc func(msg string, fields map[string]interface{})
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {
	if m.debugFunc != nil {
		m.debugFunc(msg, fields)
	}
}

func (m *mockLogger) Info(msg string, fields map[string]interface{}) {
	if m.infoFunc != nil {
		m.infoFunc(msg, fields)
	}
}

func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	if m.warnFunc != nil {
		m.warnFunc(msg, fields)
	}
}

func (m *mockLogger) Error(msg string, fields map[string]interface{}) {
	if m.errorFunc != nil {
		m.errorFunc(msg, fields)
	}
}

// countingDecoder records every body it is handed
type countingDecoder struct {
	mu     sync.Mutex
	bodies []string
	decode func(body []byte) (*gofeed.Feed, error)
}

func (d *countingDecoder) Decode(r io.Reader) (*gofeed.Feed, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.bodies = append(d.bodies, string(body))
	d.mu.Unlock()
	return d.decode(body)
}

func (d *countingDecoder) calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.bodies)
}
