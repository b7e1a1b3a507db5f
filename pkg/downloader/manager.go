package downloader

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a single HTTP request.
const DefaultTimeout = 8 * time.Second

// Mutable
type manager struct {
	handlers map[string]SchemeHandler
}

// NewDefaultDownloader returns a Downloader handling http, https and file URIs.
// A zero timeout selects DefaultTimeout.
func NewDefaultDownloader(timeout time.Duration) Downloader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	m := &manager{
		handlers: make(map[string]SchemeHandler),
	}
	m.Register(NewHTTPHandler(timeout))
	m.Register(NewFileHandler())
	return m
}

func (m *manager) Register(h SchemeHandler) {
	for _, scheme := range h.Schemes() {
		m.handlers[scheme] = h
	}
}

func (m *manager) Fetch(ctx context.Context, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid uri: %w", err)
	}

	scheme := strings.ToLower(u.Scheme)
	handler, ok := m.handlers[scheme]
	if !ok {
		return nil, fmt.Errorf("unsupported scheme: %s", scheme)
	}

	return handler.Fetch(ctx, uri)
}
