package downloader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/net/html/charset"
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URI    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status: %s for %s", e.Status, e.URI)
}

// Immutable
type httpHandler struct {
	client *http.Client
}

func NewHTTPHandler(timeout time.Duration) SchemeHandler {
	return &httpHandler{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (h *httpHandler) Schemes() []string {
	return []string{"http", "https"}
}

func (h *httpHandler) Fetch(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	// Setting this disables the transport's transparent gzip, so both are decoded below.
	req.Header.Set("Accept-Encoding", "zstd, gzip")

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URI: uri, Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := decodeContent(resp.Body, resp.Header.Get("Content-Encoding"))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	utf8Body, err := charset.NewReader(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode charset: %w", err)
	}

	data, err := io.ReadAll(utf8Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	slog.Debug("Fetched document",
		"uri", uri,
		"status", resp.StatusCode,
		"encoding", resp.Header.Get("Content-Encoding"),
		"size", humanize.Bytes(uint64(len(data))),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return data, nil
}

func decodeContent(r io.Reader, encoding string) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return io.NopCloser(r), nil
	case "gzip", "x-gzip":
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("invalid gzip body: %w", err)
		}
		return gr, nil
	case "zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("invalid zstd body: %w", err)
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("unsupported content encoding: %s", encoding)
	}
}
