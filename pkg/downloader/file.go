package downloader

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"

	"golang.org/x/net/html/charset"
)

// fileHandler reads saved copies of a page, e.g. file:///tmp/dl.aspx.html.
// Immutable
type fileHandler struct{}

func NewFileHandler() SchemeHandler {
	return &fileHandler{}
}

func (h *fileHandler) Schemes() []string {
	return []string{"file"}
}

func (h *fileHandler) Fetch(ctx context.Context, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid uri: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(u.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// No Content-Type here; the charset is sniffed from the document itself.
	r, err := charset.NewReader(f, "")
	if err != nil {
		return nil, fmt.Errorf("failed to decode charset: %w", err)
	}
	return io.ReadAll(r)
}
