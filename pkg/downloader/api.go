// Package downloader provides a modular system for retrieving remote documents.
// It supports multiple schemes (HTTP, HTTPS, local files) and always returns
// the body decoded to UTF-8.
package downloader

import (
	"context"
)

// Downloader retrieves documents from various URIs.
type Downloader interface {
	// Fetch retrieves the document at the specified URI.
	// Non-2xx statuses are reported as *StatusError.
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// SchemeHandler defines the interface for handling specific URI schemes (e.g., "http://").
type SchemeHandler interface {
	// Fetch executes the retrieval for a URI supported by this handler.
	Fetch(ctx context.Context, uri string) ([]byte, error)
	// Schemes returns the list of URI schemes (e.g., ["http", "https"]) this handler can process.
	Schemes() []string
}
