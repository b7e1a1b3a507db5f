package downloader

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

func TestHTTPFetch(t *testing.T) {
	content := []byte("<html><body>hello</body></html>")
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(content)
	}))
	defer ts.Close()

	d := NewDefaultDownloader(0)
	got, err := d.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("Content mismatch, got %q", got)
	}
}

func TestHTTPFetchDecodesLatin1(t *testing.T) {
	// "Instalación" in ISO-8859-1
	latin1 := []byte("Instalaci\xf3n")
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.Write(latin1)
	}))
	defer ts.Close()

	got, err := NewDefaultDownloader(0).Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(got) != "Instalación" {
		t.Errorf("Expected UTF-8 decoded body, got %q", got)
	}
}

func TestHTTPFetchCompressed(t *testing.T) {
	content := "<select id=\"x\"><option>A</option></select>"

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	gw.Write([]byte(content))
	gw.Close()

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	zs := enc.EncodeAll([]byte(content), nil)
	enc.Close()

	tests := []struct {
		encoding string
		body     []byte
	}{
		{"gzip", gz.Bytes()},
		{"zstd", zs},
		{"", []byte(content)},
	}

	for _, tt := range tests {
		t.Run("encoding="+tt.encoding, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !strings.Contains(r.Header.Get("Accept-Encoding"), "zstd") {
					t.Errorf("Expected zstd to be accepted, got %q", r.Header.Get("Accept-Encoding"))
				}
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				if tt.encoding != "" {
					w.Header().Set("Content-Encoding", tt.encoding)
				}
				w.Write(tt.body)
			}))
			defer ts.Close()

			got, err := NewDefaultDownloader(0).Fetch(context.Background(), ts.URL)
			if err != nil {
				t.Fatalf("Fetch failed: %v", err)
			}
			if string(got) != content {
				t.Errorf("Expected %q, got %q", content, got)
			}
		})
	}
}

func TestHTTPBadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := NewDefaultDownloader(0).Fetch(context.Background(), ts.URL)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("Expected StatusError, got %v", err)
	}
	if se.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", se.Code)
	}
}

func TestHTTPTimeout(t *testing.T) {
	done := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()
	defer close(done)

	_, err := NewDefaultDownloader(50*time.Millisecond).Fetch(context.Background(), ts.URL)
	if err == nil {
		t.Fatal("Expected timeout error")
	}
}

func TestFileFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte("<html>local</html>"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := NewDefaultDownloader(0).Fetch(context.Background(), "file://"+path)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(got) != "<html>local</html>" {
		t.Errorf("Content mismatch, got %q", got)
	}
}

func TestUnsupportedScheme(t *testing.T) {
	_, err := NewDefaultDownloader(0).Fetch(context.Background(), "ftp://example.com")
	if err == nil || !strings.Contains(err.Error(), "unsupported scheme") {
		t.Errorf("Expected unsupported scheme error, got: %v", err)
	}
}
