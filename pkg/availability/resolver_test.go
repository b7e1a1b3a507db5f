package availability

import (
	"context"
	"gfd/pkg/common"
	"sync"
	"testing"
	"time"
)

const (
	ubuntuName = "Usuarios Linux - Ubuntu 24.04 LTS (DEB 64bits) - 78 MB"
	ubuntuSum  = "bdc871e15f2096f930b285f0ed799aa0"
	otherSum   = "596c347e409d00388c3c1ee0a72b96c0"
)

// scriptedFetcher returns one snapshot per call, then repeats the last one.
type scriptedFetcher struct {
	mu        sync.Mutex
	snapshots [][]common.Installer
	calls     int
}

func (f *scriptedFetcher) Fetch(ctx context.Context, url string) []common.Installer {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.snapshots) == 0 {
		return nil
	}
	i := f.calls - 1
	if i >= len(f.snapshots) {
		i = len(f.snapshots) - 1
	}
	return f.snapshots[i]
}

func newTestResolver(f Fetcher, attempts int, local []common.CatalogEntry) *Resolver {
	return NewResolver(f, Options{
		URL:        "http://example.invalid/dl.aspx",
		Attempts:   attempts,
		RetryDelay: time.Millisecond,
		Catalog:    local,
	})
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name   string
		local  common.CatalogEntry
		remote common.Installer
		want   bool
	}{
		{"equal checksums", common.CatalogEntry{Name: "X", Checksum: ubuntuSum}, common.Installer{Name: "X", Checksum: ubuntuSum}, true},
		{"equal checksums different case", common.CatalogEntry{Name: "X", Checksum: "BDC871E15F2096F930B285F0ED799AA0"}, common.Installer{Name: "x", Checksum: ubuntuSum}, true},
		{"different checksums", common.CatalogEntry{Name: "X", Checksum: ubuntuSum}, common.Installer{Name: "X", Checksum: otherSum}, false},
		{"both absent", common.CatalogEntry{Name: "X"}, common.Installer{Name: "X"}, true},
		{"local absent remote present", common.CatalogEntry{Name: "X"}, common.Installer{Name: "X", Checksum: ubuntuSum}, false},
		{"local present remote absent", common.CatalogEntry{Name: "X", Checksum: ubuntuSum}, common.Installer{Name: "X"}, false},
		{"name missing remotely", common.CatalogEntry{Name: "X"}, common.Installer{Name: "Y"}, false},
		{"normalized names", common.CatalogEntry{Name: "Instalación  Única"}, common.Installer{Name: " instalacion unica "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile([]common.CatalogEntry{tt.local}, []common.Installer{tt.remote})
			if (len(got) == 1) != tt.want {
				t.Errorf("Expected confirmed=%v, got %v", tt.want, got)
			}
		})
	}
}

func TestReconcileUsesLocalValuesInOrder(t *testing.T) {
	locals := []common.CatalogEntry{
		{Family: common.FamilyUbuntu24, Name: "B Pkg", Checksum: "BDC871E15F2096F930B285F0ED799AA0"},
		{Family: common.FamilyUbuntu24, Name: "A Pkg"},
	}
	remote := []common.Installer{
		{Name: "a pkg"},
		{Name: "b  pkg", Checksum: ubuntuSum},
		{Name: "B PKG", Checksum: otherSum},
	}

	got := Reconcile(locals, remote)
	if len(got) != 2 {
		t.Fatalf("Expected 2 confirmed, got %v", got)
	}
	if got[0].Name != "B Pkg" || got[0].Checksum != ubuntuSum {
		t.Errorf("Expected local display name and lowercased local checksum first, got %v", got[0])
	}
	if got[1].Name != "A Pkg" || got[1].Checksum != "" {
		t.Errorf("Expected A Pkg second, got %v", got[1])
	}
}

func TestResolveUnsupportedFamilyMakesNoRequest(t *testing.T) {
	f := &scriptedFetcher{}
	r := newTestResolver(f, 3, []common.CatalogEntry{{Family: common.FamilyUbuntu24, Name: ubuntuName}})

	res := r.ResolveDetailed(context.Background(), common.FamilyMacOS)
	if len(res.Installers) != 0 || res.Reason != ReasonUnsupportedOS {
		t.Errorf("Expected unsupported, got %+v", res)
	}
	if f.calls != 0 {
		t.Errorf("Expected no fetch, got %d", f.calls)
	}
}

func TestResolveRetriesUpToMaxAttempts(t *testing.T) {
	for _, attempts := range []int{1, 3, 5} {
		f := &scriptedFetcher{}
		r := newTestResolver(f, attempts, []common.CatalogEntry{{Family: common.FamilyDebian, Name: ubuntuName, Checksum: ubuntuSum}})

		res := r.ResolveDetailed(context.Background(), common.FamilyDebian)
		if len(res.Installers) != 0 || res.Reason != ReasonUnavailable {
			t.Errorf("Expected unavailable, got %+v", res)
		}
		if f.calls != attempts {
			t.Errorf("Expected %d attempts, got %d", attempts, f.calls)
		}
	}
}

func TestResolveStopsOnFirstNonEmpty(t *testing.T) {
	f := &scriptedFetcher{snapshots: [][]common.Installer{
		nil,
		{{Name: ubuntuName, Checksum: ubuntuSum}},
		nil,
	}}
	r := newTestResolver(f, 3, []common.CatalogEntry{{Family: common.FamilyUbuntu24, Name: ubuntuName, Checksum: ubuntuSum}})

	got := r.Resolve(context.Background(), common.FamilyUbuntu24)
	if len(got) != 1 || got[0].Name != ubuntuName {
		t.Errorf("Expected the ubuntu installer, got %v", got)
	}
	if f.calls != 2 {
		t.Errorf("Expected 2 attempts, got %d", f.calls)
	}
}

func TestResolveNoConfirmedMatch(t *testing.T) {
	f := &scriptedFetcher{snapshots: [][]common.Installer{{{Name: ubuntuName, Checksum: otherSum}}}}
	r := newTestResolver(f, 3, []common.CatalogEntry{{Family: common.FamilyUbuntu24, Name: ubuntuName, Checksum: ubuntuSum}})

	res := r.ResolveDetailed(context.Background(), common.FamilyUbuntu24)
	if len(res.Installers) != 0 || res.Reason != ReasonNoConfirmedMatch {
		t.Errorf("Expected no confirmed match, got %+v", res)
	}
	if f.calls != 1 {
		t.Errorf("Expected a single attempt, got %d", f.calls)
	}
}

func TestResolveCancelledContext(t *testing.T) {
	f := &scriptedFetcher{}
	r := NewResolver(f, Options{
		Attempts:   3,
		RetryDelay: time.Hour,
		Catalog:    []common.CatalogEntry{{Family: common.FamilyUbuntu24, Name: ubuntuName}},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan Result, 1)
	go func() { done <- r.ResolveDetailed(ctx, common.FamilyUbuntu24) }()

	select {
	case res := <-done:
		if res.Reason != ReasonUnavailable {
			t.Errorf("Expected unavailable, got %+v", res)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Resolver kept waiting after cancellation")
	}
}

func TestResolveDefaultCatalog(t *testing.T) {
	f := &scriptedFetcher{snapshots: [][]common.Installer{{{Name: ubuntuName, Checksum: ubuntuSum}}}}
	r := NewResolver(f, Options{RetryDelay: time.Millisecond})

	for _, family := range []common.OSFamily{common.FamilyUbuntu24, common.FamilyDebian} {
		got := r.Resolve(context.Background(), family)
		if len(got) != 1 || got[0].Checksum != ubuntuSum {
			t.Errorf("Expected %s to be confirmed, got %v", family, got)
		}
	}
}

func TestResolveWaitsBetweenAttempts(t *testing.T) {
	const (
		attempts = 3
		delay    = 20 * time.Millisecond
	)
	f := &scriptedFetcher{}
	r := NewResolver(f, Options{
		Attempts:   attempts,
		RetryDelay: delay,
		Catalog:    []common.CatalogEntry{{Family: common.FamilyUbuntu24, Name: ubuntuName}},
	})

	start := time.Now()
	r.Resolve(context.Background(), common.FamilyUbuntu24)
	elapsed := time.Since(start)

	if f.calls != attempts {
		t.Fatalf("Expected %d attempts, got %d", attempts, f.calls)
	}
	if want := (attempts - 1) * delay; elapsed < want {
		t.Errorf("Expected at least %s between attempts in total, got %s", want, elapsed)
	}
}
