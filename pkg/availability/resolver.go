// Package availability reconciles the local installer catalog against the
// installers currently published on the vendor page.
//
// An installer is confirmed only when its normalized name is present remotely
// and its checksum agrees: both absent, or both present and equal.
package availability

import (
	"context"
	"errors"
	"gfd/pkg/catalog"
	"gfd/pkg/common"
	"gfd/pkg/textnorm"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultAttempts is the total number of fetch attempts, including the first one.
	DefaultAttempts = 3
	// DefaultRetryDelay is the fixed pause between two attempts.
	DefaultRetryDelay = 2 * time.Second
)

// Reason tells why a resolution produced no confirmed installers.
type Reason int

const (
	// ReasonNone means at least one installer was confirmed.
	ReasonNone Reason = iota
	// ReasonUnsupportedOS means the catalog has no entry for the family; no request was made.
	ReasonUnsupportedOS
	// ReasonUnavailable means every fetch attempt came back empty.
	ReasonUnavailable
	// ReasonNoConfirmedMatch means the page was read but nothing matched name and checksum.
	ReasonNoConfirmedMatch
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonUnsupportedOS:
		return "unsupported-os"
	case ReasonUnavailable:
		return "unavailable"
	case ReasonNoConfirmedMatch:
		return "no-confirmed-match"
	default:
		return "unknown"
	}
}

// Fetcher returns the remote snapshot; empty means nothing could be read.
type Fetcher interface {
	Fetch(ctx context.Context, url string) []common.Installer
}

// Options configures a Resolver.
type Options struct {
	URL        string
	Attempts   int
	RetryDelay time.Duration
	// Catalog overrides catalog.Supported when non-nil.
	Catalog []common.CatalogEntry
}

// Result is the detailed outcome of a resolution.
type Result struct {
	Installers []common.Installer
	Reason     Reason
}

// Resolver confirms which local catalog entries are currently published.
// Immutable
type Resolver struct {
	fetcher Fetcher
	opts    Options
}

var errEmptySnapshot = errors.New("empty installer snapshot")

// NewResolver creates a Resolver. Zero option values select the defaults.
func NewResolver(f Fetcher, opts Options) *Resolver {
	if opts.Attempts <= 0 {
		opts.Attempts = DefaultAttempts
	}
	if opts.RetryDelay < 0 {
		opts.RetryDelay = 0
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Supported
	}
	return &Resolver{fetcher: f, opts: opts}
}

// Resolve returns the confirmed installers for family, in catalog declaration
// order. An empty result covers unsupported, unavailable and unmatched alike.
func (r *Resolver) Resolve(ctx context.Context, family common.OSFamily) []common.Installer {
	return r.ResolveDetailed(ctx, family).Installers
}

// ResolveDetailed is Resolve with the reason for an empty result.
func (r *Resolver) ResolveDetailed(ctx context.Context, family common.OSFamily) Result {
	locals := catalog.ForFamily(r.opts.Catalog, family)
	if len(locals) == 0 {
		slog.Debug("No catalog entries for family", "family", family)
		return Result{Reason: ReasonUnsupportedOS}
	}

	remote := r.fetch(ctx)
	if len(remote) == 0 {
		return Result{Reason: ReasonUnavailable}
	}

	confirmed := Reconcile(locals, remote)
	if len(confirmed) == 0 {
		return Result{Reason: ReasonNoConfirmedMatch}
	}
	return Result{Installers: confirmed, Reason: ReasonNone}
}

// fetch retries the fetcher with a constant delay until it returns a
// non-empty snapshot or the attempts are exhausted.
func (r *Resolver) fetch(ctx context.Context) []common.Installer {
	var snapshot []common.Installer
	attempt := 0

	op := func() error {
		attempt++
		snapshot = r.fetcher.Fetch(ctx, r.opts.URL)
		if len(snapshot) == 0 {
			return errEmptySnapshot
		}
		return nil
	}
	notify := func(err error, wait time.Duration) {
		slog.Warn("Installer list empty, retrying",
			"attempt", attempt, "max_attempts", r.opts.Attempts, "retry_delay", wait)
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(r.opts.RetryDelay), uint64(r.opts.Attempts-1)),
		ctx)
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		slog.Warn("Installer list unavailable", "url", r.opts.URL, "attempts", attempt, "error", err)
		return nil
	}
	return snapshot
}

// Reconcile returns the local entries confirmed by the remote snapshot, using
// the local display name and checksum, in local order.
func Reconcile(locals []common.CatalogEntry, remote []common.Installer) []common.Installer {
	remoteSums := make(map[string]string, len(remote))
	for _, inst := range remote {
		key := textnorm.Normalize(inst.Name)
		if _, seen := remoteSums[key]; seen {
			continue
		}
		remoteSums[key] = inst.Checksum
	}

	var confirmed []common.Installer
	for _, local := range locals {
		want := local.Installer()
		remoteSum, found := remoteSums[textnorm.Normalize(local.Name)]
		if !found {
			continue
		}
		if strings.ToLower(remoteSum) != want.Checksum {
			continue
		}
		confirmed = append(confirmed, want)
	}
	return confirmed
}
