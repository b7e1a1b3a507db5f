// Package status runs one reconciliation request: detect the OS family,
// resolve the confirmed installers, read the installed state and classify.
package status

import (
	"context"
	"fmt"
	"gfd/pkg/availability"
	"gfd/pkg/common"
	"gfd/pkg/decision"
	"gfd/pkg/installed"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Detector reports the OS family of the host, or false if unrecognized.
type Detector interface {
	Detect(ctx context.Context) (common.OSFamily, bool)
}

// Resolver confirms the installers available for a family.
type Resolver interface {
	ResolveDetailed(ctx context.Context, family common.OSFamily) availability.Result
}

// Checker produces decision reports. Concurrent checks for the same family
// share a single fetch.
type Checker struct {
	detector  Detector
	resolver  Resolver
	installed installed.Source
	inflight  singleflight.Group
}

// NewChecker creates a Checker from its collaborators.
func NewChecker(d Detector, r Resolver, src installed.Source) *Checker {
	if src == nil {
		src = installed.None{}
	}
	return &Checker{detector: d, resolver: r, installed: src}
}

// Check detects the OS family of the host and reports on it.
func (c *Checker) Check(ctx context.Context) (*decision.Report, error) {
	family, ok := c.detector.Detect(ctx)
	if !ok {
		inst, err := c.installed.Current(ctx)
		if err != nil {
			return nil, err
		}
		slog.Info("Operating system not recognized")
		return decision.UnknownOS(inst), nil
	}
	return c.CheckFamily(ctx, family)
}

// SharedCheckTimeout bounds a check shared between concurrent callers.
var SharedCheckTimeout = 2 * time.Minute

// CheckFamily reports on the given OS family.
// The shared check is detached from the cancellation of whichever caller
// started it; each caller stops waiting when its own ctx is done.
func (c *Checker) CheckFamily(ctx context.Context, family common.OSFamily) (*decision.Report, error) {
	ch := c.inflight.DoChan(string(family), func() (any, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), SharedCheckTimeout)
		defer cancel()
		return c.check(sctx, family)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			slog.Debug("Joined in-flight check", "family", family)
		}
		return res.Val.(*decision.Report), nil
	}
}

func (c *Checker) check(ctx context.Context, family common.OSFamily) (*decision.Report, error) {
	log := slog.With("run", uuid.NewString(), "family", family)
	start := time.Now()
	log.Info("Checking installer status")

	var (
		inst *common.Installer
		res  availability.Result
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		inst, err = c.installed.Current(gctx)
		if err != nil {
			return fmt.Errorf("reading installed state: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		res = c.resolver.ResolveDetailed(gctx, family)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := decision.Decide(family, inst, res)
	log.Info("Check complete",
		"outcome", report.Outcome,
		"available", len(report.Available),
		"reason", report.Reason,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return report, nil
}
