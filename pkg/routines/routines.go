// Package routines holds the per-OS installation routines.
//
// Routines are simulated: they report the steps they would perform and
// record the installer as installed, they do not touch the system.
package routines

import (
	"context"
	"fmt"
	"gfd/pkg/common"
	"gfd/pkg/display"
	"gfd/pkg/installed"
	"log/slog"
)

// Routine installs inst on the host.
type Routine func(ctx context.Context, disp display.Display, inst common.Installer) error

// Supported maps each OS family to its installation routine.
var Supported = map[common.OSFamily]Routine{
	common.FamilyUbuntu24: installUbuntu24,
	common.FamilyDebian:   installDebian,
}

func installUbuntu24(ctx context.Context, disp display.Display, inst common.Installer) error {
	disp.Print("Running Ubuntu 24.04 (DEB) installation routine...\n")
	disp.Log(fmt.Sprintf("package: %s (MD5: %s)", inst.Name, inst.ChecksumOrNA()))
	return nil
}

func installDebian(ctx context.Context, disp display.Display, inst common.Installer) error {
	disp.Print("Running Debian installation routine (using Ubuntu 24 package)...\n")
	disp.Log(fmt.Sprintf("package: %s (MD5: %s)", inst.Name, inst.ChecksumOrNA()))
	return nil
}

// Runner dispatches to the routine registered for an OS family.
// Immutable
type Runner struct {
	routines map[common.OSFamily]Routine
	disp     display.Display
	recorder installed.Recorder
}

// NewRunner creates a Runner. recorder may be nil.
func NewRunner(routines map[common.OSFamily]Routine, disp display.Display, recorder installed.Recorder) *Runner {
	return &Runner{routines: routines, disp: disp, recorder: recorder}
}

// Has reports whether family has a routine.
func (r *Runner) Has(family common.OSFamily) bool {
	_, ok := r.routines[family]
	return ok
}

// Run executes the routine for family. It returns false when there is none.
func (r *Runner) Run(ctx context.Context, family common.OSFamily, inst common.Installer) (bool, error) {
	routine, ok := r.routines[family]
	if !ok {
		slog.Debug("No installation routine", "family", family)
		return false, nil
	}

	slog.Info("Running installation routine", "family", family, "installer", inst.Name)
	if err := routine(ctx, r.disp, inst); err != nil {
		return true, fmt.Errorf("installation routine for %s failed: %w", family, err)
	}

	if r.recorder != nil {
		if err := r.recorder.Record(ctx, inst); err != nil {
			return true, err
		}
	}
	return true, nil
}
