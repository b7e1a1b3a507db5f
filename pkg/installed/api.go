// Package installed reports which digital signature installer, if any, is
// currently installed on the host.
package installed

import (
	"context"
	"gfd/pkg/common"
)

// Source reports the installed installer. A nil Installer means nothing is installed.
type Source interface {
	Current(ctx context.Context) (*common.Installer, error)
}

// Recorder remembers the installer a routine has just installed.
type Recorder interface {
	Record(ctx context.Context, inst common.Installer) error
}

// None is a Source that never finds an installation.
type None struct{}

func (None) Current(ctx context.Context) (*common.Installer, error) {
	return nil, nil
}
