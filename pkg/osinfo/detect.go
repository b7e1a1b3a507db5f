// Package osinfo maps the running system onto one of the supported OS families.
package osinfo

import (
	"context"
	"gfd/pkg/common"
	"log/slog"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// PlatformFunc reports the distribution id, its family and version, as
// host.PlatformInformationWithContext does.
type PlatformFunc func(ctx context.Context) (platform, family, version string, err error)

var rpmPlatforms = map[string]bool{
	"fedora":    true,
	"rhel":      true,
	"redhat":    true,
	"centos":    true,
	"rocky":     true,
	"alma":      true,
	"almalinux": true,
	"opensuse":  true,
}

var leadingNumber = regexp.MustCompile(`\d+`)

// Detector detects the OS family of a host.
// Immutable
type Detector struct {
	goos     string
	platform PlatformFunc
}

// NewDetector returns a Detector for the running host.
func NewDetector() *Detector {
	return &Detector{goos: runtime.GOOS, platform: host.PlatformInformationWithContext}
}

// NewDetectorWith returns a Detector with explicit inputs.
func NewDetectorWith(goos string, platform PlatformFunc) *Detector {
	return &Detector{goos: goos, platform: platform}
}

// Detect returns the OS family, or false when the system is not recognized.
func (d *Detector) Detect(ctx context.Context) (common.OSFamily, bool) {
	switch d.goos {
	case "darwin":
		return common.FamilyMacOS, true
	case "windows":
		return common.FamilyWindows, true
	case "linux":
	default:
		return "", false
	}

	platform, family, version, err := d.platform(ctx)
	if err != nil {
		slog.Warn("Failed to read platform information", "error", err)
		return "", false
	}
	platform = strings.ToLower(platform)
	family = strings.ToLower(family)
	slog.Debug("Detected platform", "platform", platform, "family", family, "version", version)

	return Classify(platform, family, version)
}

// Classify maps a Linux platform id, family and version onto an OS family.
func Classify(platform, family, version string) (common.OSFamily, bool) {
	switch {
	case platform == "ubuntu":
		switch {
		case strings.HasPrefix(version, "24"):
			return common.FamilyUbuntu24, true
		case strings.HasPrefix(version, "22"):
			return common.FamilyUbuntu22, true
		case strings.HasPrefix(version, "20"):
			return common.FamilyUbuntu20, true
		}
	case platform == "debian":
		// Debian 11 or newer
		if majorVersion(version) >= 11 {
			return common.FamilyDebian, true
		}
	case strings.Contains(platform, "arch") || family == "arch":
		return common.FamilyArch, true
	case rpmPlatforms[platform] || family == "rhel" || family == "fedora" || family == "suse":
		return common.FamilyRPM, true
	}
	return "", false
}

func majorVersion(version string) int {
	m := leadingNumber.FindString(version)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}
