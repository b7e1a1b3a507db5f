// Package common provides shared types used across the gfd tool.
// It includes the OS family identifiers and the installer records exchanged
// between the catalog, the remote fetcher, the resolver and the presentation layer.
package common

import (
	"fmt"
	"strings"
)

// OSFamily identifies one supported operating system or distribution bucket.
type OSFamily string

const (
	// FamilyMacOS represents macOS/Darwin.
	FamilyMacOS OSFamily = "macos"
	// FamilyWindows represents Microsoft Windows.
	FamilyWindows OSFamily = "windows"
	// FamilyUbuntu24 represents Ubuntu 24.x.
	FamilyUbuntu24 OSFamily = "ubuntu24"
	// FamilyUbuntu22 represents Ubuntu 22.x.
	FamilyUbuntu22 OSFamily = "ubuntu22"
	// FamilyUbuntu20 represents Ubuntu 20.x.
	FamilyUbuntu20 OSFamily = "ubuntu20"
	// FamilyDebian represents Debian 11 or newer.
	FamilyDebian OSFamily = "debian"
	// FamilyArch represents Arch Linux and derivatives.
	FamilyArch OSFamily = "arch"
	// FamilyRPM represents RPM based distributions (Fedora, RHEL, openSUSE...).
	FamilyRPM OSFamily = "rpm"
)

// Families lists every known OS family in a stable order.
var Families = []OSFamily{
	FamilyMacOS,
	FamilyWindows,
	FamilyUbuntu24,
	FamilyUbuntu22,
	FamilyUbuntu20,
	FamilyDebian,
	FamilyArch,
	FamilyRPM,
}

// ParseOSFamily converts a string representation of an OS family into an OSFamily.
func ParseOSFamily(s string) (OSFamily, error) {
	want := OSFamily(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range Families {
		if f == want {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown os family: %s", s)
}

// String returns the string representation of the OSFamily.
func (f OSFamily) String() string {
	return string(f)
}

// Installer is one installer package as advertised locally or remotely.
// Checksum is a lowercase 32 character MD5 hex string, or empty when absent.
// Immutable
type Installer struct {
	Name     string `json:"name"`
	Checksum string `json:"md5,omitempty"`
}

// HasChecksum reports whether a checksum is attached to the installer.
func (i Installer) HasChecksum() bool {
	return i.Checksum != ""
}

// ChecksumOrNA returns the checksum, or "N/A" when absent.
func (i Installer) ChecksumOrNA() string {
	if i.Checksum == "" {
		return "N/A"
	}
	return i.Checksum
}

// Equal reports whether both the name and the checksum match exactly.
func (i Installer) Equal(o Installer) bool {
	return i.Name == o.Name && i.Checksum == o.Checksum
}

// CatalogEntry is a locally-known installer supported for an OS family.
// Immutable
type CatalogEntry struct {
	Family   OSFamily
	Name     string
	Checksum string
}

// Installer returns the entry as an Installer, with the checksum lowercased.
func (e CatalogEntry) Installer() Installer {
	return Installer{Name: e.Name, Checksum: strings.ToLower(e.Checksum)}
}
