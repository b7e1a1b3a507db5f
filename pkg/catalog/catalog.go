// Package catalog holds the compiled-in list of installers this build
// supports, keyed by OS family.
package catalog

import "gfd/pkg/common"

// Supported is the local catalog. The first entry declared for a family is
// the recommended installer for it.
var Supported = []common.CatalogEntry{
	{
		Family:   common.FamilyUbuntu24,
		Name:     "Usuarios Linux - Ubuntu 24.04 LTS (DEB 64bits) - 78 MB",
		Checksum: "bdc871e15f2096f930b285f0ed799aa0",
	},
	{
		Family:   common.FamilyDebian,
		Name:     "Usuarios Linux - Ubuntu 24.04 LTS (DEB 64bits) - 78 MB",
		Checksum: "bdc871e15f2096f930b285f0ed799aa0",
	},
}

// ForFamily returns the entries of entries declared for family, in declaration order.
func ForFamily(entries []common.CatalogEntry, family common.OSFamily) []common.CatalogEntry {
	var out []common.CatalogEntry
	for _, e := range entries {
		if e.Family == family {
			out = append(out, e)
		}
	}
	return out
}
