// Package sfd fetches and parses the list of digital signature installers
// published on the Soporte Firma Digital download page.
//
// Installer names come from the page's <select> control, while MD5 checksums
// are only present inside inline JavaScript, so both are extracted
// independently and then joined by normalized name.
package sfd

import (
	"bytes"
	"context"
	"gfd/pkg/common"
	"gfd/pkg/downloader"
	"gfd/pkg/textnorm"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultURL is the vendor download page.
const DefaultURL = "https://soportefirmadigital.com/sfdj/dl.aspx"

// SelectID is the element id of the installer drop-down on the vendor page.
const SelectID = "ctl00_certContents_ddlInstaladores"

// checksumPattern pairs a quoted option text literal with the next MD5 token,
// tolerating anything (including newlines) in between.
var checksumPattern = regexp.MustCompile(`(?s)text\s*==\s*(?:'([^']+)'|"([^"]+)").*?MD5\s*[:=]\s*([A-Za-z0-9]+)`)

var md5Pattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// Fetcher retrieves the remote installer list.
// Immutable
type Fetcher struct {
	dl downloader.Downloader
}

// NewFetcher creates a Fetcher on top of the given downloader.
func NewFetcher(dl downloader.Downloader) *Fetcher {
	return &Fetcher{dl: dl}
}

// Fetch downloads the page at url and returns the installers it advertises.
// Any transport failure, non-2xx status or missing control yields an empty
// result; errors are logged, never returned.
func (f *Fetcher) Fetch(ctx context.Context, url string) []common.Installer {
	body, err := f.dl.Fetch(ctx, url)
	if err != nil {
		slog.Warn("Failed to fetch installer page", "url", url, "error", err)
		return nil
	}
	installers := Parse(body)
	slog.Debug("Parsed installer page", "url", url, "installers", len(installers))
	return installers
}

// Parse extracts the installers from the raw page body.
func Parse(body []byte) []common.Installer {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		slog.Warn("Failed to parse installer page", "error", err)
		return nil
	}

	labels := OptionLabels(doc)
	if len(labels) == 0 {
		return nil
	}

	sums := ExtractChecksums(string(body))
	keys := candidateKeys(sums)

	results := make([]common.Installer, 0, len(labels))
	for _, label := range labels {
		results = append(results, common.Installer{
			Name:     label,
			Checksum: lookupChecksum(textnorm.Normalize(label), sums, keys),
		})
	}
	return results
}

// OptionLabels returns the trimmed option texts of the installer drop-down,
// in document order.
func OptionLabels(doc *goquery.Document) []string {
	var labels []string
	doc.Find("#" + SelectID + " option").Each(func(i int, s *goquery.Selection) {
		labels = append(labels, strings.TrimSpace(s.Text()))
	})
	return labels
}

// ExtractChecksums scans text for name/MD5 pairings and returns a map from
// normalized name to lowercase checksum. Tokens that are not exactly 32 hex
// characters are ignored; the first valid pairing for a name wins.
func ExtractChecksums(text string) map[string]string {
	sums := make(map[string]string)
	for _, m := range checksumPattern.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		sum := strings.ToLower(m[3])
		if !md5Pattern.MatchString(sum) {
			continue
		}
		key := textnorm.Normalize(name)
		if _, seen := sums[key]; seen || key == "" {
			continue
		}
		sums[key] = sum
	}
	return sums
}

// candidateKeys orders the fuzzy match candidates: longest first, then
// lexicographically.
func candidateKeys(sums map[string]string) []string {
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// lookupChecksum finds the checksum for a normalized label, first by exact
// key and then by containment in either direction. Returns "" when nothing matches.
func lookupChecksum(label string, sums map[string]string, keys []string) string {
	if sum, ok := sums[label]; ok {
		return sum
	}
	if label == "" {
		return ""
	}
	for _, k := range keys {
		if strings.Contains(label, k) || strings.Contains(k, label) {
			return sums[k]
		}
	}
	return ""
}
