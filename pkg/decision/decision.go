// Package decision classifies the installed state against the confirmed
// available installers.
package decision

import (
	"gfd/pkg/availability"
	"gfd/pkg/common"
)

// Outcome is the result of a reconciliation.
type Outcome int

const (
	// UnsupportedOrUnavailable means no installer could be confirmed.
	UnsupportedOrUnavailable Outcome = iota
	// NotInstalled means installers are available and nothing is installed.
	NotInstalled
	// UpToDate means the installed package is one of the available installers.
	UpToDate
	// UpdateAvailable means something is installed but it is not among the available installers.
	UpdateAvailable
)

func (o Outcome) String() string {
	switch o {
	case UnsupportedOrUnavailable:
		return "UNSUPPORTED_OR_UNAVAILABLE"
	case NotInstalled:
		return "NOT_INSTALLED"
	case UpToDate:
		return "UP_TO_DATE"
	case UpdateAvailable:
		return "UPDATE_AVAILABLE"
	default:
		return "UNKNOWN"
	}
}

// Reason refines an UnsupportedOrUnavailable outcome.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonUnknownOS        Reason = "unknown-os"
	ReasonUnsupportedOS    Reason = "unsupported-os"
	ReasonUnavailable      Reason = "unavailable"
	ReasonNoConfirmedMatch Reason = "no-confirmed-match"
)

// FromAvailability maps a resolver reason onto a report reason.
func FromAvailability(r availability.Reason) Reason {
	switch r {
	case availability.ReasonUnsupportedOS:
		return ReasonUnsupportedOS
	case availability.ReasonUnavailable:
		return ReasonUnavailable
	case availability.ReasonNoConfirmedMatch:
		return ReasonNoConfirmedMatch
	default:
		return ReasonNone
	}
}

// Report is everything the presentation layer needs for one reconciliation.
// Installed and Recommended are nil when absent.
// Immutable
type Report struct {
	Family      common.OSFamily
	Installed   *common.Installer
	Available   []common.Installer
	Recommended *common.Installer
	Outcome     Outcome
	Reason      Reason
}

// Classify is the decision table. It performs no I/O.
func Classify(installed *common.Installer, available []common.Installer) Outcome {
	if len(available) == 0 {
		return UnsupportedOrUnavailable
	}
	if installed == nil {
		return NotInstalled
	}
	for _, a := range available {
		if installed.Equal(a) {
			return UpToDate
		}
	}
	return UpdateAvailable
}

// Decide builds the report for family from already-computed values.
func Decide(family common.OSFamily, installed *common.Installer, res availability.Result) *Report {
	r := &Report{
		Family:    family,
		Installed: installed,
		Available: res.Installers,
		Outcome:   Classify(installed, res.Installers),
	}
	if len(res.Installers) > 0 {
		rec := res.Installers[0]
		r.Recommended = &rec
	} else {
		r.Reason = FromAvailability(res.Reason)
		if r.Reason == ReasonNone {
			r.Reason = ReasonUnavailable
		}
	}
	return r
}

// UnknownOS is the report used when the OS family could not be detected.
func UnknownOS(installed *common.Installer) *Report {
	return &Report{
		Installed: installed,
		Outcome:   UnsupportedOrUnavailable,
		Reason:    ReasonUnknownOS,
	}
}
