package decision

import (
	"gfd/pkg/availability"
	"gfd/pkg/common"
	"testing"
)

var ubuntu = common.Installer{Name: "Ubuntu24", Checksum: "bdc871e15f2096f930b285f0ed799aa0"}

func TestClassify(t *testing.T) {
	old := common.Installer{Name: "Ubuntu24", Checksum: "OLDHASH"}

	tests := []struct {
		name      string
		installed *common.Installer
		available []common.Installer
		want      Outcome
	}{
		{"not installed", nil, []common.Installer{ubuntu}, NotInstalled},
		{"up to date", &ubuntu, []common.Installer{ubuntu}, UpToDate},
		{"update available", &old, []common.Installer{ubuntu}, UpdateAvailable},
		{"nothing available, nothing installed", nil, nil, UnsupportedOrUnavailable},
		{"nothing available, installed", &ubuntu, nil, UnsupportedOrUnavailable},
		{"up to date with second entry", &ubuntu, []common.Installer{{Name: "Other"}, ubuntu}, UpToDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.installed, tt.available); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDecideRecommendsFirst(t *testing.T) {
	second := common.Installer{Name: "Other"}
	r := Decide(common.FamilyUbuntu24, nil, availability.Result{Installers: []common.Installer{ubuntu, second}})

	if r.Outcome != NotInstalled {
		t.Errorf("Expected NOT_INSTALLED, got %s", r.Outcome)
	}
	if r.Recommended == nil || !r.Recommended.Equal(ubuntu) {
		t.Errorf("Expected first available as recommended, got %v", r.Recommended)
	}
	if r.Reason != ReasonNone {
		t.Errorf("Expected no reason, got %q", r.Reason)
	}
}

func TestDecideEmptyCarriesReason(t *testing.T) {
	tests := []struct {
		in   availability.Reason
		want Reason
	}{
		{availability.ReasonUnsupportedOS, ReasonUnsupportedOS},
		{availability.ReasonUnavailable, ReasonUnavailable},
		{availability.ReasonNoConfirmedMatch, ReasonNoConfirmedMatch},
		{availability.ReasonNone, ReasonUnavailable},
	}
	for _, tt := range tests {
		r := Decide(common.FamilyArch, &ubuntu, availability.Result{Reason: tt.in})
		if r.Outcome != UnsupportedOrUnavailable {
			t.Errorf("Expected UNSUPPORTED_OR_UNAVAILABLE, got %s", r.Outcome)
		}
		if r.Recommended != nil {
			t.Errorf("Expected no recommendation, got %v", r.Recommended)
		}
		if r.Reason != tt.want {
			t.Errorf("Expected reason %q, got %q", tt.want, r.Reason)
		}
	}
}

func TestUnknownOS(t *testing.T) {
	r := UnknownOS(nil)
	if r.Outcome != UnsupportedOrUnavailable || r.Reason != ReasonUnknownOS {
		t.Errorf("Unexpected report %+v", r)
	}
}
