package pricing

import (
	"testing"
	"time"
)

func TestSurgeMultiplier_Boundaries(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		hour int
		want float64
	}{
		{0, SurgeNight},
		{5, SurgeNight},
		{6, SurgeNone},
		{7, SurgeNone},
		{8, SurgePeak},
		{11, SurgePeak},
		{12, SurgeNone},
		{16, SurgeNone},
		{17, SurgePeak},
		{21, SurgePeak},
		{22, SurgeNight},
		{23, SurgeNight},
	}
	for _, tt := range tests {
		at := time.Date(2026, 3, 14, tt.hour, 30, 0, 0, ist)
		if got := SurgeMultiplier(&at, ist); got != tt.want {
			t.Errorf("hour %d: SurgeMultiplier() = %v, want %v", tt.hour, got, tt.want)
		}
	}
}

func TestSurgeMultiplier_UsesBusinessZone(t *testing.T) {
	ist, _ := time.LoadLocation("Asia/Kolkata")
	// 04:30 UTC is 10:00 in Kolkata.
	at := time.Date(2026, 3, 14, 4, 30, 0, 0, time.UTC)
	if got := SurgeMultiplier(&at, ist); got != SurgePeak {
		t.Errorf("SurgeMultiplier() = %v, want peak", got)
	}
	if got := SurgeMultiplier(&at, time.UTC); got != SurgeNight {
		t.Errorf("SurgeMultiplier(UTC) = %v, want night", got)
	}
}

func TestSurgeMultiplier_Nil(t *testing.T) {
	if got := SurgeMultiplier(nil, time.UTC); got != SurgeNone {
		t.Errorf("SurgeMultiplier(nil) = %v, want 1.0", got)
	}
}

func TestSurgeLabel(t *testing.T) {
	tests := map[float64]string{
		SurgePeak:  "Peak Hour Surge applied",
		SurgeNight: "Night Charges applied",
		SurgeNone:  "",
		1.5:        "",
	}
	for m, want := range tests {
		if got := SurgeLabel(m); got != want {
			t.Errorf("SurgeLabel(%v) = %q, want %q", m, got, want)
		}
	}
}

func TestParseScheduledAt(t *testing.T) {
	ist, _ := time.LoadLocation("Asia/Kolkata")

	got := ParseScheduledAt("2026-03-14", "18:45", ist)
	if got == nil {
		t.Fatal("ParseScheduledAt() = nil")
	}
	if got.Hour() != 18 || got.Minute() != 45 || got.Location() != ist {
		t.Errorf("ParseScheduledAt() = %v", got)
	}

	for _, in := range [][2]string{
		{"", "18:45"},
		{"2026-03-14", ""},
		{"14/03/2026", "18:45"},
		{"2026-03-14", "6pm"},
	} {
		if got := ParseScheduledAt(in[0], in[1], ist); got != nil {
			t.Errorf("ParseScheduledAt(%q, %q) = %v, want nil", in[0], in[1], got)
		}
	}
}
