package version

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildNumber(t *testing.T) {
	tests := []struct {
		date    string
		want    int
		wantErr bool
	}{
		{"2026-01-01", 0, false},
		{"2026-01-02", 1, false},
		{"2027-01-01", 365, false},
		{"2029-01-01", 1096, false}, // 2028 високосный
		{"2025-12-31", 0, true},
		{"01.01.2026", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := BuildNumber(tt.date)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("BuildNumber(%q) = %d, %v", tt.date, got, err)
		}
	}
}

func TestInfo(t *testing.T) {
	oldDate, oldCommit := Date, Commit
	defer func() { Date, Commit = oldDate, oldCommit }()

	Date, Commit = "2026-03-01", "abc123"
	b := Info()
	if b.Number != 59 || b.Commit != "abc123" || b.Error != "" || b.GoVersion == "" {
		t.Errorf("Info() = %+v", b)
	}
	if s := String(); !strings.Contains(s, "build 59") || !strings.Contains(s, "abc123") {
		t.Errorf("String() = %q", s)
	}

	Date = ""
	if b := Info(); b.Number != 0 || b.Error != errNoDate.Error() {
		t.Errorf("Info() without date = %+v", b)
	}
	if _, err := BuildNumber(""); !errors.Is(err, errNoDate) {
		t.Errorf("BuildNumber(\"\") = %v", err)
	}
}
