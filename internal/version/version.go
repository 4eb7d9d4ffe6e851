package version

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// -ldflags "-X skrillax-agent/internal/version.Date=2026-03-01 -X skrillax-agent/internal/version.Commit=..."
var (
	Date   string
	Commit string
)

var epoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

var errNoDate = errors.New("build date not set")

// Build - ответ /version
type Build struct {
	Number    int    `json:"number,omitempty"`
	Date      string `json:"date,omitempty"`
	Commit    string `json:"commit,omitempty"`
	Module    string `json:"module,omitempty"`
	GoVersion string `json:"goVersion"`
	Error     string `json:"error,omitempty"`
}

// BuildNumber - дни от начала проекта до даты сборки (UTC)
func BuildNumber(date string) (int, error) {
	if date == "" {
		return 0, errNoDate
	}
	t, err := time.ParseInLocation(time.DateOnly, date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("build date %q: %w", date, err)
	}
	if t.Before(epoch) {
		return 0, fmt.Errorf("build date %s precedes %s", date, epoch.Format(time.DateOnly))
	}
	return int(t.Sub(epoch) / (24 * time.Hour)), nil
}

func Info() Build {
	b := Build{Date: Date, Commit: Commit, GoVersion: runtime.Version()}
	if bi, ok := debug.ReadBuildInfo(); ok {
		b.Module = bi.Main.Path
		for _, s := range bi.Settings {
			// ldflags важнее ревизии, которую проставил go build
			if s.Key == "vcs.revision" && b.Commit == "" {
				b.Commit = s.Value
			}
		}
	}

	n, err := BuildNumber(Date)
	if err != nil {
		b.Error = err.Error()
		return b
	}
	b.Number = n
	return b
}

// String - строка для лога при старте
func String() string {
	b := Info()
	if b.Error != "" {
		return fmt.Sprintf("build unknown (%s), %s", b.Error, b.GoVersion)
	}
	commit := b.Commit
	if commit == "" {
		commit = "unknown"
	}
	return fmt.Sprintf("build %d (%s, commit %s), %s", b.Number, b.Date, commit, b.GoVersion)
}
