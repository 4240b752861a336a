//go:build linux

package sysinfo

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

const procStat = "/proc/stat"

func bootTime() (time.Time, error) {
	t, err := readBtime(procStat)
	if err == nil {
		return t, nil
	}
	slog.Debug("btime unavailable, deriving boot time from uptime", "error", err)
	return bootTimeFromUptime()
}

func readBtime(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	t, err := parseBtime(f)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// bootTimeFromUptime is used when /proc is not mounted. Uptime has whole
// second resolution, so the result can differ by one second between calls.
func bootTimeFromUptime() (time.Time, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return time.Time{}, fmt.Errorf("sysinfo: %w", err)
	}
	uptime := time.Duration(info.Uptime) * time.Second
	return time.Now().Add(-uptime).Truncate(time.Second), nil
}
