// Package sysinfo reads host facts recorded alongside shell sessions.
package sysinfo

import (
	"errors"
	"time"
)

// ErrUnsupported is returned by BootTime on platforms without a boot clock query.
var ErrUnsupported = errors.New("boot time not supported on this platform")

// BootTime returns when the host last booted, in local time, to the
// precision the OS reports it.
func BootTime() (time.Time, error) {
	t, err := bootTime()
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}
