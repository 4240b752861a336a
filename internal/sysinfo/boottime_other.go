//go:build !linux && !darwin

package sysinfo

import "time"

func bootTime() (time.Time, error) {
	return time.Time{}, ErrUnsupported
}
