package sysinfo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

var errNoBtime = errors.New("no btime line")

// parseBtime extracts the "btime <seconds>" line from /proc/stat content.
// The kernel fixes btime at boot, so every read within one boot agrees.
func parseBtime(r io.Reader) (time.Time, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 || fields[0] != "btime" {
			continue
		}
		sec, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil || sec <= 0 {
			return time.Time{}, fmt.Errorf("invalid btime %q", fields[1])
		}
		return time.Unix(sec, 0), nil
	}
	if err := sc.Err(); err != nil {
		return time.Time{}, err
	}
	return time.Time{}, errNoBtime
}
