//go:build unix

package sysmon

import (
	"time"

	"golang.org/x/sys/unix"
)

// ProcessCPUTime returns the user plus system CPU time consumed by the
// process so far, or 0 if getrusage fails.
func ProcessCPUTime() time.Duration {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	return time.Duration(ru.Utime.Nano() + ru.Stime.Nano())
}
