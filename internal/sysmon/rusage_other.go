//go:build !unix

package sysmon

import "time"

// ProcessCPUTime is not measured on this platform and always returns 0.
func ProcessCPUTime() time.Duration { return 0 }
