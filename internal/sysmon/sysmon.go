// Package sysmon samples host resource usage for the dashboard and the
// verbose report, and measures the CPU time consumed by the process.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent  float64 // 0.0 .. 100.0
	MemPercent  float64 // 0.0 .. 100.0
	Load1       float64 // one-minute load average, 0 where unsupported
	LogicalCPUs int
	Goroutines  int
}

// Sample collects a single system-wide snapshot.
// CPU uses interval=0 (delta since last call). Fields that cannot be read
// are left at zero.
func Sample() Stats {
	s := Stats{
		LogicalCPUs: runtime.NumCPU(),
		Goroutines:  runtime.NumGoroutine(),
	}
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	if avg, err := load.Avg(); err == nil && avg != nil {
		s.Load1 = avg.Load1
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		s.LogicalCPUs = n
	}
	return s
}

// Utilization returns cpu / (wall × workers) as a fraction, the share of the
// worker threads' capacity that was spent computing. It returns 0 when wall
// or workers is zero.
func Utilization(cpuSeconds, wallSeconds float64, workers int) float64 {
	if wallSeconds <= 0 || workers <= 0 {
		return 0
	}
	return cpuSeconds / (wallSeconds * float64(workers))
}
