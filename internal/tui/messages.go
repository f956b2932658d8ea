package tui

import (
	"time"

	"github.com/agbru/collatzcheck/internal/bignum"
	"github.com/agbru/collatzcheck/internal/metrics"
	"github.com/agbru/collatzcheck/internal/orchestration"
)

// TickMsg drives periodic sampling and the in-flight progress display.
type TickMsg time.Time

// BatchStartedMsg is sent by the bridge when the loop launches a batch.
type BatchStartedMsg struct {
	Plan orchestration.BatchPlan
}

// BatchCompletedMsg is sent by the bridge when every worker has joined.
type BatchCompletedMsg struct {
	Report orchestration.BatchReport
}

// LoopDoneMsg is returned by the loop command when Loop.Run returns.
type LoopDoneMsg struct {
	Frontier bignum.Int
	Batches  uint64
	Err      error
}

// MemStatsMsg carries a runtime memory snapshot.
type MemStatsMsg struct {
	Snapshot metrics.MemorySnapshot
}

// SysStatsMsg carries system-wide CPU, memory and load figures.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
	Load1      float64
}
