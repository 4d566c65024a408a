package workers

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"

	"chatline/contract"
)

// TelemetryWorker periodically logs one operational line: registry sizes and
// the server process's own memory, CPU and goroutine footprint.
type TelemetryWorker struct {
	log         *slog.Logger
	interval    time.Duration
	connections contract.IConnections
	groups      contract.IGroups
}

func NewTelemetryWorker(log *slog.Logger, interval time.Duration,
	connections contract.IConnections, groups contract.IGroups) *TelemetryWorker {
	return &TelemetryWorker{log: log, interval: interval, connections: connections, groups: groups}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rss, cpu, status, err := selfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}
			w.log.Info("Server stats",
				"sessions", w.connections.Count(),
				"groups", w.groups.Count(),
				"goroutines", runtime.NumGoroutine(),
				"ram_mb", rss/1024/1024,
				"cpu_percent", cpu,
				"pid_status", status)
		}
	}
}

// selfStats retrieves technical metrics (Memory, CPU, and OS status) for the
// given process.
func selfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}
	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}
