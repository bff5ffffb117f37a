package utils

import (
	"context"
	"log/slog"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

type SystemUsage struct {
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float64 `json:"memoryPercent"`
	MemoryUsedMB  uint64  `json:"memoryUsedMb"`
}

// GetSystemUsage samples CPU since the previous call and current memory use.
// Sampling failures are logged and reported as zero.
func GetSystemUsage(ctx context.Context) SystemUsage {
	var usage SystemUsage

	percentage, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		slog.WarnContext(ctx, "cpu usage unavailable", "error", err)
	} else if len(percentage) > 0 {
		usage.CPUPercent = percentage[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		slog.WarnContext(ctx, "memory usage unavailable", "error", err)
	} else {
		usage.MemoryPercent = vm.UsedPercent
		usage.MemoryUsedMB = vm.Used / 1024 / 1024
	}

	return usage
}
