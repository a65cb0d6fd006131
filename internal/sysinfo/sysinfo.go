// Package sysinfo reports host information and a performance snapshot for
// the desktop's system monitor app and the CLI.
package sysinfo

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// SampleInterval is how long Performance measures CPU usage for.
const SampleInterval = 200 * time.Millisecond

// SystemInfo describes the host.
type SystemInfo struct {
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platformVersion,omitempty"`
	Arch            string `json:"arch"`
	CPUCount        int    `json:"cpuCount"`
	Hostname        string `json:"hostname"`
	Uptime          uint64 `json:"uptime,omitempty"` // seconds
}

// PerformanceInfo is a point-in-time resource usage sample.
type PerformanceInfo struct {
	MemoryUsage float64 `json:"memoryUsage"` // percent
	MemoryUsed  uint64  `json:"memoryUsed"`  // bytes
	MemoryTotal uint64  `json:"memoryTotal"` // bytes
	CPUUsage    float64 `json:"cpuUsage"`    // percent
	Timestamp   int64   `json:"timestamp"`   // unix seconds
}

// Info gathers host details. Fields gopsutil cannot read fall back to the Go
// runtime's view of the machine.
func Info(ctx context.Context) (SystemInfo, error) {
	info := SystemInfo{
		Platform: runtime.GOOS,
		Arch:     runtime.GOARCH,
		CPUCount: runtime.NumCPU(),
	}

	if n, err := cpu.CountsWithContext(ctx, true); err == nil && n > 0 {
		info.CPUCount = n
	}

	h, err := host.InfoWithContext(ctx)
	if err != nil {
		name, herr := os.Hostname()
		if herr != nil {
			return info, fmt.Errorf("read host info: %w", err)
		}
		info.Hostname = name
		return info, nil
	}

	info.Hostname = h.Hostname
	info.Uptime = h.Uptime
	if h.Platform != "" {
		info.PlatformVersion = strings.TrimSpace(h.Platform + " " + h.PlatformVersion)
	}
	if h.KernelArch != "" {
		info.Arch = h.KernelArch
	}
	return info, nil
}

// Performance samples memory and CPU usage. It blocks for SampleInterval
// while measuring CPU, or until ctx is done.
func Performance(ctx context.Context) (PerformanceInfo, error) {
	perf := PerformanceInfo{Timestamp: time.Now().Unix()}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return perf, fmt.Errorf("read memory usage: %w", err)
	}
	perf.MemoryUsage = vm.UsedPercent
	perf.MemoryUsed = vm.Used
	perf.MemoryTotal = vm.Total

	pct, err := cpu.PercentWithContext(ctx, SampleInterval, false)
	if err != nil {
		return perf, fmt.Errorf("read cpu usage: %w", err)
	}
	if len(pct) > 0 {
		perf.CPUUsage = clampPercent(pct[0])
	}
	return perf, nil
}

func clampPercent(v float64) float64 {
	return max(0, min(v, 100))
}
