// Package sysmon provides host identification and system-wide CPU and memory
// usage sampling.
package sysmon

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Host describes the machine the process runs on.
type Host struct {
	OS       string
	Arch     string
	Hostname string
	NumCPU   int
}

// Identify returns the host description. OS and Arch are the compile-time
// targets; the hostname comes from the host probe with os.Hostname as
// fallback, and is empty when neither succeeds.
func Identify() Host {
	h := Host{OS: runtime.GOOS, Arch: runtime.GOARCH, NumCPU: runtime.NumCPU()}
	if info, err := host.Info(); err == nil && info.Hostname != "" {
		h.Hostname = info.Hostname
		return h
	}
	if name, err := os.Hostname(); err == nil {
		h.Hostname = name
	}
	return h
}
