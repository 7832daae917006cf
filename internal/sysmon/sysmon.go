// Package sysmon samples system-wide and per-process resource usage for the
// dashboard.
package sysmon

import (
	"os"
	"sync"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Stats holds a single snapshot of resource usage.
type Stats struct {
	CPUPercent     float64 // system-wide, 0.0 .. 100.0
	MemPercent     float64 // system-wide, 0.0 .. 100.0
	ProcessRSS     uint64  // resident set size of this process, bytes
	ProcessThreads int32   // OS threads of this process
}

// self is the handle of the current process, opened on first use.
var self = sync.OnceValues(func() (*process.Process, error) {
	return process.NewProcess(int32(os.Getpid()))
})

// Sample collects one snapshot. CPU uses interval=0 (delta since the
// previous call). Fields that cannot be read are left at zero.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	if p, err := self(); err == nil {
		if mi, err := p.MemoryInfo(); err == nil && mi != nil {
			s.ProcessRSS = mi.RSS
		}
		if n, err := p.NumThreads(); err == nil {
			s.ProcessThreads = n
		}
	}
	return s
}
