package sysmon

import (
	"runtime"
	"testing"
)

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestSample_Process(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skipf("process stats not checked on %s", runtime.GOOS)
	}
	s := Sample()
	if s.ProcessRSS == 0 {
		t.Error("expected a non-zero resident set size for the test process")
	}
	if s.ProcessThreads < 1 {
		t.Errorf("expected at least one OS thread, got %d", s.ProcessThreads)
	}
}
