package format

import (
	"math"
	"strings"
	"sync"
	"testing"
	"time"
)

// stepBack makes the next UpdateWithETA see d elapsed since the last
// recorded update.
func stepBack(p *ProgressWithETA, d time.Duration) {
	p.mu.Lock()
	p.lastUpdate = time.Now().Add(-d)
	p.mu.Unlock()
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// TestProgressWithETA_ComparisonRuns follows a --scheme all run: the range
// scheme finishes first while the divisor scheme is still climbing.
func TestProgressWithETA_ComparisonRuns(t *testing.T) {
	t.Parallel()
	const rangeRun, divisorRun = 0, 1
	p := NewProgressWithETA(2)

	stepBack(p, time.Second)
	if avg, _ := p.UpdateWithETA(rangeRun, 0.5); !near(avg, 0.25) {
		t.Fatalf("average after range at 50%% = %v, want 0.25", avg)
	}
	stepBack(p, time.Second)
	if avg, _ := p.UpdateWithETA(divisorRun, 0.1); !near(avg, 0.3) {
		t.Fatalf("average after divisor at 10%% = %v, want 0.3", avg)
	}
	stepBack(p, time.Second)
	avg, eta := p.UpdateWithETA(rangeRun, 1)
	if !near(avg, 0.55) {
		t.Fatalf("average with range done = %v, want 0.55", avg)
	}
	if eta <= 0 {
		t.Fatalf("ETA with the divisor run pending = %v, want > 0", eta)
	}

	avg, eta = p.UpdateWithETA(divisorRun, 1)
	if avg != 1 || eta != 0 {
		t.Errorf("both runs done: avg=%v eta=%v, want 1 and 0", avg, eta)
	}
	if got := p.GetETA(); got != 0 {
		t.Errorf("GetETA after completion = %v, want 0", got)
	}
}

// TestProgressWithETA_DivisorRunClimbs feeds one divisor-splitting run that
// advances 10% per second and checks the estimate shrinks towards zero.
func TestProgressWithETA_DivisorRunClimbs(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(1)

	if eta := p.GetETA(); eta != 0 {
		t.Fatalf("ETA before any report = %v, want 0", eta)
	}

	prev := maxETA
	for step := 1; step <= 5; step++ {
		stepBack(p, time.Second)
		_, eta := p.UpdateWithETA(0, float64(step)/10)
		if eta <= 0 || eta >= prev {
			t.Fatalf("step %d: ETA = %v, want in (0, %v)", step, eta, prev)
		}
		prev = eta
	}
	// Half done at 0.1/s leaves about five seconds.
	if prev < 4*time.Second || prev > 6*time.Second {
		t.Errorf("ETA at 50%% = %v, want about 5s", prev)
	}

	// A repeated fraction (a candidate with many divisor chunks) keeps the rate.
	_, eta := p.UpdateWithETA(0, 0.5)
	if diff := eta - prev; diff < -time.Second || diff > time.Second {
		t.Errorf("ETA after a stalled report = %v, want close to %v", eta, prev)
	}
}

func TestProgressWithETA_CapsSlowRuns(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(1)

	stepBack(p, time.Second)
	if _, eta := p.UpdateWithETA(0, 1e-9); eta != maxETA {
		t.Errorf("ETA of a crawling run = %v, want the %v cap", eta, maxETA)
	}
}

// TestProgressWithETA_ConcurrentRuns reports from one goroutine per run, as
// ExecuteRuns does for a comparison.
func TestProgressWithETA_ConcurrentRuns(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(2)

	var wg sync.WaitGroup
	for run := 0; run < 2; run++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 1; i <= 100; i++ {
				p.UpdateWithETA(run, float64(i)/100)
				_ = p.GetETA()
			}
		}()
	}
	wg.Wait()

	if avg, _ := p.UpdateWithETA(0, 1); avg != 1 {
		t.Errorf("final average = %v, want 1", avg)
	}
}

func TestProgressState_Bounds(t *testing.T) {
	t.Parallel()

	if ps := NewProgressState(-1); ps.numRuns != 0 || ps.CalculateAverage() != 0 {
		t.Errorf("NewProgressState(-1) = %+v, want an empty state", ps)
	}

	ps := NewProgressState(2)
	ps.Update(0, 1.7)
	ps.Update(1, -0.2)
	ps.Update(2, 0.9)
	ps.Update(-1, 0.9)
	if avg := ps.CalculateAverage(); avg != 0.5 {
		t.Errorf("average = %v, want 0.5 (values clamped, bad indexes ignored)", avg)
	}
}

func TestProgressBar_Clamping(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		progress float64
		length   int
		filled   int
	}{
		{"negative", -0.3, 10, 0},
		{"empty", 0, 10, 0},
		{"half", 0.5, 10, 5},
		{"rounds down", 0.99, 10, 9},
		{"full", 1, 10, 10},
		{"overshoot", 1.4, 10, 10},
		{"zero length", 0.5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			bar := ProgressBar(tt.progress, tt.length)
			if got := strings.Count(bar, "█"); got != tt.filled {
				t.Errorf("filled cells = %d, want %d (bar %q)", got, tt.filled, bar)
			}
			if got := strings.Count(bar, "░"); got != tt.length-tt.filled {
				t.Errorf("empty cells = %d, want %d (bar %q)", got, tt.length-tt.filled, bar)
			}
		})
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()

	got := FormatProgressBarWithETA(0.42, 63*time.Second, 10)
	if want := "[████░░░░░░]  42.0% ETA: 1m3s"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	got = FormatProgressBarWithETA(1.3, 0, 4)
	if want := "[████] 100.0% ETA: calculating..."; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		eta  time.Duration
		want string
	}{
		{0, "calculating..."},
		{-time.Second, "calculating..."},
		{300 * time.Millisecond, "< 1s"},
		{1400 * time.Millisecond, "1s"},
		{59 * time.Second, "59s"},
		{3 * time.Minute, "3m"},
		{2*time.Minute + 30*time.Second, "2m30s"},
		{time.Hour + 20*time.Second, "1h"},
		{time.Hour + 15*time.Minute, "1h15m"},
		{maxETA, "24h"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.want)
		}
	}
}

// TestFormatExecutionDuration covers the elapsed times printed by the run
// banner, from a tiny bound to a long search.
func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0µs"},
		{750 * time.Microsecond, "750µs"},
		{12*time.Millisecond + 400*time.Microsecond, "12ms"},
		{1500 * time.Millisecond, "1.5s"},
		{2*time.Minute + 5*time.Second, "2m5s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

// TestFormatNumbers uses prime counts for the usual bounds.
func TestFormatNumbers(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{25, "25"},
		{168, "168"},
		{9592, "9,592"},
		{78498, "78,498"},
		{664579, "664,579"},
		{50847534, "50,847,534"},
		{-1000000, "-1,000,000"},
	}
	for _, tt := range tests {
		if got := FormatInt(tt.n); got != tt.want {
			t.Errorf("FormatInt(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
	if got := FormatNumberString(""); got != "" {
		t.Errorf("FormatNumberString(\"\") = %q, want empty", got)
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input uint64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"just below KB", 1023, "1023 B"},
		{"exact KB", 1024, "1.0 KB"},
		{"megabytes", 50 << 20, "50.0 MB"},
		{"gigabytes", 2 << 30, "2.0 GB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatBytes(tt.input); got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
