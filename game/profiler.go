package game

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Profiler watches per-frame work time and reports sustained overruns of the
// frame budget. With a profile directory set it also captures a CPU profile
// and an execution trace when an overrun is reported.
type Profiler struct {
	mu          sync.Mutex
	logger      *zap.Logger
	budget      time.Duration
	window      time.Duration
	warmup      time.Duration
	cooldown    time.Duration
	profilesDir string
	capture     time.Duration
	now         func() time.Time

	start       time.Time
	windowStart time.Time
	frames      int
	total       time.Duration
	average     time.Duration
	lastDrop    time.Time
	drops       int

	isProfiling bool
	wg          sync.WaitGroup
}

// NewProfiler creates a profiler for the given frame budget. profilesDir may
// be empty to disable captures.
func NewProfiler(budget time.Duration, profilesDir string, logger *zap.Logger) *Profiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Profiler{
		logger:      logger,
		budget:      budget,
		window:      500 * time.Millisecond,
		warmup:      3 * time.Second,  // ignore startup hitches
		cooldown:    10 * time.Second, // report at most once every 10 seconds
		profilesDir: profilesDir,
		capture:     5 * time.Second,
		now:         time.Now,
	}
	p.start = p.now()
	p.windowStart = p.start
	return p
}

// Observe records the work time of one frame. It returns true when this
// observation closed a window whose average exceeded the budget and a drop
// was reported.
func (p *Profiler) Observe(work time.Duration) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frames++
	p.total += work

	now := p.now()
	if now.Sub(p.windowStart) < p.window {
		return false
	}

	p.average = p.total / time.Duration(p.frames)
	p.frames = 0
	p.total = 0
	p.windowStart = now

	if p.budget <= 0 || p.average <= p.budget {
		return false
	}
	if now.Sub(p.start) < p.warmup {
		return false
	}
	if !p.lastDrop.IsZero() && now.Sub(p.lastDrop) < p.cooldown {
		return false
	}

	p.lastDrop = now
	p.drops++

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Warn("frame budget exceeded",
		zap.Duration("average", p.average),
		zap.Duration("budget", p.budget),
		zap.Uint32("num_gc", m.NumGC),
		zap.Uint64("heap_alloc_kb", m.HeapAlloc/1024))

	if p.profilesDir != "" && !p.isProfiling {
		p.isProfiling = true
		reason := fmt.Sprintf("frame%s", p.average.Round(time.Microsecond))
		p.wg.Add(1)
		go p.captureProfile(reason)
	}
	return true
}

// Average returns the mean frame work time of the last closed window
func (p *Profiler) Average() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.average
}

// Drops returns how many overruns have been reported
func (p *Profiler) Drops() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.drops
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

// Close waits for an in-flight capture to finish
func (p *Profiler) Close() {
	p.wg.Wait()
}

// captureProfile captures a CPU profile and trace in parallel
func (p *Profiler) captureProfile(reason string) {
	defer p.wg.Done()
	defer func() {
		p.mu.Lock()
		p.isProfiling = false
		p.mu.Unlock()
	}()

	if err := os.MkdirAll(p.profilesDir, 0755); err != nil {
		p.logger.Warn("failed to create profile directory", zap.String("dir", p.profilesDir), zap.Error(err))
		return
	}

	timestamp := time.Now().Format("20060102-150405")
	baseName := fmt.Sprintf("frame-drop-%s-%s", timestamp, reason)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := p.captureCPUProfile(baseName); err != nil {
			p.logger.Warn("failed to capture cpu profile", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		if err := p.captureTrace(baseName); err != nil {
			p.logger.Warn("failed to capture trace", zap.Error(err))
		}
	}()
	wg.Wait()
}

// captureCPUProfile captures a CPU profile
func (p *Profiler) captureCPUProfile(baseName string) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.capture)
	pprof.StopCPUProfile()

	p.logger.Info("cpu profile saved", zap.String("path", profilePath))
	return nil
}

// captureTrace captures an execution trace
func (p *Profiler) captureTrace(baseName string) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")

	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.capture)
	trace.Stop()

	p.logger.Info("trace saved", zap.String("path", tracePath))
	return nil
}
