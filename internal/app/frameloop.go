package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultFrameInterval is roughly one display refresh.
const DefaultFrameInterval = time.Second / 60

// FrameLoop calls a frame callback at a fixed cadence on a background
// goroutine. The callback must be idempotent for unchanged input; the loop
// makes no attempt to skip frames.
type FrameLoop struct {
	interval time.Duration
	onFrame  func(now time.Time)

	mu     sync.Mutex
	stopCh chan struct{}
	done   chan struct{}

	frames atomic.Uint64
}

// NewFrameLoop creates a stopped frame loop. A non-positive interval uses
// DefaultFrameInterval.
func NewFrameLoop(interval time.Duration, onFrame func(now time.Time)) *FrameLoop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameLoop{interval: interval, onFrame: onFrame}
}

// Start begins ticking until Stop is called or ctx is cancelled. Starting a
// running loop does nothing.
func (f *FrameLoop) Start(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopCh != nil {
		return
	}
	f.stopCh = make(chan struct{})
	f.done = make(chan struct{})
	go f.run(ctx, f.stopCh, f.done)
}

// Stop halts the loop and waits for the current frame to finish.
func (f *FrameLoop) Stop() {
	f.mu.Lock()
	stopCh, done := f.stopCh, f.done
	f.stopCh, f.done = nil, nil
	f.mu.Unlock()

	if stopCh == nil {
		return
	}
	close(stopCh)
	<-done
}

// Running reports whether the loop is ticking.
func (f *FrameLoop) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopCh != nil
}

// Frames returns how many frames have run since creation.
func (f *FrameLoop) Frames() uint64 {
	return f.frames.Load()
}

// Interval returns the tick interval.
func (f *FrameLoop) Interval() time.Duration {
	return f.interval
}

func (f *FrameLoop) run(ctx context.Context, stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			Logger().Debug("frame loop cancelled", "frames", f.frames.Load())
			f.mu.Lock()
			if f.stopCh == stopCh {
				f.stopCh, f.done = nil, nil
			}
			f.mu.Unlock()
			return
		case now := <-ticker.C:
			f.frame(now)
			f.frames.Add(1)
		}
	}
}

// frame runs one callback. A panicking frame is logged and the loop keeps
// ticking.
func (f *FrameLoop) frame(now time.Time) {
	if f.onFrame == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("frame panicked", "frame", f.frames.Load(), "panic", r)
		}
	}()
	f.onFrame(now)
}
