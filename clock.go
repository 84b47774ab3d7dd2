package depot

import (
	"sync"
	"time"
)

var (
	_ FrameClock = &TickerClock{}
	_ FrameClock = &ManualClock{}
)

// TickerClock ticks at a fixed wall-clock interval from a single goroutine
type TickerClock struct {
	interval time.Duration

	mu       sync.Mutex
	stopChan chan struct{}
}

func NewTickerClock(interval time.Duration) *TickerClock {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &TickerClock{interval: interval}
}

// Start launches the tick loop. Calling Start while already started does nothing.
func (c *TickerClock) Start(onTick func(time.Duration)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopChan != nil {
		return
	}
	stop := make(chan struct{})
	c.stopChan = stop
	go c.loop(stop, onTick)
}

// Stop ends the tick loop after the tick in flight, if any. It does not wait, so it may be
// called from inside onTick.
func (c *TickerClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopChan == nil {
		return
	}
	close(c.stopChan)
	c.stopChan = nil
}

func (c *TickerClock) loop(stop <-chan struct{}, onTick func(time.Duration)) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	origin := time.Now()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			// Stop may race with a ready tick; stop wins
			select {
			case <-stop:
				return
			default:
			}
			onTick(now.Sub(origin))
		}
	}
}

// ManualClock ticks only when advanced, for deterministic stepping in tests and tools
type ManualClock struct {
	onTick  func(time.Duration)
	now     time.Duration
	running bool
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Start(onTick func(time.Duration)) {
	c.onTick = onTick
	c.now = 0
	c.running = true
}

func (c *ManualClock) Stop() {
	c.running = false
}

func (c *ManualClock) Running() bool {
	return c.running
}

func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward by d and delivers one tick. It reports false, without
// ticking, when the clock is stopped.
func (c *ManualClock) Advance(d time.Duration) bool {
	if !c.running {
		return false
	}
	c.now += d
	c.onTick(c.now)
	return true
}
