package pkg

import (
	"fmt"
	"sync"
	"time"
)

// Clock measures how long the engine has been thinking. It ticks once a
// second while running so a UI can redraw the elapsed time.
type Clock struct {
	mu      sync.Mutex
	started time.Time
	elapsed time.Duration
	running bool
	now     func() time.Time
	OnTick  func(elapsed time.Duration)
	stop    chan struct{}
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

func (cl *Clock) String() string {
	e := cl.Elapsed()
	return fmt.Sprintf("%d:%02d", int(e.Minutes()), int(e.Seconds())%60)
}

// Start resets the clock and starts it.
func (cl *Clock) Start() {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.running {
		close(cl.stop)
	}
	cl.started = cl.now()
	cl.elapsed = 0
	cl.running = true
	cl.stop = make(chan struct{})
	go cl.run(cl.stop)
}

func (cl *Clock) run(stop chan struct{}) {
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
			cl.mu.Lock()
			onTick := cl.OnTick
			cl.mu.Unlock()
			if onTick != nil {
				onTick(cl.Elapsed())
			}
		case <-stop:
			return
		}
	}
}

// Stop freezes the clock and returns the elapsed time.
func (cl *Clock) Stop() time.Duration {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.running {
		cl.elapsed = cl.now().Sub(cl.started)
		cl.running = false
		close(cl.stop)
	}
	return cl.elapsed
}

func (cl *Clock) Running() bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.running
}

func (cl *Clock) Elapsed() time.Duration {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.running {
		return cl.now().Sub(cl.started)
	}
	return cl.elapsed
}
