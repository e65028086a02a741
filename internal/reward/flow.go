// Package reward simulates a rewarded ad: progress advances on a timer and
// the target item is unlocked when it reaches Total.
package reward

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Total is the progress value at which the ad completes.
const Total = 100

// Defaults give an ad of roughly three seconds.
const (
	DefaultTick = 30 * time.Millisecond
	DefaultStep = 1
)

// ErrBusy is returned by Start while an ad is playing.
var ErrBusy = errors.New("an ad is already playing")

// State is the flow's lifecycle state.
type State string

const (
	StateIdle     State = "idle"
	StatePlaying  State = "playing"
	StateComplete State = "complete"
)

// Options configures a Flow. Callbacks run on the flow's goroutine.
type Options struct {
	Tick       time.Duration
	Step       int
	OnProgress func(id string, progress int)
	OnComplete func(id string)
	Logger     *log.Logger
}

// TickFor returns the tick interval that makes an ad with DefaultStep last d.
func TickFor(d time.Duration) time.Duration {
	t := d / time.Duration(Total/DefaultStep)
	if t <= 0 {
		return time.Millisecond
	}
	return t
}

// Flow runs at most one ad at a time.
type Flow struct {
	opts   Options
	logger *log.Logger

	mu       sync.Mutex
	state    State
	target   string
	progress int
	stop     chan struct{}
	done     chan struct{}
}

// New creates an idle Flow.
func New(opts Options) *Flow {
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	if opts.Step <= 0 {
		opts.Step = DefaultStep
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Flow{opts: opts, logger: logger.WithPrefix("reward"), state: StateIdle}
}

// Start begins an ad for id.
func (f *Flow) Start(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateIdle {
		return ErrBusy
	}
	f.state = StatePlaying
	f.target = id
	f.progress = 0
	f.stop = make(chan struct{})
	f.done = make(chan struct{})
	f.logger.Debug("ad started", "id", id)
	go f.run(id, f.stop, f.done)
	return nil
}

// Close cancels a playing ad without unlocking. It returns once the timer
// has been released and reports whether an ad was cancelled.
func (f *Flow) Close() bool {
	f.mu.Lock()
	if f.state != StatePlaying {
		f.mu.Unlock()
		return false
	}
	close(f.stop)
	done := f.done
	f.logger.Debug("ad closed", "id", f.target, "progress", f.progress)
	f.reset()
	f.mu.Unlock()

	<-done
	return true
}

// Wait blocks until the current ad, if any, completes or is closed.
func (f *Flow) Wait() {
	f.mu.Lock()
	done := f.done
	f.mu.Unlock()
	if done != nil {
		<-done
	}
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Progress returns the current progress in [0, Total].
func (f *Flow) Progress() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.progress
}

// Target returns the id of the item the playing ad unlocks.
func (f *Flow) Target() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target
}

// reset returns to idle. Caller holds mu.
func (f *Flow) reset() {
	f.state = StateIdle
	f.target = ""
	f.progress = 0
	f.stop = nil
}

func (f *Flow) run(id string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(f.opts.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		f.mu.Lock()
		if f.stop != stop {
			f.mu.Unlock()
			return
		}
		f.progress = min(f.progress+f.opts.Step, Total)
		p := f.progress
		complete := p >= Total
		if complete {
			f.state = StateComplete
		}
		f.mu.Unlock()

		if f.opts.OnProgress != nil {
			f.opts.OnProgress(id, p)
		}
		if !complete {
			continue
		}

		f.logger.Debug("ad complete", "id", id)
		if f.opts.OnComplete != nil {
			f.opts.OnComplete(id)
		}
		f.mu.Lock()
		if f.stop == stop {
			f.reset()
		}
		f.mu.Unlock()
		return
	}
}
