package player

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/platter-audio/platter/internal/library"
)

const (
	defaultPollInterval = 100 * time.Millisecond
	defaultStopTimeout  = 2 * time.Second
)

// Options tune the controller. Zero values select the defaults.
type Options struct {
	PollInterval time.Duration // completion poll period
	StopTimeout  time.Duration // bounded wait for the playback task on stop
	Decode       DecodeFunc    // decoder, defaults to Decode
}

// Controller owns the lifecycle of at most one in-flight playback operation:
// a background task that decodes a track, submits it to the output and waits
// for completion or cancellation.
type Controller struct {
	// cmdMu serializes the stop-then-install command sequences so that two
	// concurrent Play calls cannot both see the operation slot empty and
	// both fill it. It is never held by the playback task; mu alone guards
	// the fields.
	cmdMu sync.Mutex

	mu  sync.Mutex
	out Output
	log *slog.Logger

	decode       DecodeFunc
	pollInterval time.Duration
	stopTimeout  time.Duration

	state State
	op    *operation
}

// operation is one playback attempt. At most one exists at a time.
type operation struct {
	cancel atomic.Bool
	done   chan struct{}

	// Guarded by Controller.mu
	sink     Sink
	buf      *PCMBuffer
	released bool
}

// NewController creates a controller over the given output capability.
func NewController(out Output, log *slog.Logger, opts Options) *Controller {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = defaultStopTimeout
	}
	if opts.Decode == nil {
		opts.Decode = Decode
	}
	return &Controller{
		out:          out,
		log:          log,
		decode:       opts.Decode,
		pollInterval: opts.PollInterval,
		stopTimeout:  opts.StopTimeout,
		state:        Idle,
	}
}

// State returns the current controller state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Play cancels any running operation, then decodes and streams the given
// track on a background task. The descriptor must already be resolved; the
// caller handles tracks that do not exist.
func (c *Controller) Play(desc library.Descriptor) {
	c.cmdMu.Lock()
	defer c.cmdMu.Unlock()

	c.stop()

	c.mu.Lock()
	op := &operation{done: make(chan struct{})}
	c.op = op
	c.state = Decoding
	c.mu.Unlock()

	c.log.Info("play", "track", desc.Track, "path", desc.Path, "format", desc.Format.String())
	go c.run(op, desc)
}

// Stop cancels the running operation, waits up to the stop timeout for the
// playback task to observe it, then releases the output and buffer
// regardless. A task that never notices cancellation cannot hold the device:
// the release is checked, so the task's own late release becomes a no-op.
// Stop with no active operation does nothing.
func (c *Controller) Stop() {
	c.cmdMu.Lock()
	defer c.cmdMu.Unlock()
	c.stop()
}

// stop is Stop without the command lock. Callers hold c.cmdMu.
func (c *Controller) stop() {
	c.mu.Lock()
	op := c.op
	if op == nil {
		c.mu.Unlock()
		return
	}
	op.cancel.Store(true)
	c.mu.Unlock()

	select {
	case <-op.done:
	case <-time.After(c.stopTimeout):
		c.log.Warn("playback task unresponsive, forcing release")
	}

	c.mu.Lock()
	c.releaseLocked(op)
	if c.op == op {
		c.op = nil
		c.state = Idle
	}
	c.mu.Unlock()
	c.log.Info("stopped")
}

// Pause relays pause to the output. Valid only while Playing; a no-op
// otherwise.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Playing || c.op == nil || c.op.sink == nil || c.op.released {
		return
	}
	c.op.sink.Pause()
	c.state = Paused
	c.log.Info("paused")
}

// Resume relays resume to the output. Valid only while Paused; a no-op
// otherwise.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Paused || c.op == nil || c.op.sink == nil || c.op.released {
		return
	}
	c.op.sink.Resume()
	c.state = Playing
	c.log.Info("resumed")
}

// run is the playback task: decode, configure the output, submit, then poll
// for completion or cancellation.
func (c *Controller) run(op *operation, desc library.Descriptor) {
	defer close(op.done)

	buf, err := c.decode(desc.Path, desc.Format)
	if err != nil {
		c.log.Error("decode failed", "track", desc.Track, "path", desc.Path, "err", err)
		c.abort(op)
		return
	}
	c.log.Info("decoded",
		"track", desc.Track,
		"format", desc.Format.String(),
		"channels", buf.Channels,
		"sample_rate", buf.SampleRate,
		"frames", buf.Frames(),
		"size", humanize.IBytes(uint64(buf.Size())))

	c.mu.Lock()
	if op.released || op.cancel.Load() {
		c.mu.Unlock()
		return
	}
	sink, err := c.out.Open(Format{Channels: buf.Channels, SampleRate: buf.SampleRate})
	if err != nil {
		c.mu.Unlock()
		c.log.Error("output open failed", "track", desc.Track, "err", err)
		c.abort(op)
		return
	}
	op.sink = sink
	op.buf = buf
	if err := sink.Submit(buf); err != nil {
		c.releaseLocked(op)
		if c.op == op {
			c.op = nil
			c.state = Idle
		}
		c.mu.Unlock()
		c.log.Error("output submit failed", "track", desc.Track, "err", err)
		return
	}
	c.state = Playing
	c.mu.Unlock()
	c.log.Info("playback started", "track", desc.Track)

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for range ticker.C {
		if op.cancel.Load() {
			return
		}
		c.mu.Lock()
		finished := !op.released && op.sink.Consumed()
		c.mu.Unlock()
		if finished {
			// The state is deliberately left as-is: status queries after an
			// unassisted finish report the last commanded state until the
			// next command arrives.
			c.log.Info("playback complete", "track", desc.Track)
			return
		}
	}
}

// abort releases an operation that failed before playback started.
func (c *Controller) abort(op *operation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseLocked(op)
	if c.op == op {
		c.op = nil
		c.state = Idle
	}
}

// releaseLocked frees the operation's output and buffer exactly once.
// Callers hold c.mu.
func (c *Controller) releaseLocked(op *operation) {
	if op.released {
		return
	}
	op.released = true
	if op.sink != nil {
		op.sink.Reset()
		op.sink.Close()
	}
	op.buf = nil
}
