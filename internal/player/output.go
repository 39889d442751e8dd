package player

// Format describes the PCM stream an output sink must accept.
type Format struct {
	Channels   int
	SampleRate int
}

// Output is the injected audio device capability. The engine never talks to
// the host audio API directly; production wires an oto-backed implementation
// and tests wire a mock.
type Output interface {
	// Open prepares a sink for the given PCM format.
	Open(format Format) (Sink, error)
}

// Sink is one open output stream. All methods must tolerate being called
// after Close; the controller's forced-release path can race a slow playback
// task, so releases are checked rather than assumed single.
type Sink interface {
	// Submit hands the whole buffer to the device and starts playback.
	Submit(buf *PCMBuffer) error

	// Consumed reports whether the device has finished playing the
	// submitted buffer.
	Consumed() bool

	// Pause suspends playback without losing position.
	Pause()

	// Resume continues paused playback.
	Resume()

	// Reset discards any buffered audio immediately.
	Reset()

	// Close releases the sink. Idempotent.
	Close()
}
