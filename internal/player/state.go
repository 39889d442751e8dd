// internal/player/state.go
package player

// State represents the playback controller state machine.
//
// Valid transitions:
//   - Idle     → Decoding (via Play)
//   - Decoding → Playing  (decode and output setup succeeded)
//   - Decoding → Idle     (decode or output setup failed)
//   - Playing  → Paused   (via Pause)
//   - Paused   → Playing  (via Resume)
//   - any      → Idle     (via Stop)
//
// Natural end-of-buffer completion deliberately does NOT transition back to
// Idle: the state stays Playing (or Paused) until the next command. Status
// queries after a track finishes unassisted report the stale state; this
// mirrors how the real device class behaved and callers depend on it.
type State int

const (
	Idle State = iota
	Decoding
	Playing
	Paused
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Decoding:
		return "Decoding"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if an operation is in flight (decoding or audible).
func (s State) IsActive() bool {
	return s != Idle
}
