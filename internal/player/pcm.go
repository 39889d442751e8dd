package player

import "time"

// PCMBuffer holds a fully decoded track as 16-bit interleaved samples. It is
// owned by exactly one playback operation and released when that operation
// ends.
type PCMBuffer struct {
	Channels   int
	SampleRate int
	Samples    []int16
}

// Frames returns the number of sample frames (samples per channel).
func (b *PCMBuffer) Frames() int {
	if b.Channels == 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Size returns the buffer size in bytes.
func (b *PCMBuffer) Size() int {
	return len(b.Samples) * 2
}

// Duration returns the playback duration of the buffer.
func (b *PCMBuffer) Duration() time.Duration {
	if b.SampleRate == 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}
