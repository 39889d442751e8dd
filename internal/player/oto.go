package player

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/gopxl/beep/v2"
)

// OtoOutput is the production Output backed by oto. The oto context can only
// be created once per process, so it is initialized lazily with the first
// track's format; later tracks with a different format are conformed to the
// device format on submit.
type OtoOutput struct {
	mu        sync.Mutex
	ctx       *oto.Context
	deviceFmt Format
}

// NewOtoOutput creates an oto-backed output.
func NewOtoOutput() *OtoOutput {
	return &OtoOutput{}
}

// Open prepares a sink for the given PCM format.
func (o *OtoOutput) Open(format Format) (Sink, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ctx == nil {
		op := &oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			return nil, fmt.Errorf("open audio output: %w", err)
		}
		<-ready
		o.ctx = ctx
		o.deviceFmt = format
	}

	return &otoSink{ctx: o.ctx, deviceFmt: o.deviceFmt}, nil
}

var errSinkClosed = errors.New("output: sink closed")

// otoPlayer is the slice of oto.Player the sink relies on.
type otoPlayer interface {
	Play()
	Pause()
	IsPlaying() bool
	Close() error
}

// otoSink is one oto playback stream.
type otoSink struct {
	mu        sync.Mutex
	ctx       *oto.Context
	deviceFmt Format
	player    otoPlayer
	paused    bool
	closed    bool
}

// Submit hands the whole buffer to oto and starts playback.
func (s *otoSink) Submit(buf *PCMBuffer) error {
	conformed, err := conform(buf, s.deviceFmt)
	if err != nil {
		return fmt.Errorf("conform pcm to device format: %w", err)
	}
	data := encodePCM(conformed)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errSinkClosed
	}
	s.player = s.ctx.NewPlayer(bytes.NewReader(data))
	s.paused = false
	s.player.Play()
	return nil
}

// Consumed reports whether oto has drained the submitted buffer. A paused
// player also reports IsPlaying false, so the paused flag keeps a suspended
// stream with undrained audio from looking finished.
func (s *otoSink) Consumed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player != nil && !s.closed && !s.paused && !s.player.IsPlaying()
}

// Pause suspends playback without losing position.
func (s *otoSink) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player != nil && !s.closed {
		s.player.Pause()
		s.paused = true
	}
}

// Resume continues paused playback.
func (s *otoSink) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player != nil && !s.closed {
		s.player.Play()
		s.paused = false
	}
}

// Reset discards any buffered audio immediately.
func (s *otoSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player != nil {
		s.player.Close()
		s.player = nil
	}
}

// Close releases the sink. Idempotent.
func (s *otoSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.player != nil {
		s.player.Close()
		s.player = nil
	}
}

// conform resamples and remaps a buffer to the device format.
func conform(buf *PCMBuffer, target Format) (*PCMBuffer, error) {
	if buf.SampleRate == target.SampleRate && buf.Channels == target.Channels {
		return buf, nil
	}

	var s beep.Streamer = &bufferStreamer{buf: buf}
	if buf.SampleRate != target.SampleRate {
		s = beep.Resample(4, beep.SampleRate(buf.SampleRate), beep.SampleRate(target.SampleRate), s)
	}
	return drain(s, beep.Format{
		SampleRate:  beep.SampleRate(target.SampleRate),
		NumChannels: target.Channels,
		Precision:   2,
	})
}

// bufferStreamer replays a PCMBuffer as a beep.Streamer.
type bufferStreamer struct {
	buf *PCMBuffer
	pos int
}

func (b *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	total := len(b.buf.Samples)
	for n < len(samples) && b.pos < total {
		if b.buf.Channels == 2 && b.pos+1 < total {
			samples[n][0] = float64(b.buf.Samples[b.pos]) / 32768.0
			samples[n][1] = float64(b.buf.Samples[b.pos+1]) / 32768.0
			b.pos += 2
		} else {
			v := float64(b.buf.Samples[b.pos]) / 32768.0
			samples[n][0] = v
			samples[n][1] = v
			b.pos++
		}
		n++
	}
	return n, n > 0
}

func (b *bufferStreamer) Err() error { return nil }

// encodePCM serializes samples as little-endian 16-bit, the layout oto's
// FormatSignedInt16LE expects.
func encodePCM(buf *PCMBuffer) []byte {
	data := make([]byte, len(buf.Samples)*2)
	for i, sample := range buf.Samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(sample)) //nolint:gosec // audio samples
	}
	return data
}

// Verify OtoOutput implements Output at compile time.
var _ Output = (*OtoOutput)(nil)
