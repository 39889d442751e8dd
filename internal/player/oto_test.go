package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePCM(t *testing.T) {
	buf := &PCMBuffer{Channels: 1, SampleRate: 8000, Samples: []int16{0, 1, -1, 32767, -32768}}
	data := encodePCM(buf)

	assert.Equal(t, []byte{
		0x00, 0x00,
		0x01, 0x00,
		0xFF, 0xFF,
		0xFF, 0x7F,
		0x00, 0x80,
	}, data)
}

func TestConformPassthrough(t *testing.T) {
	buf := &PCMBuffer{Channels: 2, SampleRate: 44100, Samples: make([]int16, 128)}

	out, err := conform(buf, Format{Channels: 2, SampleRate: 44100})
	require.NoError(t, err)
	assert.Same(t, buf, out)
}

func TestConformMonoToStereo(t *testing.T) {
	buf := &PCMBuffer{Channels: 1, SampleRate: 44100, Samples: []int16{100, 200, 300, 400}}

	out, err := conform(buf, Format{Channels: 2, SampleRate: 44100})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Channels)
	assert.Equal(t, 4, out.Frames())
	// Mono samples are duplicated onto both channels.
	assert.Equal(t, out.Samples[0], out.Samples[1])
	assert.Equal(t, out.Samples[2], out.Samples[3])
}

func TestConformResamples(t *testing.T) {
	buf := &PCMBuffer{Channels: 2, SampleRate: 22050, Samples: make([]int16, 22050*2)}
	for i := range buf.Samples {
		buf.Samples[i] = int16(i % 1000)
	}

	out, err := conform(buf, Format{Channels: 2, SampleRate: 44100})
	require.NoError(t, err)
	assert.Equal(t, 44100, out.SampleRate)
	// One second of audio in, roughly one second out.
	assert.InDelta(t, 44100, out.Frames(), 200)
}

func TestBufferStreamerReplaysAll(t *testing.T) {
	buf := &PCMBuffer{Channels: 2, SampleRate: 8000, Samples: []int16{1, 2, 3, 4, 5, 6}}
	bs := &bufferStreamer{buf: buf}

	chunk := make([][2]float64, 2)
	n, ok := bs.Stream(chunk)
	assert.Equal(t, 2, n)
	assert.True(t, ok)

	n, ok = bs.Stream(chunk)
	assert.Equal(t, 1, n)
	assert.True(t, ok)

	n, ok = bs.Stream(chunk)
	assert.Equal(t, 0, n)
	assert.False(t, ok)
}

// fakeOtoPlayer stands in for an oto player. Like the real one, IsPlaying
// reports false while paused.
type fakeOtoPlayer struct {
	playing bool
	paused  bool
}

func (p *fakeOtoPlayer) Play()    { p.playing = true; p.paused = false }
func (p *fakeOtoPlayer) Pause()   { p.playing = false; p.paused = true }
func (p *fakeOtoPlayer) IsPlaying() bool { return p.playing }
func (p *fakeOtoPlayer) Close() error    { p.playing = false; return nil }

func (p *fakeOtoPlayer) finish() { p.playing = false; p.paused = false }

func TestOtoSinkConsumedNotTriggeredByPause(t *testing.T) {
	fake := &fakeOtoPlayer{}
	fake.Play()
	sink := &otoSink{player: fake}

	assert.False(t, sink.Consumed())

	// A paused stream still holds undrained audio; it must not look
	// finished even though the player reports not playing.
	sink.Pause()
	assert.False(t, fake.IsPlaying())
	assert.False(t, sink.Consumed())

	sink.Resume()
	assert.False(t, sink.Consumed())

	// Only an actually drained buffer counts as consumed.
	fake.finish()
	assert.True(t, sink.Consumed())
}

func TestOtoSinkConsumedAfterCloseOrReset(t *testing.T) {
	fake := &fakeOtoPlayer{}
	fake.Play()
	sink := &otoSink{player: fake}

	sink.Reset()
	assert.False(t, sink.Consumed())

	sink.Close()
	assert.False(t, sink.Consumed())
}
