package player

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platter-audio/platter/internal/library"
)

// wavBytes builds a minimal PCM16 WAV file in memory.
func wavBytes(channels, rate, frames int) []byte {
	dataSize := frames * channels * 2
	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+dataSize))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&b, binary.LittleEndian, uint16(channels))
	binary.Write(&b, binary.LittleEndian, uint32(rate))
	binary.Write(&b, binary.LittleEndian, uint32(rate*channels*2))
	binary.Write(&b, binary.LittleEndian, uint16(channels*2))
	binary.Write(&b, binary.LittleEndian, uint16(16))
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(dataSize))
	for i := 0; i < frames*channels; i++ {
		binary.Write(&b, binary.LittleEndian, int16(i%128))
	}
	return b.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDecodeWAVStereo(t *testing.T) {
	path := writeFile(t, t.TempDir(), "track02.wav", wavBytes(2, 8000, 64))

	buf, err := Decode(path, library.FormatWAV)
	require.NoError(t, err)
	assert.Equal(t, 2, buf.Channels)
	assert.Equal(t, 8000, buf.SampleRate)
	assert.Equal(t, 64, buf.Frames())
	assert.Equal(t, 256, buf.Size())
}

func TestDecodeWAVMono(t *testing.T) {
	path := writeFile(t, t.TempDir(), "track02.wav", wavBytes(1, 11025, 32))

	buf, err := Decode(path, library.FormatWAV)
	require.NoError(t, err)
	assert.Equal(t, 1, buf.Channels)
	assert.Equal(t, 11025, buf.SampleRate)
	assert.Equal(t, 32, buf.Frames())
}

func TestDecodeEmptyWAV(t *testing.T) {
	path := writeFile(t, t.TempDir(), "track02.wav", wavBytes(2, 8000, 0))

	_, err := Decode(path, library.FormatWAV)
	assert.Error(t, err)
}

func TestDecodeUnknownFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "track02", []byte("data"))

	_, err := Decode(path, library.FormatUnknown)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecodeMissingFile(t *testing.T) {
	_, err := Decode(filepath.Join(t.TempDir(), "track02.wav"), library.FormatWAV)
	assert.Error(t, err)
}

func TestDecodeBadFLAC(t *testing.T) {
	path := writeFile(t, t.TempDir(), "track02.flac", []byte("not a flac stream at all"))

	_, err := Decode(path, library.FormatFLAC)
	assert.Error(t, err)
}

func TestDecodeBadMP3(t *testing.T) {
	path := writeFile(t, t.TempDir(), "track02.mp3", bytes.Repeat([]byte{0x00}, 512))

	_, err := Decode(path, library.FormatMP3)
	assert.Error(t, err)
}

func TestDecodeBadOgg(t *testing.T) {
	path := writeFile(t, t.TempDir(), "track02.ogg", []byte("OggX not a real page"))

	_, err := Decode(path, library.FormatOGG)
	assert.Error(t, err)
}

func TestSkipID3v2(t *testing.T) {
	tagBody := bytes.Repeat([]byte{0xAA}, 10)
	var b bytes.Buffer
	b.WriteString("ID3")
	b.Write([]byte{0x03, 0x00, 0x00})             // version + flags
	b.Write([]byte{0x00, 0x00, 0x00, byte(10)}) // syncsafe size
	b.Write(tagBody)
	b.WriteString("fLaC")

	r := bytes.NewReader(b.Bytes())
	require.NoError(t, skipID3v2(r))

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "fLaC", string(rest))
}

func TestSkipID3v2NoTag(t *testing.T) {
	r := bytes.NewReader([]byte("fLaC and then some stream"))
	require.NoError(t, skipID3v2(r))

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "fLaC and then some stream", string(rest))
}
