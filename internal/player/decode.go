package player

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"

	"github.com/platter-audio/platter/internal/library"
)

var (
	// ErrNoFrames is returned when a file decodes to zero audio frames.
	ErrNoFrames = errors.New("decode: no audio frames")

	// ErrUnknownFormat is returned for a descriptor with no resolved format.
	ErrUnknownFormat = errors.New("decode: unknown format")
)

// DecodeFunc decodes one track file into PCM. The controller takes this as an
// injected dependency so tests can substitute scripted decoders.
type DecodeFunc func(path string, format library.Format) (*PCMBuffer, error)

// Decode reads the whole file at path into 16-bit interleaved PCM. There is
// no streaming path: the buffer holds the entire track before playback
// starts. On any failure nothing is retained.
func Decode(path string, format library.Format) (*PCMBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	defer f.Close()

	var (
		streamer beep.Streamer
		bf       beep.Format
	)

	switch format {
	case library.FormatWAV:
		streamer, bf, err = wav.Decode(f)
	case library.FormatFLAC:
		// Skip an ID3v2 tag if present; some taggers prepend one and the
		// FLAC decoder rejects the file otherwise.
		if err = skipID3v2(f); err == nil {
			streamer, bf, err = flac.Decode(f)
		}
	case library.FormatMP3:
		streamer, bf, err = decodeMP3(f)
	case library.FormatOGG, library.FormatOpus:
		streamer, bf, err = decodeOgg(f)
	default:
		return nil, ErrUnknownFormat
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	buf, err := drain(streamer, bf)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return buf, nil
}

// drain pulls the full stream into an interleaved int16 buffer.
func drain(s beep.Streamer, format beep.Format) (*PCMBuffer, error) {
	channels := format.NumChannels
	if channels < 1 {
		channels = 1
	}
	if channels > 2 {
		channels = 2
	}

	var samples []int16
	chunk := make([][2]float64, 2048)
	for {
		n, ok := s.Stream(chunk)
		for i := 0; i < n; i++ {
			samples = append(samples, sampleToInt16(chunk[i][0]))
			if channels == 2 {
				samples = append(samples, sampleToInt16(chunk[i][1]))
			}
		}
		if !ok {
			break
		}
	}

	if errer, ok := s.(interface{ Err() error }); ok {
		if err := errer.Err(); err != nil {
			return nil, err
		}
	}
	if len(samples) == 0 {
		return nil, ErrNoFrames
	}

	return &PCMBuffer{
		Channels:   channels,
		SampleRate: int(format.SampleRate),
		Samples:    samples,
	}, nil
}

func sampleToInt16(v float64) int16 {
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return int16(v * 32767)
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the file.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := r.Read(header)
	if err != nil {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// ID3v2 size is a syncsafe integer in bytes 6-9 (7 bits per byte).
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
