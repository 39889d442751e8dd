package player

import (
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
)

// decodeOgg builds a streamer over an Ogg container holding either Opus or
// Vorbis audio. The codec is detected from the first packet.
func decodeOgg(r io.Reader) (beep.Streamer, beep.Format, error) {
	packets := &oggPacketReader{r: r}

	first, err := packets.next()
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("ogg: reading first packet: %w", err)
	}

	codec, err := detectOggCodec(first)
	if err != nil {
		return nil, beep.Format{}, err
	}

	// Feed header packets until the codec is ready.
	for {
		complete, err := codec.AddHeaderPacket(nil)
		if err != nil {
			return nil, beep.Format{}, err
		}
		if complete {
			break
		}

		pkt, err := packets.next()
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("ogg: incomplete headers: %w", err)
		}
		if _, err := codec.AddHeaderPacket(pkt); err != nil {
			return nil, beep.Format{}, err
		}
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(codec.SampleRate()),
		NumChannels: codec.Channels(),
		Precision:   2,
	}

	d := &oggDecoder{
		packets:   packets,
		codec:     codec,
		pcmBuffer: make([]float32, 8192*codec.Channels()),
	}
	d.pcmPos = len(d.pcmBuffer) // empty buffer triggers refill

	return d, format, nil
}

// oggDecoder implements beep.Streamer over decoded Ogg packets.
type oggDecoder struct {
	packets *oggPacketReader
	codec   oggCodec

	pcmBuffer []float32
	pcmPos    int
	err       error
}

// Stream reads audio samples into the provided buffer.
func (d *oggDecoder) Stream(samples [][2]float64) (n int, ok bool) {
	if d.err != nil {
		return 0, false
	}

	channels := d.codec.Channels()

	for n < len(samples) {
		// Use buffered PCM first
		if d.pcmPos < len(d.pcmBuffer) {
			for n < len(samples) && d.pcmPos < len(d.pcmBuffer) {
				if channels == 2 {
					samples[n][0] = float64(d.pcmBuffer[d.pcmPos])
					samples[n][1] = float64(d.pcmBuffer[d.pcmPos+1])
					d.pcmPos += 2
				} else {
					samples[n][0] = float64(d.pcmBuffer[d.pcmPos])
					samples[n][1] = float64(d.pcmBuffer[d.pcmPos])
					d.pcmPos++
				}
				n++
			}
			continue
		}

		packet, err := d.packets.next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				d.err = err
			}
			return n, n > 0
		}

		samplesPerChannel, err := d.codec.Decode(packet, d.pcmBuffer[:cap(d.pcmBuffer)])
		if err != nil {
			continue // skip invalid packets
		}
		d.pcmBuffer = d.pcmBuffer[:samplesPerChannel*channels]
		d.pcmPos = 0
	}

	return n, true
}

// Err returns any error that occurred during streaming.
func (d *oggDecoder) Err() error { return d.err }
