package player

import (
	"encoding/binary"
	"errors"

	"github.com/jfreymuth/vorbis"
	"github.com/jj11hh/opus"
)

// opusSampleRate is fixed: Opus always decodes at 48 kHz regardless of the
// rate recorded in the stream header.
const opusSampleRate = 48000

var (
	errUnknownOggCodec     = errors.New("ogg: unknown codec (not Opus or Vorbis)")
	errInvalidOpusHead     = errors.New("opus: invalid OpusHead packet")
	errUnsupportedOpus     = errors.New("opus: unsupported version")
	errInvalidVorbisHeader = errors.New("vorbis: invalid identification header")
)

// oggCodec handles codec-specific header parsing and packet decoding for Ogg
// streams.
type oggCodec interface {
	// SampleRate returns the decoded audio sample rate.
	SampleRate() int

	// Channels returns the number of audio channels.
	Channels() int

	// AddHeaderPacket feeds one header packet. Calling with an empty packet
	// only queries completion. Returns true once all headers are in and the
	// decoder is ready.
	AddHeaderPacket(packet []byte) (complete bool, err error)

	// Decode decodes an audio packet into pcm, returning samples per channel.
	Decode(packet []byte, pcm []float32) (samplesPerChannel int, err error)
}

// detectOggCodec identifies the codec from the stream's first packet.
func detectOggCodec(firstPacket []byte) (oggCodec, error) {
	// Opus: starts with "OpusHead"
	if len(firstPacket) >= 8 && string(firstPacket[:8]) == "OpusHead" {
		return newOpusCodec(firstPacket)
	}

	// Vorbis: 0x01 + "vorbis"
	if len(firstPacket) >= 7 && firstPacket[0] == 0x01 && string(firstPacket[1:7]) == "vorbis" {
		return newVorbisCodec(firstPacket)
	}

	return nil, errUnknownOggCodec
}

// opusCodec decodes Ogg/Opus streams via jj11hh/opus.
type opusCodec struct {
	decoder  *opus.Decoder
	channels int
	tagsRead bool
}

func newOpusCodec(packet []byte) (*opusCodec, error) {
	// OpusHead: [8]=version (must be 1), [9]=channels, [10:12]=pre-skip,
	// [12:16]=input sample rate (informational only, output is 48 kHz).
	if len(packet) < 19 {
		return nil, errInvalidOpusHead
	}
	if packet[8] != 1 {
		return nil, errUnsupportedOpus
	}

	channels := int(packet[9])
	decoder, err := opus.NewDecoder(opusSampleRate, channels)
	if err != nil {
		return nil, err
	}

	return &opusCodec{decoder: decoder, channels: channels}, nil
}

func (c *opusCodec) SampleRate() int { return opusSampleRate }

func (c *opusCodec) Channels() int { return c.channels }

// AddHeaderPacket consumes the OpusTags packet that always follows OpusHead.
func (c *opusCodec) AddHeaderPacket(packet []byte) (bool, error) {
	if len(packet) == 0 {
		return c.tagsRead, nil
	}
	c.tagsRead = true
	return true, nil
}

func (c *opusCodec) Decode(packet []byte, pcm []float32) (int, error) {
	return c.decoder.DecodeFloat32(packet, pcm)
}

// vorbisCodec decodes Ogg/Vorbis streams via jfreymuth/vorbis.
type vorbisCodec struct {
	decoder       *vorbis.Decoder
	channels      int
	sampleRate    int
	headerPackets [][]byte // identification, comment, setup
}

func newVorbisCodec(packet []byte) (*vorbisCodec, error) {
	// Identification header: [0]=0x01, [1:7]="vorbis", [7:11]=version
	// (must be 0), [11]=channels, [12:16]=sample rate.
	if len(packet) < 16 {
		return nil, errInvalidVorbisHeader
	}
	if binary.LittleEndian.Uint32(packet[7:11]) != 0 {
		return nil, errInvalidVorbisHeader
	}

	ident := make([]byte, len(packet))
	copy(ident, packet)

	return &vorbisCodec{
		channels:      int(packet[11]),
		sampleRate:    int(binary.LittleEndian.Uint32(packet[12:16])),
		headerPackets: [][]byte{ident},
	}, nil
}

func (c *vorbisCodec) SampleRate() int { return c.sampleRate }

func (c *vorbisCodec) Channels() int { return c.channels }

// AddHeaderPacket collects the three Vorbis headers and initializes the
// decoder once all are present.
func (c *vorbisCodec) AddHeaderPacket(packet []byte) (bool, error) {
	if c.decoder != nil {
		return true, nil
	}
	if len(packet) == 0 {
		return false, nil
	}

	hdr := make([]byte, len(packet))
	copy(hdr, packet)
	c.headerPackets = append(c.headerPackets, hdr)

	if len(c.headerPackets) >= 3 {
		decoder := &vorbis.Decoder{}
		for _, h := range c.headerPackets {
			if err := decoder.ReadHeader(h); err != nil {
				return false, err
			}
		}
		c.decoder = decoder
		c.headerPackets = nil
		return true, nil
	}

	return false, nil
}

var errVorbisBufferTooSmall = errors.New("vorbis: output buffer too small")

func (c *vorbisCodec) Decode(packet []byte, pcm []float32) (int, error) {
	samples, err := c.decoder.Decode(packet)
	if err != nil {
		return 0, err
	}
	if len(pcm) < len(samples) {
		return 0, errVorbisBufferTooSmall
	}
	n := copy(pcm, samples)
	return n / c.channels, nil
}
