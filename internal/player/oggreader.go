package player

import (
	"encoding/binary"
	"errors"
	"io"
)

var (
	errInvalidOggMagic   = errors.New("ogg: invalid capture pattern")
	errInvalidOggVersion = errors.New("ogg: unsupported version")
)

// oggPageHeader represents the header of an Ogg page.
type oggPageHeader struct {
	Continued    bool
	GranulePos   int64
	SerialNumber uint32
	SequenceNum  uint32
	NumSegments  uint8
	SegmentTable []uint8
}

// parseOggPageHeader reads and parses an Ogg page header from the reader.
func parseOggPageHeader(r io.Reader) (*oggPageHeader, error) {
	// Fixed header is 27 bytes
	var buf [27]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}

	// Capture pattern "OggS"
	if string(buf[0:4]) != "OggS" {
		return nil, errInvalidOggMagic
	}

	// Version must be 0
	if buf[4] != 0 {
		return nil, errInvalidOggVersion
	}

	hdr := &oggPageHeader{
		Continued:    buf[5]&0x01 != 0,
		GranulePos:   int64(binary.LittleEndian.Uint64(buf[6:14])),
		SerialNumber: binary.LittleEndian.Uint32(buf[14:18]),
		SequenceNum:  binary.LittleEndian.Uint32(buf[18:22]),
		// checksum at buf[22:26] - skip validation
		NumSegments: buf[26],
	}

	if hdr.NumSegments > 0 {
		hdr.SegmentTable = make([]uint8, hdr.NumSegments)
		if _, err := io.ReadFull(r, hdr.SegmentTable); err != nil {
			return nil, err
		}
	}

	return hdr, nil
}

// readOggPageBody reads the page payload and splits it into packets using the
// lacing values. A packet whose final lacing value is 255 spills onto the
// next page; its accumulated bytes are returned as partial instead.
func readOggPageBody(r io.Reader, hdr *oggPageHeader) (packets [][]byte, partial []byte, err error) {
	total := 0
	for _, lacing := range hdr.SegmentTable {
		total += int(lacing)
	}

	body := make([]byte, total)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, nil, err
	}

	var cur []byte
	offset := 0
	for _, lacing := range hdr.SegmentTable {
		cur = append(cur, body[offset:offset+int(lacing)]...)
		offset += int(lacing)
		if lacing < 255 {
			packets = append(packets, cur)
			cur = nil
		}
	}
	return packets, cur, nil
}

// oggPacketReader yields complete logical packets, joining packets that span
// page boundaries via the continuation flag.
type oggPacketReader struct {
	r       io.Reader
	pending [][]byte
	partial []byte
}

// next returns the next complete packet, or io.EOF at end of stream.
func (pr *oggPacketReader) next() ([]byte, error) {
	for len(pr.pending) == 0 {
		hdr, err := parseOggPageHeader(pr.r)
		if err != nil {
			return nil, err
		}
		packets, partial, err := readOggPageBody(pr.r, hdr)
		if err != nil {
			return nil, err
		}

		if len(pr.partial) > 0 {
			if hdr.Continued {
				if len(packets) > 0 {
					packets[0] = joinPacket(pr.partial, packets[0])
				} else if partial != nil {
					partial = joinPacket(pr.partial, partial)
				}
			}
			// A non-continued page after a partial means the stream is
			// truncated or corrupt; the partial is dropped.
		}

		pr.pending = packets
		pr.partial = partial
	}

	pkt := pr.pending[0]
	pr.pending = pr.pending[1:]
	return pkt, nil
}

func joinPacket(head, tail []byte) []byte {
	joined := make([]byte, 0, len(head)+len(tail))
	joined = append(joined, head...)
	return append(joined, tail...)
}
