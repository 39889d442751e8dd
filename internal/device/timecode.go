package device

import "fmt"

// TMSF is a track/minute/second/frame timecode packed into 32 bits, one byte
// per field with the track in the lowest byte.
type TMSF uint32

// MakeTMSF packs the four fields into a timecode.
func MakeTMSF(track, minute, second, frame int) TMSF {
	return TMSF((uint32(track) & 0xff) |
		(uint32(minute)&0xff)<<8 |
		(uint32(second)&0xff)<<16 |
		(uint32(frame)&0xff)<<24)
}

// Track returns the track field.
func (t TMSF) Track() int { return int(t & 0xff) }

// Minute returns the minute field.
func (t TMSF) Minute() int { return int((t >> 8) & 0xff) }

// Second returns the second field.
func (t TMSF) Second() int { return int((t >> 16) & 0xff) }

// Frame returns the frame field.
func (t TMSF) Frame() int { return int((t >> 24) & 0xff) }

func (t TMSF) String() string {
	return fmt.Sprintf("%d:%02d:%02d.%02d", t.Track(), t.Minute(), t.Second(), t.Frame())
}
