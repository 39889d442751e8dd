// Package library maps track numbers onto audio files on disk.
//
// A library directory holds files named trackNN.<ext>, numbered from 2
// upward (slot 1 is reserved for the data track, as on a mixed-mode disc).
// When several formats exist for the same number, the probe order below
// decides which one wins.
package library

import (
	"fmt"
	"os"
	"path/filepath"
)

// Format identifies the container/codec of a track file.
type Format int

const (
	FormatUnknown Format = iota
	FormatWAV
	FormatFLAC
	FormatMP3
	FormatOGG
	FormatOpus
)

// probeOrder is the extension priority when several files exist for one
// track number: uncompressed first, then lossless, then the lossy codecs.
var probeOrder = []Format{FormatWAV, FormatFLAC, FormatMP3, FormatOGG, FormatOpus}

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	case FormatFLAC:
		return "flac"
	case FormatMP3:
		return "mp3"
	case FormatOGG:
		return "ogg"
	case FormatOpus:
		return "opus"
	default:
		return "unknown"
	}
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatUnknown {
		return ""
	}
	return "." + f.String()
}

const (
	// FirstTrack is the lowest audio track number.
	FirstTrack = 2

	// maxTrack bounds the track scan.
	maxTrack = 99

	// DefaultTrackCount is reported when no track files exist at all.
	DefaultTrackCount = 18
)

// Descriptor names one resolved track file. Ephemeral: produced per request,
// never stored.
type Descriptor struct {
	Track  int
	Path   string
	Format Format
}

// Library resolves track numbers against a directory.
type Library struct {
	dir string
}

// New creates a library over the given directory.
func New(dir string) *Library {
	return &Library{dir: dir}
}

// Dir returns the library directory.
func (l *Library) Dir() string { return l.dir }

// Resolve probes for track files in priority order and returns the first
// match. When nothing matches, the descriptor carries FormatUnknown and an
// empty path.
func (l *Library) Resolve(track int) Descriptor {
	for _, format := range probeOrder {
		path := filepath.Join(l.dir, trackName(track, format))
		if _, err := os.Stat(path); err == nil {
			return Descriptor{Track: track, Path: path, Format: format}
		}
	}
	return Descriptor{Track: track}
}

// Exists reports whether the track resolves to a file in any format.
func (l *Library) Exists(track int) bool {
	return l.Resolve(track).Format != FormatUnknown
}

// CountTracks estimates the number of tracks on the virtual disc.
//
// It scans numbers from FirstTrack up to 99 and counts existing tracks; the
// scan keeps going over leading gaps but stops at the first gap after a track
// has been found. The result is found+1, reserving slot 1 for the data track,
// or DefaultTrackCount when nothing was found.
//
// This is a best-effort estimate: a genuine gap in the middle of a library
// hides everything behind it. Callers needing an exact inventory must
// enumerate explicitly.
func (l *Library) CountTracks() int {
	count := 0
	for i := FirstTrack; i <= maxTrack; i++ {
		if l.Exists(i) {
			count++
		} else if count > 0 {
			break
		}
	}
	if count > 0 {
		return count + 1
	}
	return DefaultTrackCount
}

func trackName(track int, format Format) string {
	return fmt.Sprintf("track%02d%s", track, format.Ext())
}
