// Diagnostic tool: resolve one track in a library directory and decode it
// fully, printing what the playback engine would see.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/platter-audio/platter/internal/library"
	"github.com/platter-audio/platter/internal/player"
)

func main() {
	dir := flag.String("dir", ".", "library directory")
	track := flag.Int("track", library.FirstTrack, "track number to probe")
	flag.Parse()

	lib := library.New(*dir)
	desc := lib.Resolve(*track)
	if desc.Format == library.FormatUnknown {
		log.Fatalf("no audio file found for track %d in %s", *track, *dir)
	}
	log.Printf("track %d: %s (%s)", desc.Track, desc.Path, desc.Format)

	start := time.Now()
	buf, err := player.Decode(desc.Path, desc.Format)
	if err != nil {
		log.Fatalf("decode failed: %v", err)
	}
	elapsed := time.Since(start)

	log.Printf("channels: %d", buf.Channels)
	log.Printf("sample rate: %d Hz", buf.SampleRate)
	log.Printf("frames: %d (%s)", buf.Frames(), buf.Duration().Round(time.Millisecond))
	log.Printf("pcm size: %s", humanize.IBytes(uint64(buf.Size())))
	log.Printf("decode time: %s", elapsed.Round(time.Millisecond))
}
