package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touchTrack(t *testing.T, dir string, track int, format Format) {
	t.Helper()
	path := filepath.Join(dir, trackName(track, format))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestResolvePriorityOrder(t *testing.T) {
	tests := []struct {
		name    string
		present []Format
		want    Format
	}{
		{name: "wav beats flac", present: []Format{FormatFLAC, FormatWAV}, want: FormatWAV},
		{name: "flac beats mp3", present: []Format{FormatMP3, FormatFLAC}, want: FormatFLAC},
		{name: "mp3 beats ogg", present: []Format{FormatOGG, FormatMP3}, want: FormatMP3},
		{name: "ogg beats opus", present: []Format{FormatOpus, FormatOGG}, want: FormatOGG},
		{name: "all five", present: []Format{FormatOpus, FormatOGG, FormatMP3, FormatFLAC, FormatWAV}, want: FormatWAV},
		{name: "opus alone", present: []Format{FormatOpus}, want: FormatOpus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.present {
				touchTrack(t, dir, 2, f)
			}

			desc := New(dir).Resolve(2)
			assert.Equal(t, tt.want, desc.Format)
			assert.Equal(t, filepath.Join(dir, trackName(2, tt.want)), desc.Path)
			assert.Equal(t, 2, desc.Track)
		})
	}
}

func TestResolveMissingTrack(t *testing.T) {
	desc := New(t.TempDir()).Resolve(7)
	assert.Equal(t, FormatUnknown, desc.Format)
	assert.Empty(t, desc.Path)
	assert.Equal(t, 7, desc.Track)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	touchTrack(t, dir, 3, FormatOGG)

	lib := New(dir)
	assert.True(t, lib.Exists(3))
	assert.False(t, lib.Exists(4))
}

func TestCountTracksContiguous(t *testing.T) {
	dir := t.TempDir()
	for track := 2; track <= 6; track++ {
		touchTrack(t, dir, track, FormatFLAC)
	}

	// 5 found + 1 reserved data slot.
	assert.Equal(t, 6, New(dir).CountTracks())
}

func TestCountTracksEmptyLibrary(t *testing.T) {
	assert.Equal(t, DefaultTrackCount, New(t.TempDir()).CountTracks())
}

func TestCountTracksLeadingGap(t *testing.T) {
	dir := t.TempDir()
	touchTrack(t, dir, 5, FormatMP3)
	touchTrack(t, dir, 6, FormatMP3)

	// A gap before the first track is not terminal; the scan continues and
	// still finds tracks 5 and 6.
	assert.Equal(t, 3, New(dir).CountTracks())
}

func TestCountTracksStopsAtFirstGapAfterHit(t *testing.T) {
	dir := t.TempDir()
	touchTrack(t, dir, 2, FormatWAV)
	touchTrack(t, dir, 3, FormatWAV)
	touchTrack(t, dir, 8, FormatWAV) // hidden behind the gap

	assert.Equal(t, 3, New(dir).CountTracks())
}

func TestFormatStringAndExt(t *testing.T) {
	assert.Equal(t, "flac", FormatFLAC.String())
	assert.Equal(t, ".opus", FormatOpus.Ext())
	assert.Equal(t, "", FormatUnknown.Ext())
}
