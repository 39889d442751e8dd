// internal/device/device.go
package device

import (
	"log/slog"
	"sync"

	"github.com/platter-audio/platter/internal/library"
	"github.com/platter-audio/platter/internal/player"
)

// Every audio track reports the same fixed length.
const trackLengthMillis = 180000

// Initial values a freshly constructed or closed device reports.
const (
	initialTrack      = library.FirstTrack
	initialTrackCount = library.DefaultTrackCount
)

// TimeFormat selects how positional command parameters are interpreted.
type TimeFormat int

const (
	// TimeFormatTMSF treats positional values as packed timecodes; only the
	// track byte is honored.
	TimeFormatTMSF TimeFormat = iota
	// TimeFormatTrack treats positional values as raw track numbers.
	TimeFormatTrack
)

func (f TimeFormat) String() string {
	switch f {
	case TimeFormatTMSF:
		return "tmsf"
	case TimeFormatTrack:
		return "track"
	default:
		return "unknown"
	}
}

// Mode is the transport state reported by status queries.
type Mode int

const (
	ModeStopped Mode = iota
	ModePlaying
	ModePaused
)

func (m Mode) String() string {
	switch m {
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	default:
		return "stopped"
	}
}

// StatusItem selects what a status query reports.
type StatusItem int

const (
	StatusNumberOfTracks StatusItem = iota + 1
	StatusCurrentTrack
	StatusLength
	StatusMode
	StatusMediaPresent
	StatusReady
	StatusPosition
	StatusTimeFormat
	StatusTrackType
)

// TrackTypeAudio is the only track type this device serves.
const TrackTypeAudio = 1

// CapItem selects what a capability query reports.
type CapItem int

const (
	CapCanPlay CapItem = iota + 1
	CapHasAudio
	CapCanRecord
	CapHasVideo
	CapCanEject
	CapCanSave
	CapUsesFiles
	CapCompoundDevice
	CapDeviceType
)

// TypeAudioDisc is the value reported for the device-type capability.
const TypeAudioDisc = 516

// Device is a virtual disc player over a file-backed track library. All
// command methods are safe for concurrent use.
type Device struct {
	// cmdMu serializes the commands that span several steps (play, stop,
	// close), so a close cannot interleave with a play's stop-resolve-start
	// sequence and leave playback running on a closed device. mu guards the
	// fields and is never held across controller calls.
	cmdMu sync.Mutex

	mu   sync.Mutex
	lib  *library.Library
	ctrl *player.Controller
	log  *slog.Logger

	open         bool
	currentTrack int
	trackCount   int
	timeFormat   TimeFormat
}

// New constructs a closed device over the given library and controller.
func New(lib *library.Library, ctrl *player.Controller, log *slog.Logger) *Device {
	return &Device{
		lib:          lib,
		ctrl:         ctrl,
		log:          log,
		currentTrack: initialTrack,
		trackCount:   initialTrackCount,
		timeFormat:   TimeFormatTMSF,
	}
}

// Open marks the device ready and takes a fresh count of available tracks.
// Open is the only command accepted on a closed device.
func (d *Device) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = true
	d.trackCount = d.lib.CountTracks()
	d.log.Info("open", "tracks", d.trackCount)
	return nil
}

// Close stops playback and returns the device to its initial state.
func (d *Device) Close() error {
	d.cmdMu.Lock()
	defer d.cmdMu.Unlock()

	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return ErrNotReady
	}
	d.mu.Unlock()

	d.log.Info("close")
	d.ctrl.Stop()

	d.mu.Lock()
	d.open = false
	d.currentTrack = initialTrack
	d.trackCount = initialTrackCount
	d.timeFormat = TimeFormatTMSF
	d.mu.Unlock()
	return nil
}

// Play starts playback of the track named by from, or of the current track
// when from is nil. The current track is updated only when the track
// resolves to a file.
func (d *Device) Play(from *int) error {
	d.cmdMu.Lock()
	defer d.cmdMu.Unlock()

	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return ErrNotReady
	}
	track := d.currentTrack
	if from != nil {
		track = d.positionTrackLocked(*from)
	}
	d.mu.Unlock()

	// Current playback always stops, even when the requested track turns
	// out not to exist.
	d.ctrl.Stop()

	desc := d.lib.Resolve(track)
	if desc.Format == library.FormatUnknown {
		d.log.Error("no audio file found for track", "track", track)
		return ErrTrackNotFound
	}

	d.mu.Lock()
	d.currentTrack = track
	d.mu.Unlock()

	d.ctrl.Play(desc)
	return nil
}

// Stop halts playback. A stop with nothing playing succeeds.
func (d *Device) Stop() error {
	d.cmdMu.Lock()
	defer d.cmdMu.Unlock()

	if err := d.ready(); err != nil {
		return err
	}
	d.log.Info("stop")
	d.ctrl.Stop()
	return nil
}

// Pause suspends playback; a no-op unless currently playing.
func (d *Device) Pause() error {
	if err := d.ready(); err != nil {
		return err
	}
	d.ctrl.Pause()
	return nil
}

// Resume continues paused playback; a no-op unless currently paused.
func (d *Device) Resume() error {
	if err := d.ready(); err != nil {
		return err
	}
	d.ctrl.Resume()
	return nil
}

// Seek repositions the current track without touching playback.
func (d *Device) Seek(to int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return ErrNotReady
	}
	d.currentTrack = d.positionTrackLocked(to)
	d.log.Info("seek", "track", d.currentTrack)
	return nil
}

// SetTimeFormat switches how positional parameters are interpreted.
func (d *Device) SetTimeFormat(f TimeFormat) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return ErrNotReady
	}
	d.timeFormat = f
	d.log.Info("set time format", "format", f.String())
	return nil
}

// TimeFormat reports the current positional format.
func (d *Device) TimeFormat() (TimeFormat, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return 0, ErrNotReady
	}
	return d.timeFormat, nil
}

// Status answers a status query. Unknown items report 0 rather than failing.
func (d *Device) Status(item StatusItem) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return 0, ErrNotReady
	}
	switch item {
	case StatusNumberOfTracks:
		return d.trackCount, nil
	case StatusCurrentTrack:
		return d.currentTrack, nil
	case StatusLength:
		return trackLengthMillis, nil
	case StatusMode:
		return int(d.modeLocked()), nil
	case StatusMediaPresent, StatusReady:
		return 1, nil
	case StatusPosition:
		return int(MakeTMSF(d.currentTrack, 0, 0, 0)), nil
	case StatusTimeFormat:
		return int(d.timeFormat), nil
	case StatusTrackType:
		return TrackTypeAudio, nil
	default:
		return 0, nil
	}
}

// Mode reports the current transport mode.
func (d *Device) Mode() (Mode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return 0, ErrNotReady
	}
	return d.modeLocked(), nil
}

func (d *Device) modeLocked() Mode {
	switch d.ctrl.State() {
	case player.Playing:
		return ModePlaying
	case player.Paused:
		return ModePaused
	default:
		return ModeStopped
	}
}

// Capability answers a capability query. The answers are fixed: the device
// plays audio and nothing else. Unknown items report 0.
func (d *Device) Capability(item CapItem) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return 0, ErrNotReady
	}
	switch item {
	case CapCanPlay, CapHasAudio:
		return 1, nil
	case CapCanRecord, CapHasVideo, CapCanEject, CapCanSave,
		CapUsesFiles, CapCompoundDevice:
		return 0, nil
	case CapDeviceType:
		return TypeAudioDisc, nil
	default:
		return 0, nil
	}
}

// Info returns the device product string. The device does not advertise one.
func (d *Device) Info() (string, error) {
	if err := d.ready(); err != nil {
		return "", err
	}
	return "", nil
}

func (d *Device) ready() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return ErrNotReady
	}
	return nil
}

// positionTrackLocked extracts the track number from a positional value
// according to the current time format.
func (d *Device) positionTrackLocked(pos int) int {
	if d.timeFormat == TimeFormatTMSF {
		return TMSF(uint32(pos)).Track()
	}
	return pos
}
