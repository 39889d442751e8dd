package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchBeforeOpen(t *testing.T) {
	d, _ := newTestDevice(t.TempDir())

	for _, cmd := range []Command{CmdClose, CmdPlay, CmdStop, CmdPause,
		CmdResume, CmdSeek, CmdStatus, CmdCapability, CmdSetTimeFormat,
		CmdInfo, Command(99)} {
		_, err := d.Dispatch(Request{Command: cmd})
		assert.ErrorIs(t, err, ErrNotReady, cmd.String())
	}

	_, err := d.Dispatch(Request{Command: CmdOpen})
	assert.NoError(t, err)
}

func TestDispatchUnknownCommand(t *testing.T) {
	d, _ := newTestDevice(t.TempDir())
	require.NoError(t, d.Open())

	_, err := d.Dispatch(Request{Command: Command(99)})
	assert.ErrorIs(t, err, ErrUnrecognizedCommand)
	assert.Equal(t, 2, statusValue(t, d, StatusCurrentTrack))
}

func TestDispatchMissingItem(t *testing.T) {
	d, _ := newTestDevice(t.TempDir())
	require.NoError(t, d.Open())

	_, err := d.Dispatch(Request{Command: CmdStatus})
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = d.Dispatch(Request{Command: CmdCapability})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestDispatchSeekWithoutTargetIsNoop(t *testing.T) {
	d, _ := newTestDevice(t.TempDir())
	require.NoError(t, d.Open())

	_, err := d.Dispatch(Request{Command: CmdSeek})
	require.NoError(t, err)
	assert.Equal(t, 2, statusValue(t, d, StatusCurrentTrack))
}

func TestDispatchStatusAndCapability(t *testing.T) {
	d, _ := newTestDevice(t.TempDir())
	require.NoError(t, d.Open())

	item := int(StatusLength)
	resp, err := d.Dispatch(Request{Command: CmdStatus, Item: &item})
	require.NoError(t, err)
	assert.Equal(t, 180000, resp.Value)

	item = int(CapDeviceType)
	resp, err = d.Dispatch(Request{Command: CmdCapability, Item: &item})
	require.NoError(t, err)
	assert.Equal(t, TypeAudioDisc, resp.Value)
}

func TestDispatchInfo(t *testing.T) {
	d, _ := newTestDevice(t.TempDir())
	require.NoError(t, d.Open())

	resp, err := d.Dispatch(Request{Command: CmdInfo})
	require.NoError(t, err)
	assert.Equal(t, "", resp.Text)
}
