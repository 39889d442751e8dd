// internal/device/dispatch.go
package device

// Command identifies one entry in the device's closed command set.
type Command int

const (
	CmdOpen Command = iota + 1
	CmdClose
	CmdPlay
	CmdStop
	CmdPause
	CmdResume
	CmdSeek
	CmdStatus
	CmdCapability
	CmdSetTimeFormat
	CmdInfo
)

func (c Command) String() string {
	switch c {
	case CmdOpen:
		return "open"
	case CmdClose:
		return "close"
	case CmdPlay:
		return "play"
	case CmdStop:
		return "stop"
	case CmdPause:
		return "pause"
	case CmdResume:
		return "resume"
	case CmdSeek:
		return "seek"
	case CmdStatus:
		return "status"
	case CmdCapability:
		return "capability"
	case CmdSetTimeFormat:
		return "set time format"
	case CmdInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Request is one command with its parameters. Pointer fields are nil when
// the caller omitted them.
type Request struct {
	Command Command
	From    *int       // play start position
	To      *int       // seek target
	Item    *int       // status or capability item
	Format  TimeFormat // set-time-format argument
}

// Response carries a command's result values.
type Response struct {
	Value int
	Text  string
}

// Dispatch routes a request onto the typed command methods. Every command
// except open fails with ErrNotReady on a closed device; commands outside
// the set fail with ErrUnrecognizedCommand.
func (d *Device) Dispatch(req Request) (Response, error) {
	if req.Command != CmdOpen {
		if err := d.ready(); err != nil {
			return Response{}, err
		}
	}

	switch req.Command {
	case CmdOpen:
		return Response{}, d.Open()
	case CmdClose:
		return Response{}, d.Close()
	case CmdPlay:
		return Response{}, d.Play(req.From)
	case CmdStop:
		return Response{}, d.Stop()
	case CmdPause:
		return Response{}, d.Pause()
	case CmdResume:
		return Response{}, d.Resume()
	case CmdSeek:
		if req.To == nil {
			// A seek without a target is accepted and changes nothing.
			return Response{}, nil
		}
		return Response{}, d.Seek(*req.To)
	case CmdStatus:
		if req.Item == nil {
			return Response{}, ErrInvalidParameter
		}
		v, err := d.Status(StatusItem(*req.Item))
		return Response{Value: v}, err
	case CmdCapability:
		if req.Item == nil {
			return Response{}, ErrInvalidParameter
		}
		v, err := d.Capability(CapItem(*req.Item))
		return Response{Value: v}, err
	case CmdSetTimeFormat:
		return Response{}, d.SetTimeFormat(req.Format)
	case CmdInfo:
		s, err := d.Info()
		return Response{Text: s}, err
	default:
		return Response{}, ErrUnrecognizedCommand
	}
}
