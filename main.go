package main

import (
	"bufio"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/platter-audio/platter/internal/config"
	"github.com/platter-audio/platter/internal/device"
	"github.com/platter-audio/platter/internal/eventlog"
	"github.com/platter-audio/platter/internal/library"
	"github.com/platter-audio/platter/internal/player"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := eventlog.Open(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("opening event log: %w", err)
	}
	defer log.Close()

	lib := library.New(cfg.MusicDir)
	ctrl := player.NewController(player.NewOtoOutput(), log.Logger, player.Options{
		PollInterval: cfg.PollInterval(),
		StopTimeout:  cfg.StopTimeout(),
	})
	dev := device.New(lib, ctrl, log.Logger)

	fmt.Printf("platter: library %s, log %s\n", cfg.MusicDir, cfg.LogFile)
	fmt.Println("commands: open close play [track] stop pause resume seek <track> status <item> capability <item> format <tmsf|track> info quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		req, err := parseCommand(line)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		resp, err := dev.Dispatch(req)
		switch {
		case err != nil:
			fmt.Println("error:", err)
		case req.Command == device.CmdStatus || req.Command == device.CmdCapability:
			fmt.Println(resp.Value)
		case req.Command == device.CmdInfo:
			fmt.Printf("%q\n", resp.Text)
		default:
			fmt.Println("ok")
		}
	}

	ctrl.Stop()
	return scanner.Err()
}

var statusItems = map[string]device.StatusItem{
	"tracks":   device.StatusNumberOfTracks,
	"track":    device.StatusCurrentTrack,
	"length":   device.StatusLength,
	"mode":     device.StatusMode,
	"media":    device.StatusMediaPresent,
	"ready":    device.StatusReady,
	"position": device.StatusPosition,
	"format":   device.StatusTimeFormat,
	"type":     device.StatusTrackType,
}

var capItems = map[string]device.CapItem{
	"can-play":   device.CapCanPlay,
	"has-audio":  device.CapHasAudio,
	"can-record": device.CapCanRecord,
	"has-video":  device.CapHasVideo,
	"can-eject":  device.CapCanEject,
	"can-save":   device.CapCanSave,
	"uses-files": device.CapUsesFiles,
	"compound":   device.CapCompoundDevice,
	"type":       device.CapDeviceType,
}

// parseCommand turns one console line into a device request.
func parseCommand(line string) (device.Request, error) {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	switch name {
	case "open":
		return device.Request{Command: device.CmdOpen}, nil
	case "close":
		return device.Request{Command: device.CmdClose}, nil
	case "play":
		req := device.Request{Command: device.CmdPlay}
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return device.Request{}, fmt.Errorf("play: bad track %q", args[0])
			}
			req.From = &n
		}
		return req, nil
	case "stop":
		return device.Request{Command: device.CmdStop}, nil
	case "pause":
		return device.Request{Command: device.CmdPause}, nil
	case "resume":
		return device.Request{Command: device.CmdResume}, nil
	case "seek":
		req := device.Request{Command: device.CmdSeek}
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return device.Request{}, fmt.Errorf("seek: bad target %q", args[0])
			}
			req.To = &n
		}
		return req, nil
	case "status":
		if len(args) == 0 {
			return device.Request{}, fmt.Errorf("status: missing item (one of %s)", itemNames(statusItems))
		}
		item, ok := statusItems[args[0]]
		if !ok {
			return device.Request{}, fmt.Errorf("status: unknown item %q", args[0])
		}
		n := int(item)
		return device.Request{Command: device.CmdStatus, Item: &n}, nil
	case "capability":
		if len(args) == 0 {
			return device.Request{}, fmt.Errorf("capability: missing item (one of %s)", itemNames(capItems))
		}
		item, ok := capItems[args[0]]
		if !ok {
			return device.Request{}, fmt.Errorf("capability: unknown item %q", args[0])
		}
		n := int(item)
		return device.Request{Command: device.CmdCapability, Item: &n}, nil
	case "format":
		if len(args) == 0 {
			return device.Request{}, fmt.Errorf("format: need tmsf or track")
		}
		switch args[0] {
		case "tmsf":
			return device.Request{Command: device.CmdSetTimeFormat, Format: device.TimeFormatTMSF}, nil
		case "track":
			return device.Request{Command: device.CmdSetTimeFormat, Format: device.TimeFormatTrack}, nil
		default:
			return device.Request{}, fmt.Errorf("format: need tmsf or track, got %q", args[0])
		}
	case "info":
		return device.Request{Command: device.CmdInfo}, nil
	default:
		return device.Request{Command: device.Command(0)}, nil
	}
}

func itemNames[T any](m map[string]T) string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, " ")
}
