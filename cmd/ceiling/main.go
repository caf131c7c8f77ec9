// Command ceiling is a demo host for the loudness ceiling engine.
//
// Usage:
//
//	ceiling [--log-file FILE] <command> [flags]
//
// Commands:
//
//	params     print the parameter table (or --json for a parameter file)
//	response   print the meter prefilter magnitude response
//	live       run the engine on a test signal through the audio device
//	info       print version and SIMD support
//
// Examples:
//
//	ceiling params --json > params.json
//	ceiling live --signal bursts --watch params.json
//	ceiling live --set limit=-23 --set release=300
//	ceiling response --rate 44100 --points 24
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	LogFile string `help:"Write a debug log to this file." type:"path" placeholder:"FILE"`

	Params   ParamsCmd   `cmd:"" help:"Print the parameter table."`
	Response ResponseCmd `cmd:"" help:"Print the meter prefilter magnitude response."`
	Live     LiveCmd     `cmd:"" help:"Run the engine on a test signal through the audio device."`
	Info     InfoCmd     `cmd:"" help:"Print version and SIMD support."`
}

// runContext is bound into every command's Run method.
type runContext struct {
	log    *slog.Logger
	stdout io.Writer
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("ceiling"),
		kong.Description("Real-time loudness ceiling engine"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	logger, closeLog, err := openLog(cli.LogFile)
	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}

	err = ctx.Run(&runContext{log: logger, stdout: os.Stdout})
	closeLog()

	if err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

// openLog returns a debug logger writing to path, or a discarding logger
// when path is empty. The terminal belongs to the TUI, so nothing is
// logged to stderr.
func openLog(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})

	return slog.New(h), func() { _ = f.Close() }, nil
}
