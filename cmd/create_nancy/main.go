package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cfoust/nancy/pkg/version"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Version bool `help:"Print version information and exit." short:"v"`
	Debug   bool `help:"Whether to enable debug logging."`

	Build struct {
		Configs []string `arg:"" optional:"" name:"configs" help:"Configuration files." type:"file"`
		Output  string   `help:"Override the output path." short:"o"`
	} `cmd:"" default:"withargs" help:"Write nancy.dat for the configured games."`

	Dump struct {
		File string `arg:"" name:"file" help:"Container to inspect." type:"existingfile"`
		CBOR bool   `help:"Write the section index as CBOR instead of text." name:"cbor"`
	} `cmd:"" help:"Print the game and section index of a container."`

	Scale struct {
		Input   string   `arg:"" name:"input" help:"PNG or BMP image to scale." type:"existingfile"`
		Output  string   `arg:"" name:"output" help:"Where to write the scaled PNG or BMP."`
		Width   int      `help:"Target width in pixels." required:""`
		Height  int      `help:"Target height in pixels." required:""`
		FlipH   bool     `help:"Mirror horizontally." name:"flip-h"`
		FlipV   bool     `help:"Mirror vertically." name:"flip-v"`
		Configs []string `help:"Configuration files for the cache." name:"config" type:"file"`
	} `cmd:"" help:"Scale an image with nearest-neighbour sampling."`

	Config struct {
		Configs []string `arg:"" optional:"" name:"configs" help:"Configuration files to merge." type:"file"`
	} `cmd:"" help:"Write the effective configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if len(os.Args) == 1 {
		err := buildCommand([]string{}, "")
		if err != nil {
			writeError(err)
		}
		return
	}

	ctx := kong.Parse(&CLI,
		kong.Name("create_nancy"),
		kong.Description("build the nancy.dat engine data container"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	if CLI.Version {
		fmt.Printf(
			"create_nancy %s (commit %s)\n",
			version.Version,
			version.GitCommit,
		)
		fmt.Printf(
			"built %s\n",
			version.BuildTime,
		)
		os.Exit(0)
	}

	var err error
	switch ctx.Command() {
	case "build", "build <configs>":
		err = buildCommand(CLI.Build.Configs, CLI.Build.Output)
	case "dump <file>":
		err = dumpCommand(os.Stdout, CLI.Dump.File, CLI.Dump.CBOR)
	case "scale <input> <output>":
		err = scaleCommand(context.Background(), scaleOptions{
			Input:   CLI.Scale.Input,
			Output:  CLI.Scale.Output,
			Width:   CLI.Scale.Width,
			Height:  CLI.Scale.Height,
			FlipH:   CLI.Scale.FlipH,
			FlipV:   CLI.Scale.FlipV,
			Configs: CLI.Scale.Configs,
		})
	case "config", "config <configs>":
		err = configCommand(os.Stdout, CLI.Config.Configs)
	}

	if err != nil {
		writeError(err)
	}
}
