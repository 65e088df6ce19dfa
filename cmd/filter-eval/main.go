// Command filter-eval applies a set of filters to a WAV recording and
// compares every filtered signal against the original.
//
// Usage:
//
//	filter-eval compare input.wav
//	filter-eval compare --set filters.yaml --out results --policy continue input.wav
//	filter-eval compare --workers 4 --metrics rmse,snr,lsd input.wav
//	filter-eval response --kind lowpass --cutoff 3000 --sample-rate 16000
//
// compare writes one WAV per filter plus CSV time, spectrum and spectrogram
// views to the output directory and prints a metric table.
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
)

var version = "0.1.0"

// Globals are flags shared by every subcommand.
type Globals struct {
	Verbose bool             `short:"v" help:"Enable debug logging"`
	Version kong.VersionFlag `help:"Show version information"`

	stdout io.Writer
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Compare  CompareCmd  `cmd:"" help:"Run a filter set against a WAV file and compare the results"`
	Response ResponseCmd `cmd:"" help:"Print the frequency response of a FIR filter design"`
}

func main() {
	cli := &CLI{Globals: Globals{stdout: os.Stdout}}
	ctx := kong.Parse(cli,
		kong.Name("filter-eval"),
		kong.Description("Filter comparison and evaluation for audio recordings"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if err := ctx.Run(&cli.Globals); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}
