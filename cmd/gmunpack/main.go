package main

/*------------------------------------------------------------------
 *
 * Purpose:   	GateMate bitstream unpacker.
 *
 *		Reads an on-wire bitstream, decodes it into the chip
 *		model and writes the textual device configuration.
 *
 * Usage:	gmunpack input.bit output.config [options]
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	gatemate "github.com/peppercorn-eda/gmtools/src"
)

func main() {
	var verbose = pflag.BoolP("verbose", "v", false, "verbose output")
	var help = pflag.BoolP("help", "h", false, "show help")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gmunpack: GateMate bitstream to text config converter\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: gmunpack input.bit output.config [options]\n")
		fmt.Fprintf(os.Stderr, "\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}
	if pflag.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Error: input and output files are mandatory.\n\n")
		pflag.Usage()
		os.Exit(1)
	}

	gatemate.SetVerbose(*verbose)
	gatemate.DeviceInit()

	var data, readErr = os.ReadFile(pflag.Arg(0))
	if readErr != nil {
		fmt.Fprintf(os.Stderr, "Failed to open input file: %s\n", readErr)
		os.Exit(1)
	}

	var chip, decErr = gatemate.DeserialiseChip(data)
	if decErr != nil {
		fmt.Fprintf(os.Stderr, "Failed to process input bitstream: %s\n", decErr)
		os.Exit(1)
	}

	var cc = gatemate.ChipConfigFromChip(chip)
	if err := os.WriteFile(pflag.Arg(1), []byte(cc.String()), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open output file: %s\n", err)
		os.Exit(1)
	}
}
