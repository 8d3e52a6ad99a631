package main

/*------------------------------------------------------------------
 *
 * Purpose:   	GateMate bitstream packer.
 *
 *		Reads a textual device configuration, builds the chip
 *		model and serialises it to an on-wire bitstream.
 *
 * Usage:	gmpack input.config [output.bit] [options]
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	gatemate "github.com/peppercorn-eda/gmtools/src"
)

func main() {
	var reset = pflag.Bool("reset", false, "reset all configuration latches with CMD_CFGRST")
	var crcmode = pflag.String("crcmode", "", "CRC error behaviour (check, ignore, unused)")
	var spimode = pflag.String("spimode", "", "SPI mode to use (single, dual, quad)")
	var reconfig = pflag.Bool("reconfig", false, "enable reconfiguration in bitstream")
	var background = pflag.Bool("background", false, "enable background reconfiguration in bitstream")
	var bootaddr = pflag.Int("bootaddr", 0, "boot address for secondary bitstream")
	var verbose = pflag.BoolP("verbose", "v", false, "verbose output")
	var help = pflag.BoolP("help", "h", false, "show help")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gmpack: GateMate bitstream packer\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: gmpack input.config [output.bit] [options]\n")
		fmt.Fprintf(os.Stderr, "\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}
	if pflag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: input file is mandatory.\n\n")
		pflag.Usage()
		os.Exit(1)
	}

	gatemate.SetVerbose(*verbose)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	gatemate.DeviceInit()

	var opts gatemate.BitstreamOptions
	opts.Reset = *reset
	if *crcmode != "" {
		switch *crcmode {
		case "check":
			opts.CrcMode = gatemate.CRC_MODE_CHECK
		case "ignore":
			opts.CrcMode = gatemate.CRC_MODE_IGNORE
		case "unused":
			opts.CrcMode = gatemate.CRC_MODE_UNUSED
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown crcmode %q.\n", *crcmode)
			os.Exit(1)
		}
		opts.CfgMode = true
	}
	if *spimode != "" {
		switch *spimode {
		case "single":
			opts.SpiMode = gatemate.SPI_MODE_SINGLE
		case "dual":
			opts.SpiMode = gatemate.SPI_MODE_DUAL
		case "quad":
			opts.SpiMode = gatemate.SPI_MODE_QUAD
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown spimode %q.\n", *spimode)
			os.Exit(1)
		}
		opts.CfgMode = true
	}
	opts.Reconfig = *reconfig
	opts.Background = *background
	if pflag.CommandLine.Changed("bootaddr") {
		opts.BootAddr = uint32(*bootaddr)
		opts.HasBootAddr = true
	}

	var textcfg, readErr = os.ReadFile(pflag.Arg(0))
	if readErr != nil {
		fmt.Fprintf(os.Stderr, "Failed to open input file: %s\n", readErr)
		os.Exit(1)
	}

	var cc, cfgErr = gatemate.ChipConfigFromString(string(textcfg))
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "Failed to process input config: %s\n", cfgErr)
		os.Exit(1)
	}

	var chip, chipErr = cc.ToChip()
	if chipErr != nil {
		fmt.Fprintf(os.Stderr, "Failed to process input config: %s\n", chipErr)
		os.Exit(1)
	}

	var bitstream = gatemate.SerialiseChip(chip, opts)
	log.Debug("serialised bitstream", "bytes", len(bitstream))

	if pflag.NArg() >= 2 {
		if err := os.WriteFile(pflag.Arg(1), bitstream, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open output file: %s\n", err)
			os.Exit(1)
		}
	}
}
