package gatemate

/*-------------------------------------------------------------
 *
 * Purpose:	Package-wide logger.
 *
 *		Library users get warnings and errors only; the tools
 *		raise the level to Debug with -v, which turns on the
 *		per-command decode trace.
 *
 *--------------------------------------------------------------*/

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "gatemate",
	Level:  log.WarnLevel,
})

func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
}
