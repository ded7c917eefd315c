package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bgrewell/isoinfo"
	"github.com/bgrewell/isoinfo/pkg/logging"
	"github.com/bgrewell/isoinfo/pkg/option"
	"github.com/bgrewell/usage"
	"golang.org/x/term"
)

// positionalArgs counts the command line arguments that are not flags.
func positionalArgs(args []string) int {
	count := 0
	for _, arg := range args {
		if arg != "-" && strings.HasPrefix(arg, "-") {
			continue
		}
		count++
	}
	return count
}

// verbosity maps the logging flags onto a logger level, -1 meaning logging is off.
func verbosity(debug, trace bool) int {
	switch {
	case trace:
		return logging.LEVEL_TRACE
	case debug:
		return logging.LEVEL_DEBUG
	default:
		return -1
	}
}

// run inspects the image at path, writing the report to stdout and fatal errors to stderr, and returns
// the process exit code.
func run(path string, stdout, stderr io.Writer, opts ...option.Option) int {
	opts = append(opts, option.WithOutput(stdout))
	if _, err := isoinfo.Inspect(path, opts...); err != nil {
		fmt.Fprintf(stderr, "|ERROR| %s: %v\n", filepath.Base(path), err)
		return 1
	}
	return 0
}

func main() {
	u := usage.NewUsage(
		usage.WithApplicationName("isoinfo"),
		usage.WithApplicationDescription("isoinfo decodes the volume descriptors of an ISO9660 image, follows an El Torito boot record to its boot catalog, and flags every inconsistency it finds."),
	)
	help := u.AddBooleanOption("h", "help", false, "Display this help message", "optional", nil)
	debug := u.AddBooleanOption("v", "verbose", false, "Enable verbose (debug) logging on stderr", "optional", nil)
	trace := u.AddBooleanOption("vv", "trace", false, "Enable trace logging on stderr", "optional", nil)
	noElTorito := u.AddBooleanOption("E", "no-eltorito", false, "Do not decode the El Torito boot catalog", "optional", nil)
	noDump := u.AddBooleanOption("D", "no-dump", false, "Do not dump the raw contents of each sector", "optional", nil)
	path := u.AddArgument(1, "image", "Path to the ISO9660 image to inspect", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}

	if *help {
		u.PrintUsage()
		os.Exit(0)
	}

	if path == nil || *path == "" || positionalArgs(os.Args[1:]) != 1 {
		fmt.Fprintf(os.Stderr, "|ERROR| Usage: %s FILENAME\n", filepath.Base(os.Args[0]))
		os.Exit(1)
	}

	opts := []option.Option{
		option.WithElToritoEnabled(!*noElTorito),
		option.WithDumpEnabled(!*noDump),
	}
	if level := verbosity(*debug, *trace); level >= 0 {
		useColor := term.IsTerminal(int(os.Stderr.Fd()))
		logger := logging.NewLogger(logging.NewSimpleLogger(os.Stderr, level, useColor)).WithName("isoinfo")
		opts = append(opts, option.WithLogger(logger))
	}

	os.Exit(run(*path, os.Stdout, os.Stderr, opts...))
}
