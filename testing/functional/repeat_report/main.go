package main

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"os"

	"github.com/bgrewell/isoinfo"
	"github.com/bgrewell/isoinfo/pkg/logging"
	"github.com/bgrewell/isoinfo/pkg/option"
	"github.com/bgrewell/usage"
)

func reportMD5(input string, logger *logging.Logger) (string, error) {
	var buf bytes.Buffer
	if _, err := isoinfo.Inspect(input, option.WithOutput(&buf), option.WithLogger(logger)); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", md5.Sum(buf.Bytes())), nil
}

func main() {

	u := usage.NewUsage(
		usage.WithApplicationName("repeat_report"),
		usage.WithApplicationDescription("repeat_report is a functional testing application that is part of isoinfo and is designed to verify that inspecting the same image twice produces the same report."),
	)
	help := u.AddBooleanOption("h", "help", false, "Display this help message", "", nil)
	verbose := u.AddBooleanOption("v", "verbose", false, "Log every sector read to stderr", "", nil)
	input := u.AddArgument(1, "input", "The input ISO file to run the tests against", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}

	if *help {
		u.PrintUsage()
		os.Exit(0)
	}

	if input == nil || *input == "" {
		u.PrintError(fmt.Errorf("location of the input iso file <input> must be provided"))
		os.Exit(1)
	}

	logger := logging.DefaultLogger()
	if *verbose {
		logger = logging.NewLogger(logging.NewSimpleLogger(os.Stderr, logging.LEVEL_TRACE, true))
	}

	first, err := reportMD5(*input, logger)
	if err != nil {
		fmt.Printf("Failed to inspect ISO file: %s\n", err)
		os.Exit(1)
	}

	second, err := reportMD5(*input, logger)
	if err != nil {
		fmt.Printf("Failed to inspect ISO file a second time: %s\n", err)
		os.Exit(1)
	}

	if first != second {
		fmt.Printf("MD5 hash of the first report does not match MD5 hash of the second report:\n  First:  %s\n  Second: %s\n", first, second)
		os.Exit(1)
	}

	fmt.Printf("Reports match: %s\n", first)
}
