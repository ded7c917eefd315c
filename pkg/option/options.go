package option

import (
	"io"
	"os"

	"github.com/bgrewell/isoinfo/pkg/logging"
)

// Options controls how an image is decoded and where the report is written.
type Options struct {
	// Output receives the diagnostic report.
	Output io.Writer
	// ElToritoEnabled makes the parser follow a captured boot catalog pointer.
	ElToritoEnabled bool
	// DumpEnabled adds the hex/ASCII dump of every decoded sector to the report.
	DumpEnabled bool
	Logger      *logging.Logger
}

// Option represents a function that modifies the Options
type Option func(*Options)

// Default returns the options used when none are given: report to stdout, follow El Torito, dump
// sectors, discard logs.
func Default(opts ...Option) *Options {
	o := &Options{
		Output:          os.Stdout,
		ElToritoEnabled: true,
		DumpEnabled:     true,
		Logger:          logging.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithOutput sets the writer that receives the report.
func WithOutput(w io.Writer) Option {
	return func(o *Options) {
		o.Output = w
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithElToritoEnabled sets whether the boot catalog referenced by an El Torito boot record is decoded.
func WithElToritoEnabled(elToritoEnabled bool) Option {
	return func(o *Options) {
		o.ElToritoEnabled = elToritoEnabled
	}
}

// WithDumpEnabled sets whether raw sector dumps are part of the report.
func WithDumpEnabled(dumpEnabled bool) Option {
	return func(o *Options) {
		o.DumpEnabled = dumpEnabled
	}
}
