package options

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// VerboseOptions
type VerboseOptions struct {
	Verbose bool
}

func AddVerboseArgs(cmd *cobra.Command, o *VerboseOptions) {
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log store activity to stderr.")
}

// Logger returns a text logger on stderr; warnings and errors only unless
// verbose is set.
func (o *VerboseOptions) Logger() *slog.Logger {
	return o.loggerTo(os.Stderr)
}

func (o *VerboseOptions) loggerTo(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
