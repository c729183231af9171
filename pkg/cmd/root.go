package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mvnget/mvnget/pkg/buildinfo"
)

var (
	flagVerbose bool

	// logger is the CLI logger, configured by the root PersistentPreRun.
	// The core packages never log; everything user-facing funnels through
	// the command layer.
	logger = newLogger(os.Stderr, log.InfoLevel)
)

// newLogger creates a stderr logger with timestamp formatting.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
}

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mvnget",
		Short: "Maven artifact downloader",
		Long: `mvnget resolves and downloads a single artifact from a Maven repository.

It resolves the artifact version against repository metadata when needed,
but does not resolve dependencies. Intended for fetching one artifact from
a repository, nothing more.`,
		Version: buildinfo.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newGetCmd())
	root.AddCommand(newInitCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
