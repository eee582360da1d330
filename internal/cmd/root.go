// Package cmd assembles thermview's cobra command tree: the persistent
// logging/config flags on the root, and the decode/version subcommands.
// Grounded on the jpfielding-dicos.go ctl tool's cmd/ctl/cmd/root.go
// (NewRoot + one New*Cmd constructor per subcommand).
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Fepozopo/thermview/internal/config"
	"github.com/Fepozopo/thermview/pkg/tlog"
)

// Version is the build version reported by the version subcommand and
// compared against GitHub releases by internal/update.Check.
const Version = "0.1.0"

// NewRoot builds the thermview command tree.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "thermview",
		Short: "decode thermal-camera screenshots into temperature grids",
		Long: "thermview locates the IR and OSD regions of a thermal-camera " +
			"screenshot, recovers per-pixel temperature from the on-screen " +
			"false-color palette, and can re-render the result in a " +
			"different palette or with a restamped crosshair.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			logFile, _ := cmd.Flags().GetString("log-file")
			if logFile == "" {
				logFile = cfg.LogFile
			}
			debug, _ := cmd.Flags().GetBool("debug")
			if !debug {
				debug = cfg.LogDebug
			}

			logger := tlog.New(tlog.Options{FilePath: logFile, Debug: debug})
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = withLogger(ctx, logger)
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("log-file", "", "rotate logs to this file instead of stderr")
	pf.Bool("debug", false, "enable debug-level logging")

	root.AddCommand(newDecodeCmd(), newVersionCmd())
	return root
}

// modeNames comma-joins names for --help and error text, matching the style
// of the teacher's comma-joined flag-usage strings. It keeps the order it is
// given; callers that want sorted output sort first.
func modeNames(names []string) string {
	return strings.Join(names, ", ")
}

func fatalf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
