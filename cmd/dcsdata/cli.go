package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/noa-physics/dcsdata"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	dataDir  string
	manifest string
	logLevel string
}

// options returns the cache options selected by the flags.
func (g *globalFlags) options() []dcsdata.CacheOption {
	opts := []dcsdata.CacheOption{dcsdata.WithDataDir(g.dataDir)}
	if g.manifest != "" {
		opts = append(opts, dcsdata.WithManifest(g.manifest))
	}
	return opts
}

// setupLogging routes dcsdata's logger to stderr at the requested level.
func (g *globalFlags) setupLogging(stderr io.Writer) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		level = slog.LevelWarn
	}
	handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	dcsdata.SetLogger(slog.New(handler).With("component", "dcsdata"))
}

func NewCLI() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "dcsdata",
		Short: "Inspect and prepare DCS golden reference data",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
			g.setupLogging(cmd.ErrOrStderr())
		},
	}

	defaultDir := dcsdata.DefaultDataDir
	if dir := os.Getenv("DCSDATA_DIR"); dir != "" {
		defaultDir = dir
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.dataDir, "data-dir", defaultDir, "directory holding the artifacts ($DCSDATA_DIR)")
	flags.StringVar(&g.manifest, "manifest", os.Getenv("DCSDATA_MANIFEST"), "YAML or JSON path-table manifest ($DCSDATA_MANIFEST)")
	flags.StringVar(&g.logLevel, "log-level", "WARN", "log level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(
		newListCmd(g),
		newVerifyCmd(g),
		newSyncCmd(g),
	)

	return rootCmd
}

// newTable returns a borderless, left-aligned table in the style of the
// other listings.
func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	return table
}
