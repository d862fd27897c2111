package cmd

import (
	"fmt"
	"os"

	"github.com/automata-tools/deskagent/internal/output"
	"github.com/automata-tools/deskagent/internal/version"
	"github.com/spf13/cobra"

	// Registers the native backend's provider via init().
	_ "github.com/automata-tools/deskagent/internal/platform/native"
)

var rootCmd = &cobra.Command{
	Use:   "deskagent",
	Short: "Drive desktop applications by element name",
	Long: "A CLI automation engine that resolves named UI elements through a chain of\n" +
		"strategies (debug protocol, accessibility tree, keyboard shortcuts, OCR) and\n" +
		"reports every invocation as a single JSON record on stdout.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Any error that escapes a subcommand is
// converted to the failure record so stdout always carries exactly one
// JSON object.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		rec := output.Fail(err)
		pretty, _ := rootCmd.PersistentFlags().GetBool("pretty")
		if perr := output.PrintJSON(rec, pretty); perr != nil {
			fmt.Fprintln(os.Stderr, perr)
		}
		os.Exit(rec.ExitCode())
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file overriding the built-in defaults")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent the JSON result record")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log strategy decisions at debug level (stderr)")
}
