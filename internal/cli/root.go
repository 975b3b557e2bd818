// Package cli wires the ritual command tree. All human-facing output goes to
// stderr; stdout is reserved for structured output such as version --json.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/ritualhq/ritual/internal/logging"
)

// Global flag values accessible to all subcommands.
var (
	flagVerbose bool
	flagQuiet   bool
	flagNoColor bool
)

// rootCmd is the base command for ritual.
var rootCmd = &cobra.Command{
	Use:   "ritual",
	Short: "Scaffold GitHub Actions PR-review workflows for AI review agents",
	Long: `Ritual sets up multi-agent pull-request review infrastructure in a
repository: a .ritual/ directory holding the agent configuration and prompt
content, and one generated GitHub Actions workflow per enabled review agent.

Run "ritual init" once to scaffold everything, edit .ritual/config.yml to
taste, and run "ritual update-workflows" whenever the config changes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Check env vars for flags not explicitly set on command line.
		if !cmd.Flags().Changed("verbose") && os.Getenv("RITUAL_VERBOSE") != "" {
			flagVerbose = true
		}
		if !cmd.Flags().Changed("quiet") && os.Getenv("RITUAL_QUIET") != "" {
			flagQuiet = true
		}
		if !cmd.Flags().Changed("no-color") && (os.Getenv("NO_COLOR") != "" || os.Getenv("RITUAL_NO_COLOR") != "") {
			flagNoColor = true
		}

		// Initialize logging.
		jsonFormat := os.Getenv("RITUAL_LOG_FORMAT") == "json"
		logging.Setup(flagVerbose, flagQuiet, jsonFormat)

		// Handle --no-color: disable colored output.
		if flagNoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}

		return nil
	},
	// With no subcommand there is nothing to do; show help.
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose (debug) output (env: RITUAL_VERBOSE)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress all output except errors (env: RITUAL_QUIET)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output (env: RITUAL_NO_COLOR, NO_COLOR)")
}

// NewRootCmd returns the fully wired root command. Release tooling uses it
// to generate shell completions and man pages.
func NewRootCmd() *cobra.Command {
	return rootCmd
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
