package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ritualhq/ritual/internal/generate"
)

// initFlagPath and initFlagForce are the flag values for the init subcommand.
var (
	initFlagPath  string
	initFlagForce bool
)

// initCmd implements "ritual init".
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize PR-review infrastructure in a repository",
	Long: `Initialize the .ritual/ directory (config and default prompts) and one
GitHub Actions workflow per enabled review agent. Existing files are preserved
unless --force is supplied; an existing .ritual/config.yml is always the
source of truth for which workflows to generate.

Examples:
  ritual init                  # scaffold into the current directory
  ritual init --path ../repo   # scaffold into another repository
  ritual init --force          # rewrite all generated files`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initFlagPath, "path", ".", "Target repository path")
	initCmd.Flags().BoolVar(&initFlagForce, "force", false, "Overwrite existing files")
	rootCmd.AddCommand(initCmd)
}

// runInit is the RunE handler for the init command.
func runInit(cmd *cobra.Command, args []string) error {
	targetRoot, err := resolveTargetRoot(initFlagPath)
	if err != nil {
		return err
	}

	sum, err := generate.Init(targetRoot, initFlagForce)
	if err != nil {
		return err
	}

	// --- Success output (all to stderr) ---
	stderr := os.Stderr

	fmt.Fprintf(stderr, "Initialized PR-review infrastructure in %s\n\n", targetRoot)
	printSummary(stderr, sum)

	fmt.Fprintln(stderr, "\nNext steps:")
	fmt.Fprintln(stderr, "  1. Add these secrets to your GitHub repository:")
	fmt.Fprintln(stderr, "       MANUS_API_KEY")
	fmt.Fprintln(stderr, "       ANTHROPIC_API_KEY")
	fmt.Fprintln(stderr, "  2. Commit the generated files:")
	fmt.Fprintln(stderr, "       git add .ritual/ .github/workflows/")
	fmt.Fprintln(stderr, "       git commit -m 'Add PR review infrastructure'")
	fmt.Fprintln(stderr, "  3. Push and open a PR to test!")

	return nil
}

// resolveTargetRoot validates and absolutizes a --path value.
func resolveTargetRoot(path string) (string, error) {
	targetRoot, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", path, err)
	}
	info, err := os.Stat(targetRoot)
	if err != nil {
		return "", fmt.Errorf("path %s does not exist", targetRoot)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path %s is not a directory", targetRoot)
	}
	return targetRoot, nil
}
