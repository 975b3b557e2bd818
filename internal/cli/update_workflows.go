package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ritualhq/ritual/internal/generate"
)

var updateFlagPath string

// updateWorkflowsCmd implements "ritual update-workflows": regenerate only
// the workflow files from the existing config, preserving all prompt content.
// Useful when the workflow templates shipped with a newer ritual release have
// changed but the user's prompts must stay as they are.
var updateWorkflowsCmd = &cobra.Command{
	Use:   "update-workflows",
	Short: "Regenerate workflow files from the existing configuration",
	Long: `Re-render and overwrite .github/workflows/<agent>-pr-review.yml for every
enabled agent, using .ritual/config.yml as the source of truth. Prompt files
and the config itself are never touched.`,
	Args: cobra.NoArgs,
	RunE: runUpdateWorkflows,
}

func init() {
	updateWorkflowsCmd.Flags().StringVar(&updateFlagPath, "path", ".", "Target repository path")
	rootCmd.AddCommand(updateWorkflowsCmd)
}

func runUpdateWorkflows(cmd *cobra.Command, args []string) error {
	targetRoot, err := resolveTargetRoot(updateFlagPath)
	if err != nil {
		return err
	}

	sum, err := generate.UpdateWorkflows(targetRoot)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Regenerated workflows in %s\n\n", targetRoot)
	printSummary(os.Stderr, sum)
	return nil
}
