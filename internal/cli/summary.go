package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/ritualhq/ritual/internal/generate"
)

var (
	createdStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	overwrittenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	skippedStyle     = lipgloss.NewStyle().Faint(true)
)

// printSummary writes the per-artifact outcome list in the order the
// orchestrator processed them.
func printSummary(w io.Writer, sum *generate.Summary) {
	for _, path := range sum.Created {
		fmt.Fprintf(w, "  %s  %s\n", createdStyle.Render("created    "), path)
	}
	for _, path := range sum.Overwritten {
		fmt.Fprintf(w, "  %s  %s\n", overwrittenStyle.Render("overwritten"), path)
	}
	for _, path := range sum.Skipped {
		fmt.Fprintf(w, "  %s  %s\n", skippedStyle.Render("skipped    "), path)
	}
}
