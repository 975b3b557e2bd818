package costs

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// totalMatchTolerance is how far the calculated total may drift from the
// API-reported total before the report flags a mismatch.
const totalMatchTolerance = 1e-6

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	modelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	ruleStyle     = lipgloss.NewStyle().Faint(true)
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mismatchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Report renders a human-readable cost breakdown for one run log.
func (rc *RunCosts) Report(source string) string {
	var b strings.Builder
	rule := ruleStyle.Render(strings.Repeat("─", 64))

	b.WriteString(titleStyle.Render("Claude PR review cost breakdown"))
	if source != "" {
		b.WriteString("  " + ruleStyle.Render(source))
	}
	b.WriteString("\n" + rule + "\n")

	for _, bd := range rc.Breakdowns {
		fmt.Fprintf(&b, "%s  (%s context, %s tier)\n",
			modelStyle.Render(bd.Model), formatTokens(bd.Usage.ContextWindow), bd.Tier)
		writeCostLine(&b, "input (fresh)", bd.Usage.InputTokens, bd.InputCost)
		writeCostLine(&b, "output", bd.Usage.OutputTokens, bd.OutputCost)
		writeCostLine(&b, "cache read", bd.Usage.CacheReadTokens, bd.CacheReadCost)
		writeCostLine(&b, "cache write", bd.Usage.CacheWriteTokens, bd.CacheWriteCost)
		fmt.Fprintf(&b, "  %-14s %24s  $%10.6f\n", "model total", "", bd.Total)
	}

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "%-17s %22s  $%10.6f\n", "calculated total", "", rc.CalculatedTotal())

	if rc.APITotal != nil {
		diff := math.Abs(rc.CalculatedTotal() - *rc.APITotal)
		verdict := matchStyle.Render("match")
		if diff > totalMatchTolerance {
			verdict = mismatchStyle.Render("MISMATCH")
		}
		fmt.Fprintf(&b, "%-17s %22s  $%10.6f  %s\n", "api reported", "", *rc.APITotal, verdict)
	}

	return b.String()
}

// writeCostLine writes one aligned token-count/cost row.
func writeCostLine(b *strings.Builder, label string, tokens int64, cost float64) {
	fmt.Fprintf(b, "  %-14s %17s tokens  $%10.6f\n", label, formatTokens(tokens), cost)
}

// formatTokens renders a token count with thousands separators.
func formatTokens(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, ch := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, ch)
	}
	return string(out)
}
