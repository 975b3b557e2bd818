package costs

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/ritualhq/ritual/internal/textjson"
)

// ErrNoUsageData reports a log with no recognizable usage payload.
var ErrNoUsageData = errors.New("no Claude usage data found in log")

// RunCosts is the cost analysis for one workflow run log.
type RunCosts struct {
	// Breakdowns holds one entry per model, sorted by model name.
	Breakdowns []Breakdown
	// APITotal is the run's total_cost_usd as reported by the API, when the
	// log carried one. Used to cross-check the calculated total.
	APITotal *float64
}

// CalculatedTotal sums the per-model totals.
func (rc *RunCosts) CalculatedTotal() float64 {
	var total float64
	for _, b := range rc.Breakdowns {
		total += b.Total
	}
	return total
}

// runPayload is the usage object the Claude Code Action prints into the run
// log.
type runPayload struct {
	TotalCostUSD *float64              `json:"total_cost_usd"`
	ModelUsage   map[string]TokenUsage `json:"modelUsage"`
}

// FromLog scans a workflow run log for the Claude usage payload and computes
// per-model cost breakdowns from it. The log may contain any number of other
// JSON values; the first one carrying a non-empty modelUsage wins.
func FromLog(logText string) (*RunCosts, error) {
	for _, raw := range textjson.ExtractAll(logText) {
		var payload runPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			continue
		}
		if len(payload.ModelUsage) == 0 {
			continue
		}
		return fromPayload(payload)
	}
	return nil, ErrNoUsageData
}

// fromPayload converts a usage payload into breakdowns, sorted by model name
// for deterministic reports.
func fromPayload(payload runPayload) (*RunCosts, error) {
	models := make([]string, 0, len(payload.ModelUsage))
	for model := range payload.ModelUsage {
		models = append(models, model)
	}
	sort.Strings(models)

	rc := &RunCosts{APITotal: payload.TotalCostUSD}
	for _, model := range models {
		b, err := ForModel(model, payload.ModelUsage[model])
		if err != nil {
			return nil, err
		}
		rc.Breakdowns = append(rc.Breakdowns, b)
	}
	return rc, nil
}
