// Package costs computes exact USD costs for Claude API usage reported in
// PR-review workflow run logs, accounting for cache token types and
// context-window pricing tiers.
package costs

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed pricing.toml
var pricingTOML []byte

// ModelPricing holds the per-million-token USD prices for one model.
// Extended prices apply when the context window exceeds ContextThreshold; a
// zero extended price means the model has no separate extended tier.
type ModelPricing struct {
	Input      float64 `toml:"input"`
	Output     float64 `toml:"output"`
	CacheWrite float64 `toml:"cache_write"`
	CacheRead  float64 `toml:"cache_read"`

	InputExtended      float64 `toml:"input_extended"`
	OutputExtended     float64 `toml:"output_extended"`
	CacheWriteExtended float64 `toml:"cache_write_extended"`
	CacheReadExtended  float64 `toml:"cache_read_extended"`

	ContextThreshold int64 `toml:"context_threshold"`
}

// pricingTable decodes the embedded table once per process.
var pricingTable = sync.OnceValues(func() (map[string]ModelPricing, error) {
	var table map[string]ModelPricing
	if err := toml.Unmarshal(pricingTOML, &table); err != nil {
		return nil, fmt.Errorf("decoding embedded pricing table: %w", err)
	}
	return table, nil
})

// KnownModels returns the model names in the pricing table, sorted.
func KnownModels() ([]string, error) {
	table, err := pricingTable()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// lookupPricing returns the pricing entry for a model, with an error naming
// the known models when the lookup misses.
func lookupPricing(model string) (ModelPricing, error) {
	table, err := pricingTable()
	if err != nil {
		return ModelPricing{}, err
	}
	p, ok := table[model]
	if !ok {
		known, _ := KnownModels()
		return ModelPricing{}, fmt.Errorf("unknown model %q; known models: %s",
			model, strings.Join(known, ", "))
	}
	return p, nil
}
