package costs

// TokenUsage is one model's token consumption as reported in the Claude Code
// Action output JSON (the per-model entries of "modelUsage").
type TokenUsage struct {
	InputTokens      int64 `json:"inputTokens"`
	OutputTokens     int64 `json:"outputTokens"`
	CacheReadTokens  int64 `json:"cacheReadInputTokens"`
	CacheWriteTokens int64 `json:"cacheCreationInputTokens"`
	ContextWindow    int64 `json:"contextWindow"`
}

// Tier names the pricing tier selected for a breakdown.
type Tier string

const (
	TierStandard Tier = "standard"
	TierExtended Tier = "extended"
)

// Breakdown is the detailed cost for one model's usage.
type Breakdown struct {
	Model string
	Usage TokenUsage
	Tier  Tier

	InputCost      float64
	OutputCost     float64
	CacheReadCost  float64
	CacheWriteCost float64
	Total          float64
}

// ForModel computes the cost breakdown for one model's usage, selecting the
// extended pricing tier when the context window exceeds the model's threshold
// and the model defines extended prices.
func ForModel(model string, usage TokenUsage) (Breakdown, error) {
	p, err := lookupPricing(model)
	if err != nil {
		return Breakdown{}, err
	}

	input, output := p.Input, p.Output
	cacheWrite, cacheRead := p.CacheWrite, p.CacheRead
	tier := TierStandard
	if usage.ContextWindow > p.ContextThreshold && p.InputExtended > 0 {
		input, output = p.InputExtended, p.OutputExtended
		cacheWrite, cacheRead = p.CacheWriteExtended, p.CacheReadExtended
		tier = TierExtended
	}

	b := Breakdown{
		Model:          model,
		Usage:          usage,
		Tier:           tier,
		InputCost:      tokenCost(usage.InputTokens, input),
		OutputCost:     tokenCost(usage.OutputTokens, output),
		CacheReadCost:  tokenCost(usage.CacheReadTokens, cacheRead),
		CacheWriteCost: tokenCost(usage.CacheWriteTokens, cacheWrite),
	}
	b.Total = b.InputCost + b.OutputCost + b.CacheReadCost + b.CacheWriteCost
	return b, nil
}

// tokenCost converts a token count and a per-million-token price into USD.
func tokenCost(tokens int64, pricePerMTok float64) float64 {
	return float64(tokens) / 1_000_000 * pricePerMTok
}
