package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/ruthwikaki/invochat-go/internal/domain"
)

const refinerSystemPrompt = `You are an inventory planning assistant. You receive reorder suggestions with recent daily sales history and respond with seasonality adjustments.

Respond with a JSON array only, no prose. Each element:
{"sku": string, "seasonality_factor": number, "confidence": number between 0 and 1, "adjustment_reason": short string}

Only include SKUs whose quantity you would adjust. seasonality_factor multiplies the base quantity.`

// completer is the slice of Client the refiner needs; tests swap in a stub.
type completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Refiner implements reorder.Refiner on top of the hosted model. Responses
// are schema-validated per SKU; malformed or unknown entries are dropped
// silently, and any transport or parse failure surfaces as a single error so
// the caller can skip the whole refinement step.
type Refiner struct {
	client completer
}

// NewRefiner wraps a Client.
func NewRefiner(client *Client) *Refiner {
	return &Refiner{client: client}
}

type refinementEntry struct {
	SKU               string   `json:"sku"`
	SeasonalityFactor *float64 `json:"seasonality_factor"`
	Confidence        *float64 `json:"confidence"`
	AdjustmentReason  string   `json:"adjustment_reason"`
}

// Refine sends the base suggestions plus sales series and returns validated
// per-SKU overrides keyed by SKU.
func (r *Refiner) Refine(ctx context.Context, inputs []domain.RefinementInput) (map[string]domain.RefinementResult, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("refine: failed to marshal inputs: %w", err)
	}

	content, err := r.client.Complete(ctx, refinerSystemPrompt, string(payload))
	if err != nil {
		return nil, fmt.Errorf("refine: %w", err)
	}

	entries, err := parseEntries(content)
	if err != nil {
		return nil, fmt.Errorf("refine: %w", err)
	}

	known := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		known[in.SKU] = true
	}

	results := make(map[string]domain.RefinementResult, len(entries))
	for _, e := range entries {
		if !validEntry(e, known) {
			log.Debug().Str("sku", e.SKU).Msg("dropping malformed refinement entry")
			continue
		}
		results[e.SKU] = domain.RefinementResult{
			SKU:               e.SKU,
			SeasonalityFactor: *e.SeasonalityFactor,
			Confidence:        *e.Confidence,
			AdjustmentReason:  e.AdjustmentReason,
		}
	}

	return results, nil
}

// parseEntries decodes the completion text, tolerating a fenced code block
// around the JSON array.
func parseEntries(content string) ([]refinementEntry, error) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	var entries []refinementEntry
	if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
		return nil, fmt.Errorf("unparseable model output: %w", err)
	}
	return entries, nil
}

func validEntry(e refinementEntry, known map[string]bool) bool {
	if e.SKU == "" || !known[e.SKU] {
		return false
	}
	if e.SeasonalityFactor == nil || math.IsNaN(*e.SeasonalityFactor) || math.IsInf(*e.SeasonalityFactor, 0) || *e.SeasonalityFactor <= 0 {
		return false
	}
	if e.Confidence == nil || *e.Confidence < 0 || *e.Confidence > 1 {
		return false
	}
	return true
}
