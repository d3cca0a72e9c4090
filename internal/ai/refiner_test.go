package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ruthwikaki/invochat-go/internal/config"
	"github.com/ruthwikaki/invochat-go/internal/domain"
)

type stubCompleter struct {
	content string
	err     error
}

func (s stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	return s.content, s.err
}

func refineInputs(skus ...string) []domain.RefinementInput {
	out := make([]domain.RefinementInput, 0, len(skus))
	for _, sku := range skus {
		out = append(out, domain.RefinementInput{SKU: sku, BaseQuantity: 50})
	}
	return out
}

func TestRefineParsesValidEntries(t *testing.T) {
	r := &Refiner{client: stubCompleter{content: `[
		{"sku": "SKU001", "seasonality_factor": 1.3, "confidence": 0.85, "adjustment_reason": "Seasonal demand increase"},
		{"sku": "SKU002", "seasonality_factor": 0.6, "confidence": 0.4, "adjustment_reason": "Post-holiday slowdown"}
	]`}}

	got, err := r.Refine(context.Background(), refineInputs("SKU001", "SKU002"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got["SKU001"].SeasonalityFactor != 1.3 || got["SKU001"].Confidence != 0.85 {
		t.Fatalf("SKU001 fields wrong: %+v", got["SKU001"])
	}
}

func TestRefineDropsMalformedEntries(t *testing.T) {
	r := &Refiner{client: stubCompleter{content: `[
		{"sku": "SKU001", "seasonality_factor": 1.2, "confidence": 0.9, "adjustment_reason": "ok"},
		{"sku": "UNKNOWN", "seasonality_factor": 1.5, "confidence": 0.9, "adjustment_reason": "not requested"},
		{"sku": "SKU002", "seasonality_factor": -2, "confidence": 0.9, "adjustment_reason": "negative factor"},
		{"sku": "SKU003", "confidence": 0.9, "adjustment_reason": "missing factor"},
		{"sku": "SKU004", "seasonality_factor": 1.1, "confidence": 1.7, "adjustment_reason": "confidence out of range"},
		{"sku": "", "seasonality_factor": 1.1, "confidence": 0.5, "adjustment_reason": "empty sku"}
	]`}}

	got, err := r.Refine(context.Background(), refineInputs("SKU001", "SKU002", "SKU003", "SKU004"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected only SKU001 to survive, got %d entries", len(got))
	}
	if _, ok := got["SKU001"]; !ok {
		t.Fatalf("SKU001 missing from results")
	}
}

func TestRefineToleratesFencedOutput(t *testing.T) {
	r := &Refiner{client: stubCompleter{content: "```json\n[{\"sku\": \"SKU001\", \"seasonality_factor\": 2.0, \"confidence\": 0.5, \"adjustment_reason\": \"spike\"}]\n```"}}

	got, err := r.Refine(context.Background(), refineInputs("SKU001"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["SKU001"].SeasonalityFactor != 2.0 {
		t.Fatalf("fenced output not parsed: %+v", got)
	}
}

func TestRefineUnparseableOutputIsError(t *testing.T) {
	r := &Refiner{client: stubCompleter{content: "Sorry, I cannot help with that."}}

	if _, err := r.Refine(context.Background(), refineInputs("SKU001")); err == nil {
		t.Fatal("expected error for unparseable output")
	}
}

func TestRefineTransportErrorPropagates(t *testing.T) {
	r := &Refiner{client: stubCompleter{err: errors.New("timeout")}}

	if _, err := r.Refine(context.Background(), refineInputs("SKU001")); err == nil {
		t.Fatal("expected transport error to propagate")
	}
}

func TestRefineEmptyInput(t *testing.T) {
	r := &Refiner{client: stubCompleter{content: "[]"}}

	got, err := r.Refine(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestClientCompleteAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		var req completionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Errorf("expected system+user messages, got %d", len(req.Messages))
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "[]"}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(config.AIConfig{BaseURL: srv.URL, APIKey: "test-key", Model: "test-model", TimeoutSeconds: 5})
	got, err := c.Complete(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "[]" {
		t.Fatalf("expected [], got %q", got)
	}
}

func TestClientCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(config.AIConfig{BaseURL: srv.URL, APIKey: "test-key", Model: "test-model", TimeoutSeconds: 5})
	if _, err := c.Complete(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
