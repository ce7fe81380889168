package pagerduty

import (
	"strings"
	"testing"
	"time"

	"github.com/linkpilot/linkpilot-api/internal/observability/notify"
)

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected error when routing key missing")
	}
}

func TestBuildEventDefaults(t *testing.T) {
	client, err := NewClient(Config{
		RoutingKey: "key",
		Source:     "",
		Component:  "",
		Timeout:    time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := notify.MoversPayload{
		BrandID:    "brand-1",
		BrandName:  "Acme",
		DetectedOn: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Losers: []notify.MoveLine{
			{Keyword: "running shoes", Country: "us", PreviousPosition: 4, CurrentPosition: 19, Change: -15},
		},
		SignificantCount: 1,
	}
	event := client.buildEvent(payload)

	payloadSection, ok := event["payload"].(map[string]any)
	if !ok {
		t.Fatalf("expected payload section")
	}
	if payloadSection["severity"] != notify.SeverityWarning {
		t.Fatalf("expected default severity, got %v", payloadSection["severity"])
	}
	if payloadSection["source"] != "linkpilot" {
		t.Fatalf("expected default source, got %v", payloadSection["source"])
	}
	if payloadSection["component"] != "linkpilot" {
		t.Fatalf("expected default component, got %v", payloadSection["component"])
	}

	summary, _ := payloadSection["summary"].(string)
	if !strings.Contains(summary, "Acme") {
		t.Fatalf("expected summary to name the brand, got %q", summary)
	}

	custom, ok := payloadSection["custom_details"].(map[string]any)
	if !ok {
		t.Fatalf("expected custom details")
	}

	required := []string{"brand_id", "brand_name", "significant", "gainers", "losers"}
	for _, key := range required {
		if _, exists := custom[key]; !exists {
			t.Fatalf("expected key %s in custom details", key)
		}
	}

	losers, _ := custom["losers"].([]string)
	if len(losers) != 1 || !strings.Contains(losers[0], "running shoes") {
		t.Fatalf("expected formatted loser line, got %v", losers)
	}

	dedup, _ := event["dedup_key"].(string)
	if !strings.Contains(dedup, "brand-1") || !strings.Contains(dedup, "2026-03-14") {
		t.Fatalf("expected dedup key scoped to brand and day, got %s", dedup)
	}
}
