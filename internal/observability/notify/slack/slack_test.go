package slack

import (
	"strings"
	"testing"
	"time"

	"github.com/linkpilot/linkpilot-api/internal/observability/notify"
)

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected error when webhook url missing")
	}
}

func TestFormatMessageIncludesFields(t *testing.T) {
	client, err := NewClient(Config{
		WebhookURL: "https://hooks.slack.com/services/test",
		Channel:    "#seo-alerts",
		Username:   "bot",
		Timeout:    time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.MoversPayload{
		BrandID:    "brand-1",
		BrandName:  "Acme Outdoors",
		DetectedOn: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Gainers: []notify.MoveLine{
			{Keyword: "trail boots", Country: "us", PreviousPosition: 24, CurrentPosition: 9, Change: 15},
		},
		Losers: []notify.MoveLine{
			{Keyword: "running shoes", Country: "us", PreviousPosition: 4, CurrentPosition: 19, Change: -15},
		},
		SignificantCount: 2,
	})

	if msg["username"] != "bot" {
		t.Fatalf("expected username to be preserved, got %v", msg["username"])
	}
	if msg["channel"] != "#seo-alerts" {
		t.Fatalf("expected channel to be set, got %v", msg["channel"])
	}

	text, ok := msg["text"].(string)
	if !ok {
		t.Fatalf("expected text field")
	}
	if !containsAll(
		text,
		[]string{"Rank movement alert", "Acme Outdoors", "trail boots", "running shoes", "2026-03-14"},
	) {
		t.Fatalf("message text missing fields: %s", text)
	}
	if !strings.Contains(text, "4 → 19 (-15)") {
		t.Fatalf("expected loser movement line, got: %s", text)
	}
}

func TestFormatMessageFallsBackToBrandID(t *testing.T) {
	client, err := NewClient(Config{
		WebhookURL: "https://hooks.slack.com/services/test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.MoversPayload{
		BrandID:          "brand-9",
		SignificantCount: 1,
	})

	text, ok := msg["text"].(string)
	if !ok {
		t.Fatalf("expected text field")
	}
	if !strings.Contains(text, "brand-9") {
		t.Fatalf("expected brand id in header, got: %s", text)
	}
	if msg["username"] != "linkpilot" {
		t.Fatalf("expected default username, got %v", msg["username"])
	}
}

func TestFormatMessageEscapesBrandName(t *testing.T) {
	client, err := NewClient(Config{
		WebhookURL: "https://hooks.slack.com/services/test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.MoversPayload{
		BrandID:          "brand-1",
		BrandName:        "test & <brand>",
		SignificantCount: 1,
	})

	text, ok := msg["text"].(string)
	if !ok {
		t.Fatalf("expected text field")
	}

	if !strings.Contains(text, "test &amp; &lt;brand&gt;") {
		t.Fatalf("expected escaped brand name, got: %s", text)
	}
}

func containsAll(text string, substrs []string) bool {
	for _, s := range substrs {
		if !strings.Contains(text, s) {
			return false
		}
	}
	return true
}
