package notify

import (
	"context"
	"time"
)

// Severity constants recognised by downstream sinks.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
)

// MoveLine is one keyword movement inside a movers notification.
type MoveLine struct {
	Keyword          string
	Country          string
	PreviousPosition int
	CurrentPosition  int
	Change           int
}

// MoversPayload captures the canonical data we emit when significant rank
// movement is detected for a brand.
type MoversPayload struct {
	BrandID    string
	BrandName  string
	DetectedOn time.Time
	Severity   string
	Gainers    []MoveLine
	Losers     []MoveLine
	// SignificantCount is the total number of movers that crossed the
	// alert threshold, which may exceed the sampled lines above.
	SignificantCount int
}

// Sink describes a destination capable of consuming movers notifications.
type Sink interface {
	SendMovers(ctx context.Context, payload MoversPayload) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, payload MoversPayload) error

// SendMovers implements the Sink interface.
func (f SinkFunc) SendMovers(ctx context.Context, payload MoversPayload) error {
	if f == nil {
		return nil
	}
	return f(ctx, payload)
}
