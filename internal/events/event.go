// Package events defines the record emitted when a generate or build operation finishes and
// the Sink interface that history and notification backends implement.
package events

import (
	"context"
	stdErrors "errors"
	"time"
)

// Event types.
const (
	TypeSiteGenerated      = "site.generated"
	TypeSiteGenerateFailed = "site.generate_failed"
	TypeSiteBuilt          = "site.built"
	TypeSiteBuildFailed    = "site.build_failed"
)

// Event describes one finished operation.
type Event struct {
	OpID       string    `json:"opId"`
	Type       string    `json:"type"`
	Site       string    `json:"siteName"`
	Path       string    `json:"path,omitempty"`
	Files      int       `json:"files"`
	DurationMs int64     `json:"durationMs"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// Failed reports whether the event records a failed operation.
func (e Event) Failed() bool {
	return e.Type == TypeSiteGenerateFailed || e.Type == TypeSiteBuildFailed
}

// Sink receives finished-operation events.
type Sink interface {
	Publish(ctx context.Context, e Event) error
}

// NoopSink discards events.
type NoopSink struct{}

func (NoopSink) Publish(context.Context, Event) error { return nil }

// Multi fans an event out to several sinks and joins their errors.
type Multi []Sink

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return stdErrors.Join(errs...)
}
