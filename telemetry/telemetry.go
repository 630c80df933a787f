// Package telemetry provides hierarchical timing collection for operations.
// It allows tracking operation durations in a tree structure for detailed
// performance analysis.
//
// The telemetry system uses the context pattern for non-intrusive instrumentation.
// Collectors are passed through context and can be enabled/disabled without
// changing function signatures.
//
// Example usage:
//
//	// Create a timing collector
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	// Instrument operations
//	timer := collector.Start("load sources")
//	defer timer.End()
//
//	// Nested operations
//	childTimer := timer.Child("analyze app.py")
//	// ... work ...
//	childTimer.End()
//
//	// Print report
//	collector.Report(os.Stderr, nil)
package telemetry

import (
	"context"
	"io"

	"github.com/noqacheck/noqacheck/output"
)

// contextKey types are private to avoid collisions with other packages'
// context values.
type (
	contextKey          struct{}
	rootTimerContextKey struct{}
)

var (
	collectorKey = contextKey{}
	rootTimerKey = rootTimerContextKey{}
)

// Collector is the main interface for collecting telemetry data.
// Implementations can collect timings, metrics, or other telemetry data.
type Collector interface {
	// Start begins timing an operation and returns a Timer.
	// The timer should be ended with End() when the operation completes.
	Start(name string) Timer

	// Report outputs the collected telemetry to a writer.
	// The format is implementation-specific. styles may be nil for
	// unstyled output.
	Report(w io.Writer, styles *output.Styles)
}

// Timer tracks a single operation's timing.
// Timers support hierarchical nesting via Child().
type Timer interface {
	// End stops the timer and records the duration.
	End()

	// Child creates a nested timer under this timer.
	// The child timer will appear nested in the output.
	Child(name string) Timer
}

// WithCollector adds a collector to a context.
// The collector can be retrieved later with FromContext.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext extracts the collector from context.
// If no collector is present, returns a no-op collector that does nothing.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

// WithRootTimer adds a command-level timer to a context so that library
// layers can attach their timings under it.
func WithRootTimer(ctx context.Context, timer Timer) context.Context {
	return context.WithValue(ctx, rootTimerKey, timer)
}

// RootTimerFromContext extracts the root timer from context, or nil when
// none is set.
func RootTimerFromContext(ctx context.Context) Timer {
	if timer, ok := ctx.Value(rootTimerKey).(Timer); ok {
		return timer
	}
	return nil
}

// StartTimer begins timing an operation under the root timer carried by
// ctx. When no root timer is set it falls back to the context's collector,
// and with neither present the returned timer is a no-op. Attaching to the
// root keeps timings from concurrent operations as siblings instead of
// nesting them in arrival order.
func StartTimer(ctx context.Context, name string) Timer {
	if root := RootTimerFromContext(ctx); root != nil {
		return root.Child(name)
	}
	return FromContext(ctx).Start(name)
}
