package debug

import (
	"context"
	"log/slog"
	"testing"
)

func TestRuntimeAttrs_ReportsGoroutines(t *testing.T) {
	attrs := RuntimeAttrs(7)
	if len(attrs) != 5 {
		t.Fatalf("attrs=%d want 5", len(attrs))
	}
	a, ok := attrs[0].(slog.Attr)
	if !ok || a.Key != "goroutines" || a.Value.Uint64() != 7 {
		t.Fatalf("unexpected first attr %#v", attrs[0])
	}
	if h, ok := attrs[2].(slog.Attr); !ok || h.Value.String() == "" {
		t.Fatalf("heap_alloc should be a humanized string: %#v", attrs[2])
	}
}

func TestStartLoggers_NilLoggerIsNoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartGoroutineLogger(ctx, 0, nil)
	StartMemLogger(ctx, 0, nil)
}
