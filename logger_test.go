package s2

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerSilentByDefault(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	s := NewScene()
	s.Update(1.0 / 60)
	if !strings.Contains(buf.String(), "msg=update") {
		t.Errorf("no update record, got %q", buf.String())
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) did not restore the silent logger")
	}
}

func TestLoggerWarnsOnSingularInverse(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	if got := ScaleMatrix(0, 1).Invert(); got != IdentityMatrix() {
		t.Errorf("Invert = %v", got)
	}
	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), "falling back to identity") {
		t.Errorf("no singular matrix warning, got %q", buf.String())
	}

	buf.Reset()
	a := NewPolyCurve(World)
	a.AddLine(V(0, 0), V(1, 1))
	NewIntersector().Intersect(a, a)
	if buf.Len() != 0 {
		t.Errorf("intersect logged at info level: %q", buf.String())
	}
}
