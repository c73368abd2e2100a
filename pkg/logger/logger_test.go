package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}

	ctx := context.Background()
	logger.Info(ctx, "info message", String("key", "value"))
	logger.Warn(ctx, "warn message", Int("count", 3))
	logger.Error(ctx, "error message", Bool("flag", true))
	logger.Debug(ctx, "debug message", Float64("score", 0.42))
}

func TestLoggerNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	named := Named("test-component")
	if named == nil {
		t.Fatal("named logger is nil")
	}
	named.Info(context.Background(), "named message")

	nested := named.Named("inner")
	if nested == nil {
		t.Fatal("nested named logger is nil")
	}
}

func TestSetLevelString(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	for _, level := range []string{"debug", "info", "warn", "warning", "error", "  INFO  "} {
		if err := SetLevelString(level); err != nil {
			t.Errorf("expected level %q to parse, got %v", level, err)
		}
	}

	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected unknown level to fail")
	}

	// Restore default.
	SetLevel(slog.LevelInfo)
}

func TestFieldConstructors(t *testing.T) {
	cases := []struct {
		field Field
		key   string
	}{
		{String("s", "v"), "s"},
		{Int("i", 1), "i"},
		{Float64("f", 1.5), "f"},
		{Bool("b", true), "b"},
		{Any("a", struct{}{}), "a"},
	}
	for _, c := range cases {
		if c.field.Key != c.key {
			t.Errorf("expected key %q, got %q", c.key, c.field.Key)
		}
	}

	if f := Error(context.Canceled); f.Key != "error" {
		t.Errorf("expected error field key, got %q", f.Key)
	}
}
