package logger

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext_CarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })

	ctx := WithFields(context.Background(), zap.String("request_id", "r-1"))
	ctx = WithFields(ctx, zap.String("actor_id", "a-1"))
	InfoCtx(ctx, "applied")
	ErrorCtx(ctx, errors.New("db down"))
	Error(nil)

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("entries=%d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "r-1" || fields["actor_id"] != "a-1" {
		t.Fatalf("fields=%v", fields)
	}
	if entries[1].Message != "db down" || entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("entry=%+v", entries[1])
	}
	if entries[2].Message != "error occurred" {
		t.Fatalf("nil error message=%q", entries[2].Message)
	}
}

func TestInitialize(t *testing.T) {
	t.Cleanup(func() { Set(nil) })
	if err := Initialize(Config{Debug: true}); err != nil {
		t.Fatal(err)
	}
	if !Default().Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug level should be enabled")
	}
	if err := Initialize(Config{}); err != nil {
		t.Fatal(err)
	}
	if Default().Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug level should be disabled in production mode")
	}
}
