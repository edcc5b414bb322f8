//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/openharness/harness-go/adapters/claudecode"
	"github.com/openharness/harness-go/event"
	"github.com/openharness/harness-go/harness"
)

func TestExecute_Simple(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	a := claudecode.New(claudecode.WithWorkDir(t.TempDir()))
	defer a.Close()

	res, err := a.Execute(ctx, &harness.ExecuteRequest{
		Message: "What is 7*8? Reply with just the number.",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.Output == "" {
		t.Fatal("expected non-empty output")
	}
	t.Logf("Response: %s", res.Output)
	if res.Usage != nil {
		t.Logf("Tokens: %d in, %d out", res.Usage.InputTokens, res.Usage.OutputTokens)
	}
}

func TestExecuteStream_Lifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	a := claudecode.New(claudecode.WithWorkDir(t.TempDir()))
	defer a.Close()

	stream, err := a.ExecuteStream(ctx, &harness.ExecuteRequest{
		Message: "What is 7*8? Reply with just the number.",
	})
	if err != nil {
		t.Fatalf("ExecuteStream failed: %v", err)
	}

	v := event.NewValidator()
	var sawText bool
	for ev := range stream {
		if err := v.Observe(ev); err != nil {
			t.Fatalf("stream violated event rules: %v", err)
		}
		if ev.EventType() == event.TypeText {
			sawText = true
		}
	}
	if err := v.Finish(); err != nil {
		t.Fatalf("stream ended badly: %v", err)
	}
	if !sawText {
		t.Fatal("expected at least one text event")
	}
}
