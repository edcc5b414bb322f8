//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/openharness/harness-go/adapters/goose"
	"github.com/openharness/harness-go/event"
	"github.com/openharness/harness-go/harness"
)

// serverURL points the tests at a running Goose server.
func serverURL(t *testing.T) string {
	url := os.Getenv("GOOSE_SERVER_URL")
	if url == "" {
		t.Skip("GOOSE_SERVER_URL not set")
	}
	return url
}

func TestExecuteStream_Simple(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	a := goose.New(goose.WithBaseURL(serverURL(t)))
	defer a.Close()

	stream, err := a.ExecuteStream(ctx, &harness.ExecuteRequest{
		Message: "What is 7*8? Reply with just the number.",
	})
	if err != nil {
		t.Fatalf("ExecuteStream failed: %v", err)
	}

	v := event.NewValidator()
	for ev := range stream {
		if err := v.Observe(ev); err != nil {
			t.Fatalf("stream violated event rules: %v", err)
		}
	}
	if err := v.Finish(); err != nil {
		t.Fatalf("stream ended badly: %v", err)
	}
}
