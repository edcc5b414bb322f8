package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openharness/harness-go/client"
	"github.com/openharness/harness-go/event"
	"github.com/openharness/harness-go/harness"
)

var (
	executeModel   string
	executeSession string
	executeSystem  string
	executeJSON    bool
)

var executeCmd = &cobra.Command{
	Use:   "execute <message>",
	Short: "Run a prompt to completion and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		message := strings.Join(args, " ")
		ctx := cmd.Context()

		if remoteMode(cfg) {
			return executeRemote(ctx, cfg, message)
		}
		return executeLocal(ctx, cfg, message)
	},
}

func init() {
	rootCmd.AddCommand(executeCmd)
	executeCmd.Flags().StringVar(&executeModel, "model", "", "Model override")
	executeCmd.Flags().StringVar(&executeSession, "session", "", "Session id to continue")
	executeCmd.Flags().StringVar(&executeSystem, "system", "", "Extra system prompt")
	executeCmd.Flags().BoolVar(&executeJSON, "json", false, "Output as JSON")
}

func executeRemote(ctx context.Context, cfg *Config, message string) error {
	c := newClient(cfg)
	defer c.Close()

	exec, err := c.Execute(ctx, &client.ExecuteRequest{
		Message:      message,
		SessionID:    executeSession,
		SystemPrompt: executeSystem,
		Model:        executeModel,
	})
	if err != nil {
		return err
	}

	if executeJSON {
		return printJSON(exec)
	}
	fmt.Println(exec.Response)
	if exec.Usage != nil {
		fmt.Fprintf(os.Stderr, "tokens: %d in, %d out\n", exec.Usage.InputTokens, exec.Usage.OutputTokens)
	}
	return nil
}

func executeLocal(ctx context.Context, cfg *Config, message string) error {
	logger := newLogger()
	reg := buildRegistry(cfg)
	defer reg.Close()

	adapter, err := pickAdapter(reg, cfg)
	if err != nil {
		return err
	}
	logger.Debug("executing", "adapter", adapter.ID())

	res, err := adapter.Execute(ctx, &harness.ExecuteRequest{
		Message:      message,
		SessionID:    executeSession,
		SystemPrompt: executeSystem,
		Model:        executeModel,
	})
	if err != nil {
		return err
	}

	if executeJSON {
		return printJSON(res)
	}
	fmt.Println(res.Output)
	if res.Usage != nil {
		fmt.Fprintf(os.Stderr, "tokens: %d in, %d out\n", res.Usage.InputTokens, res.Usage.OutputTokens)
	}
	return nil
}

var streamCmd = &cobra.Command{
	Use:   "stream <message>",
	Short: "Run a prompt and print events as they arrive",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		message := strings.Join(args, " ")
		ctx := cmd.Context()

		if remoteMode(cfg) {
			return streamRemote(ctx, cfg, message)
		}
		return streamLocal(ctx, cfg, message)
	},
}

func init() {
	rootCmd.AddCommand(streamCmd)
	streamCmd.Flags().StringVar(&executeModel, "model", "", "Model override")
	streamCmd.Flags().StringVar(&executeSession, "session", "", "Session id to continue")
}

func streamRemote(ctx context.Context, cfg *Config, message string) error {
	c := newClient(cfg)
	defer c.Close()

	stream, err := c.ExecuteStream(ctx, &client.ExecuteRequest{
		Message:   message,
		SessionID: executeSession,
		Model:     executeModel,
	})
	if err != nil {
		return err
	}
	defer stream.Close()

	for stream.Next() {
		if err := printEvent(stream.Event()); err != nil {
			return err
		}
	}
	return stream.Err()
}

func streamLocal(ctx context.Context, cfg *Config, message string) error {
	reg := buildRegistry(cfg)
	defer reg.Close()

	adapter, err := pickAdapter(reg, cfg)
	if err != nil {
		return err
	}

	stream, err := adapter.ExecuteStream(ctx, &harness.ExecuteRequest{
		Message:   message,
		SessionID: executeSession,
		Model:     executeModel,
	})
	if err != nil {
		return err
	}

	for ev := range stream {
		if err := printEvent(ev); err != nil {
			return err
		}
	}
	return nil
}

// printEvent renders one stream event: text to stdout, everything else as
// bracketed notes on stderr. An error event fails the command.
func printEvent(ev event.Event) error {
	switch e := ev.(type) {
	case event.TextEvent:
		fmt.Print(e.Content)
	case event.ThinkingEvent:
		fmt.Fprintf(os.Stderr, "[thinking] %s\n", e.Thinking)
	case event.ToolCallStartEvent:
		fmt.Fprintf(os.Stderr, "[tool %s] %s\n", e.ID, e.Name)
	case event.ToolResultEvent:
		if !e.Success {
			fmt.Fprintf(os.Stderr, "[tool %s] failed: %s\n", e.ID, e.Error)
		}
	case event.ProgressEvent:
		fmt.Fprintf(os.Stderr, "[progress] %.0f%% %s\n", e.Percentage, e.Step)
	case event.DoneEvent:
		fmt.Println()
		if e.Usage != nil {
			fmt.Fprintf(os.Stderr, "tokens: %d in, %d out\n", e.Usage.InputTokens, e.Usage.OutputTokens)
		}
	case event.ErrorEvent:
		fmt.Println()
		return fmt.Errorf("execution failed: %s: %s", e.Code, e.Message)
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
