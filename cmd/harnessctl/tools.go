package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openharness/harness-go/client"
)

var (
	toolsSource string
	toolsJSON   bool
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List tools exposed by the adapter or server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if remoteMode(cfg) {
			c := newClient(cfg)
			defer c.Close()

			page, err := c.ListTools(ctx, toolsSource, client.PaginationParams{})
			if err != nil {
				return err
			}
			if toolsJSON {
				return printJSON(page.Data)
			}
			for _, tool := range page.Data {
				fmt.Printf("%-20s %-10s %s\n", tool.Name, tool.Source, tool.Description)
			}
			return nil
		}

		reg := buildRegistry(cfg)
		defer reg.Close()

		adapter, err := pickAdapter(reg, cfg)
		if err != nil {
			return err
		}
		tools, err := adapter.ListTools(ctx)
		if err != nil {
			return err
		}
		if toolsJSON {
			return printJSON(tools)
		}
		if len(tools) == 0 {
			fmt.Printf("%s exposes no static tool list\n", adapter.ID())
			return nil
		}
		for _, tool := range tools {
			fmt.Printf("%-20s %-10s %s\n", tool.Name, tool.Source, tool.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.Flags().StringVar(&toolsSource, "source", "", "Filter by tool source (builtin, mcp, custom)")
	toolsCmd.Flags().BoolVar(&toolsJSON, "json", false, "Output as JSON")
}
