package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openharness/harness-go/client"
	"github.com/openharness/harness-go/harness"
)

var adaptersJSON bool

var adaptersCmd = &cobra.Command{
	Use:   "adapters",
	Short: "List available adapters and their capabilities",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if remoteMode(cfg) {
			c := newClient(cfg)
			defer c.Close()

			page, err := c.ListHarnesses(ctx, client.PaginationParams{})
			if err != nil {
				return err
			}
			if adaptersJSON {
				return printJSON(page.Data)
			}
			for _, h := range page.Data {
				fmt.Printf("%-16s %-24s %s (%s)\n", h.ID, h.Name, h.Vendor, h.Status)
			}
			return nil
		}

		reg := buildRegistry(cfg)
		defer reg.Close()

		adapters := reg.List()
		if adaptersJSON {
			manifests := make([]harness.Manifest, 0, len(adapters))
			for _, a := range adapters {
				manifests = append(manifests, harness.DefaultManifest(a))
			}
			return printJSON(manifests)
		}
		for _, a := range adapters {
			fmt.Printf("%-16s %-24s v%s\n", a.ID(), a.Name(), a.Version())
			for _, entry := range harness.DefaultManifest(a).Capabilities {
				fmt.Printf("    %s\n", entry.ID)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adaptersCmd)
	adaptersCmd.Flags().BoolVar(&adaptersJSON, "json", false, "Output as JSON")
}
