package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var modelsJSON bool

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Inspect and switch models on a remote server",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List models the server offers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !remoteMode(cfg) {
			return errors.New("models requires a remote server; set base_url in the config")
		}
		c := newClient(cfg)
		defer c.Close()

		models, err := c.ListModels(cmd.Context())
		if err != nil {
			return err
		}
		if modelsJSON {
			return printJSON(models)
		}
		for _, m := range models {
			fmt.Printf("%-28s %-12s %s\n", m.ID, m.Provider, m.Name)
		}
		return nil
	},
}

var modelsSetCmd = &cobra.Command{
	Use:   "set <model-id>",
	Short: "Switch the server's active model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !remoteMode(cfg) {
			return errors.New("models requires a remote server; set base_url in the config")
		}
		c := newClient(cfg)
		defer c.Close()

		if err := c.SetModel(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("active model set to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsSetCmd)
	modelsListCmd.Flags().BoolVar(&modelsJSON, "json", false, "Output as JSON")
}
