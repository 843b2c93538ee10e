package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration as JSON",
	Long: `config loads and defaults the configuration document (the same
document run would use) and prints it back as JSON, so you can confirm
where a value actually came from after every default is applied.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		b, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		w.Println(string(b))
		return nil
	},
}
