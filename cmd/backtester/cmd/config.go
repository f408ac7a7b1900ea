package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backtester/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write a default configuration file",
	Long: `Config writes the default configuration to the given path. The format
is chosen from the extension (.yaml/.yml or .json).

Example:
  backtester config --out config.yaml`,
	RunE: runConfigGen,
}

var cfgOut string

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVarP(&cfgOut, "out", "o", "config.yaml", "output path")
}

func runConfigGen(cmd *cobra.Command, args []string) error {
	if err := config.Default().SaveToFile(cfgOut); err != nil {
		return err
	}
	fmt.Printf("Wrote default config to %s\n", cfgOut)
	return nil
}
