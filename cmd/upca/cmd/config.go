package cmd

import (
	"fmt"

	"github.com/MeKo-Tech/upca/internal/config"
	"github.com/spf13/cobra"
)

// configCmd shows the resolved configuration or writes a default file.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Print the configuration after merging defaults, config file, UPCA_*
environment variables and flags, in the config file format.

Examples:
  upca config
  upca config --init upca.yaml`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if path, _ := cmd.Flags().GetString("init"); path != "" {
			if err := config.GenerateDefaultConfigFile(path); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "Default configuration written to %s\n", path)
			return nil
		}

		GetConfigLoader().PrintConfigInfo(out)
		data, err := GetConfig().ToYAML()
		if err != nil {
			return fmt.Errorf("failed to render configuration: %w", err)
		}
		_, _ = out.Write(data)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().String("init", "", "write a default configuration file to this path")
}
