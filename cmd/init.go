package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/beyond-scaling/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the book and writes the config file (default .beyondscaling.yml).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
