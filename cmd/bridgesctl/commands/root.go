// Package commands implements bridgesctl, the operator CLI for the Bridges
// store.
package commands

import (
	"github.com/gogotex/bridges/internal/config"
	"github.com/gogotex/bridges/pkg/logger"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var cfg config.Config
	rootCmd := &cobra.Command{
		Use:           "bridgesctl",
		Short:         "Operate on the Bridges store",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.LoadConfig()
			if err != nil {
				return err
			}
			cfg = *loaded
			logger.Init(cfg.Log.Level)
			logger.SetFormat(cfg.Log.Format)
			logger.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}

	rootCmd.AddCommand(
		newExportCommand(&cfg),
		newTokenCommand(&cfg),
	)
	return rootCmd
}
