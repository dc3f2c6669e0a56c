// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/umsproject/ums/internal/config"
	"github.com/umsproject/ums/internal/logger"
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Directory holding main.toml (default ./etc/)")
}

var (
	configPath string // Path to the configuration directory
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "ums",
		Short: "UMS is a user management service",
		Long: `UMS manages users, groups, roles and permissions behind a JSON API.
Users log in with a name and password and receive a bearer token whose
scopes are the permissions of their role.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
	}
)

// loadConfig reads the configuration and starts the logger.
func loadConfig(_ *cobra.Command, _ []string) error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err //nolint:wrapcheck
	}

	return logger.Init(cfg.Log) //nolint:wrapcheck
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute() //nolint:wrapcheck
}
