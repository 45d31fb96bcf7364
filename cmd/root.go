package main

import (
	"github.com/spf13/cobra"

	"github.com/guttosm/badge-service/config"
)

// cli carries state shared by the subcommands.
type cli struct {
	configFile string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "badge-service",
		Short: "SVG version badges for vcpkg ports",
		Long: `badge-service answers GET /{package} with an SVG badge showing the
package name and its current version, as published in the port registry.

Without a subcommand it runs the HTTP service.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.configFile)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.serve(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&c.configFile, "config", "",
		"config file (YAML, TOML or JSON); defaults to $"+config.EnvConfigFile)

	root.AddCommand(
		newServeCmd(c),
		newRenderCmd(c),
		newConfigCmd(c),
	)
	return root
}
