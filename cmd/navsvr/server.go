package main

import (
	"context"

	cfg "navsvr/common/config"
	"navsvr/nav/app"

	"github.com/spf13/cobra"
)

func ServerCmd() *cobra.Command {
	var configFile string
	c := &cobra.Command{
		Use:   "server",
		Short: "navmesh server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.InitConfig(configFile)
			return app.Run(context.Background())
		},
	}
	c.Flags().StringVar(&configFile, "config", "application.toml", "config file")
	return c
}
