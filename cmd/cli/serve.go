package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LeSteak11/social-media-downloader/api"
	"github.com/LeSteak11/social-media-downloader/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		config, service, log, err := setup()
		if err != nil {
			fatal(err)
		}

		baseDir, err := app.ResolveBaseDir(config)
		if err != nil {
			fatal(err)
		}

		router := api.SetupRouter(service, baseDir, log)
		addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
		log.Info("Server listening", zap.String("addr", addr))
		if err := router.Run(addr); err != nil {
			fatal(err)
		}
	},
}
