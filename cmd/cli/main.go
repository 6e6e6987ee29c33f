package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LeSteak11/social-media-downloader/internal/app"
	"github.com/LeSteak11/social-media-downloader/internal/domain"
	"github.com/LeSteak11/social-media-downloader/pkg/logger"
)

var (
	configPath string
	verbose    bool

	rootCmd = &cobra.Command{
		Use:   "smdl",
		Short: "Social media downloader - resolve posts and download their media",
		Long: `A command-line tool that resolves a social-media post URL into its
media assets and downloads them concurrently with collision-free naming.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads config and builds the application service for a command run
func setup() (*domain.Config, *app.Service, *zap.Logger, error) {
	config, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	level := config.Logging.Level
	if verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{
		Level:      level,
		Format:     config.Logging.Format,
		OutputPath: "stderr",
	})
	if err != nil {
		return nil, nil, nil, err
	}

	service, err := app.BuildService(config, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return config, service, log, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
