package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/LeSteak11/social-media-downloader/internal/app"
	"github.com/LeSteak11/social-media-downloader/internal/domain"
	"github.com/LeSteak11/social-media-downloader/internal/infrastructure"
)

var downloadCmd = &cobra.Command{
	Use:   "download [url]",
	Short: "Resolve a post URL and download its media",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config, service, log, err := setup()
		if err != nil {
			fatal(err)
		}

		itemsFlag, _ := cmd.Flags().GetString("items")
		dirFlag, _ := cmd.Flags().GetString("dir")

		ctx := context.Background()
		result, err := service.Resolve(ctx, args[0])
		if err != nil {
			fatal(err)
		}

		items, err := selectItems(result.Items, itemsFlag)
		if err != nil {
			fatal(err)
		}

		baseDir := dirFlag
		if baseDir == "" {
			baseDir, err = app.ResolveBaseDir(config)
			if err != nil {
				fatal(err)
			}
		}

		req := &domain.DownloadRequest{
			Provider:  result.Provider,
			Username:  result.Username,
			Shortcode: result.Shortcode,
			Items:     items,
		}

		outcomes, err := service.Download(ctx, req, baseDir)
		if err != nil {
			fatal(err)
		}

		bar := progressbar.NewOptions(len(items),
			progressbar.OptionSetDescription("downloading"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		var errs *multierror.Error
		completed := 0
		for outcome := range outcomes {
			if !outcome.Status.Terminal() {
				continue
			}
			bar.Add(1)
			if outcome.Status == domain.StatusFailed {
				errs = multierror.Append(errs, fmt.Errorf("%s: %s", outcome.ItemID, outcome.Error))
			} else {
				completed++
			}
		}
		bar.Finish()

		failed := len(items) - completed
		notifier := infrastructure.NewNotificationService(&config.Notification, log)
		notifier.NotifyBatchComplete(completed, failed)

		fmt.Printf("Done: %d downloaded, %d failed\n", completed, failed)
		if err := errs.ErrorOrNil(); err != nil {
			fatal(err)
		}
	},
}

func init() {
	downloadCmd.Flags().String("items", "", "comma-separated 1-based positions to download (default all)")
	downloadCmd.Flags().String("dir", "", "base download directory (default from config or OS downloads folder)")
}

// selectItems filters resolved items by 1-based list positions, e.g. "1,3".
// An empty spec selects everything.
func selectItems(items []domain.MediaItem, spec string) ([]domain.MediaItem, error) {
	if spec == "" {
		return items, nil
	}

	var selected []domain.MediaItem
	for _, part := range strings.Split(spec, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > len(items) {
			return nil, fmt.Errorf("invalid item selection %q (post has %d items)", part, len(items))
		}
		selected = append(selected, items[n-1])
	}
	return selected, nil
}
