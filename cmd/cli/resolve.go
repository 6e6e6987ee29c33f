package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [url]",
	Short: "Resolve a post URL into its media list",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, service, _, err := setup()
		if err != nil {
			fatal(err)
		}

		result, err := service.Resolve(context.Background(), args[0])
		if err != nil {
			fatal(err)
		}

		fmt.Printf("Post %s by @%s (%s), %d item(s):\n\n",
			result.Shortcode, result.Username, result.Provider, len(result.Items))

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tID\tTYPE\tURL")
		for i, item := range result.Items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, item.ID, item.Kind, item.DownloadURL)
		}
		w.Flush()
	},
}
