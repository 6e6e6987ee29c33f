package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent download history",
	Run: func(cmd *cobra.Command, args []string) {
		_, service, _, err := setup()
		if err != nil {
			fatal(err)
		}

		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := service.History(limit)
		if err != nil {
			fatal(err)
		}
		if len(entries) == 0 {
			fmt.Println("No history entries")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tPROVIDER\tITEM\tSTATUS\tFILE")
		for _, e := range entries {
			file := e.Filename
			if e.Status != "completed" && e.Error != "" {
				file = e.Error
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.CreatedAt.Format("2006-01-02 15:04"), e.Provider, e.ItemID, e.Status, file)
		}
		w.Flush()
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to show")
}
