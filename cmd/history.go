package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/openschools-au/schoolsearch-cli/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently executed searches from the search log",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		if st == nil {
			return eris.New("history: search logging is disabled (store.driver is empty)")
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		searches, err := st.RecentSearches(ctx, historyLimit)
		if err != nil {
			return err
		}
		if len(searches) == 0 {
			fmt.Println("No searches logged yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tQUERY\tRESOLVED\tRADIUS\tSECTOR\tRESULTS")
		for _, s := range searches {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.1f km\t%s\t%d\n",
				s.CreatedAt.Local().Format("2006-01-02 15:04"),
				s.Query, s.ResolvedLabel, s.RadiusKm, s.Sector, s.ResultCount)
		}
		return eris.Wrap(w.Flush(), "history: flush table")
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of searches to show")
	rootCmd.AddCommand(historyCmd)
}
