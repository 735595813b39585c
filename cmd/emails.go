package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openschools-au/schoolsearch-cli/internal/export"
	"github.com/openschools-au/schoolsearch-cli/internal/model"
	"github.com/openschools-au/schoolsearch-cli/internal/search"
)

var (
	emailsLocation string
	emailsRadius   float64
	emailsSector   string
)

var emailsCmd = &cobra.Command{
	Use:   "emails",
	Short: "Print the de-duplicated contact emails of a radius search",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initSearchEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Session.Search(search.Query{
			Location: emailsLocation,
			RadiusKm: radiusFromFlags(cmd, emailsRadius),
			Sector:   emailsSector,
		})
		if err != nil {
			return err
		}
		env.logSearch(ctx, emailsLocation, result.State)

		emails := export.Emails(result.State.Rows)
		if len(emails) == 0 {
			// Informational, not an error: the search itself succeeded.
			zap.L().Info("no emails in current result set",
				zap.String("label", result.State.Center.Label),
				zap.Int("rows", len(result.State.Rows)),
			)
			return nil
		}

		for _, email := range emails {
			fmt.Println(email)
		}
		return nil
	},
}

func init() {
	emailsCmd.Flags().StringVar(&emailsLocation, "location", "", "postcode or suburb query (required)")
	emailsCmd.Flags().Float64Var(&emailsRadius, "radius", 0, "search radius in km (default from config)")
	emailsCmd.Flags().StringVar(&emailsSector, "sector", model.SectorAll, "sector filter: government, catholic, independent, or all")
	rootCmd.AddCommand(emailsCmd)
}
