package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openschools-au/schoolsearch-cli/internal/model"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Load the dataset and report what it contains",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := initSearchEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		t := env.Tables
		fmt.Printf("Region: %s (%s)\n", t.RegionName, t.RegionCode)
		fmt.Printf("Loaded %d schools, %d postcode centroids, %d suburb centroids\n",
			len(t.Schools), len(t.Postcodes), len(t.Suburbs))

		bySector := map[string]int{}
		withEmail := 0
		for _, s := range t.Schools {
			bySector[s.Sector]++
			if s.HasEmail() {
				withEmail++
			}
		}
		for _, sector := range []string{model.SectorGovernment, model.SectorCatholic, model.SectorIndependent} {
			if n := bySector[sector]; n > 0 {
				fmt.Printf("  %-12s %d\n", sector, n)
			}
		}
		fmt.Printf("Schools with a contact email: %d\n", withEmail)

		if len(t.Schools) == 0 {
			fmt.Println("Dataset is empty: searches will run but always return zero rows.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
