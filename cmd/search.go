package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/openschools-au/schoolsearch-cli/internal/export"
	"github.com/openschools-au/schoolsearch-cli/internal/model"
	"github.com/openschools-au/schoolsearch-cli/internal/search"
)

var (
	searchLocation   string
	searchRadius     float64
	searchSector     string
	searchEmailsOnly bool
	searchFormat     string
	searchOutput     string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find schools within a radius of a postcode or suburb",
	Long: `Resolves the location query against the fixed postcode and suburb
centroid tables and lists every school within the radius, sorted by distance.

Examples:
  # All schools within 10 km of Sydney CBD
  schoolsearch search --location 2000 --radius 10

  # Government schools near Newtown that publish a contact email
  schoolsearch search --location newtown --sector government --emails-only

  # Machine-readable output
  schoolsearch search --location 2042 --format json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initSearchEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Session.Search(search.Query{
			Location: searchLocation,
			RadiusKm: radiusFromFlags(cmd, searchRadius),
			Sector:   searchSector,
		})
		if err != nil {
			return err
		}
		env.logSearch(ctx, searchLocation, result.State)

		view := search.ApplyFilter(result.State, searchEmailsOnly)

		out := os.Stdout
		if searchOutput != "" {
			file, err := os.Create(searchOutput)
			if err != nil {
				return eris.Wrapf(err, "search: create %s", searchOutput)
			}
			defer file.Close() //nolint:errcheck
			out = file
		}

		fmt.Fprintln(os.Stderr, view.Summary)
		if result.Note != "" {
			fmt.Fprintln(os.Stderr, result.Note)
		}

		switch searchFormat {
		case "table":
			return printRowTable(out, view.Rows)
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return eris.Wrap(enc.Encode(view.Rows), "search: encode json")
		case "csv":
			_, err := fmt.Fprintln(out, export.CSV(view.Rows))
			return eris.Wrap(err, "search: write csv")
		default:
			return eris.Errorf("search: unknown format %q (want table, json, or csv)", searchFormat)
		}
	},
}

func printRowTable(out *os.File, rows []model.Row) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DISTANCE\tSCHOOL\tSECTOR\tSUBURB\tPOSTCODE\tEMAIL")
	for _, r := range rows {
		fmt.Fprintf(w, "%.2f km\t%s\t%s\t%s\t%s\t%s\n",
			r.DistanceKm, r.Name, r.Sector, r.Suburb, r.Postcode, r.Email)
	}
	return eris.Wrap(w.Flush(), "search: flush table")
}

func init() {
	searchCmd.Flags().StringVar(&searchLocation, "location", "", "postcode or suburb query (required)")
	searchCmd.Flags().Float64Var(&searchRadius, "radius", 0, "search radius in km (default from config)")
	searchCmd.Flags().StringVar(&searchSector, "sector", model.SectorAll, "sector filter: government, catholic, independent, or all")
	searchCmd.Flags().BoolVar(&searchEmailsOnly, "emails-only", false, "only show schools with a contact email")
	searchCmd.Flags().StringVar(&searchFormat, "format", "table", "output format: table, json, or csv")
	searchCmd.Flags().StringVar(&searchOutput, "output", "", "write rows to file instead of stdout")
	rootCmd.AddCommand(searchCmd)
}
