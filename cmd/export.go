package main

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openschools-au/schoolsearch-cli/internal/export"
	"github.com/openschools-au/schoolsearch-cli/internal/model"
	"github.com/openschools-au/schoolsearch-cli/internal/search"
)

var (
	exportLocation   string
	exportRadius     float64
	exportSector     string
	exportEmailsOnly bool
	exportFormat     string
	exportDir        string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a radius search result as a CSV or XLSX document",
	Long: `Runs a search and writes the displayed rows to a document whose name
is derived from the region code, the resolved label, and the radius,
e.g. nsw-schools-suburb-newtown-10km.csv.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if exportFormat != "csv" && exportFormat != "xlsx" {
			return eris.Errorf("export: unknown format %q (want csv or xlsx)", exportFormat)
		}

		env, err := initSearchEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Session.Search(search.Query{
			Location: exportLocation,
			RadiusKm: radiusFromFlags(cmd, exportRadius),
			Sector:   exportSector,
		})
		if err != nil {
			return err
		}
		env.logSearch(ctx, exportLocation, result.State)

		view := search.ApplyFilter(result.State, exportEmailsOnly)

		name := export.Filename(env.Tables.RegionCode, result.State.Center.Label, result.State.RadiusKm, exportFormat)
		path := filepath.Join(exportDir, name)

		switch exportFormat {
		case "csv":
			if err := os.WriteFile(path, []byte(export.CSV(view.Rows)), 0o644); err != nil {
				return eris.Wrapf(err, "export: write %s", path)
			}
		case "xlsx":
			if err := export.WriteXLSX(view.Rows, path); err != nil {
				return err
			}
		}

		zap.L().Info("export written",
			zap.String("path", path),
			zap.Int("rows", len(view.Rows)),
			zap.String("summary", view.Summary),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportLocation, "location", "", "postcode or suburb query (required)")
	exportCmd.Flags().Float64Var(&exportRadius, "radius", 0, "search radius in km (default from config)")
	exportCmd.Flags().StringVar(&exportSector, "sector", model.SectorAll, "sector filter: government, catholic, independent, or all")
	exportCmd.Flags().BoolVar(&exportEmailsOnly, "emails-only", false, "only export schools with a contact email")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "document format: csv or xlsx")
	exportCmd.Flags().StringVar(&exportDir, "dir", ".", "directory for the exported document")
	rootCmd.AddCommand(exportCmd)
}
