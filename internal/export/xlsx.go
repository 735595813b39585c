package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/openschools-au/schoolsearch-cli/internal/model"
)

// WriteXLSX writes the rows as a single-sheet XLSX workbook at the given
// path, using the same column order as the CSV export.
func WriteXLSX(rows []model.Row, path string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Schools")
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range Header {
		header.AddCell().Value = col
	}

	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().Value = r.Name
		row.AddCell().Value = r.Sector
		row.AddCell().Value = r.Suburb
		row.AddCell().Value = r.Postcode
		row.AddCell().Value = r.Phone
		row.AddCell().SetFloatWithFormat(r.DistanceKm, "0.00")
		row.AddCell().Value = r.Email
		row.AddCell().Value = r.ContactFormURL
		row.AddCell().Value = r.WebsiteURL
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "xlsx: save %s", path)
	}
	return nil
}
