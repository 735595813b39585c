package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/openschools-au/schoolsearch-cli/internal/model"
)

// Header is the fixed CSV column order. It is a compatibility contract for
// downstream consumers of exported documents.
var Header = []string{
	"School", "Sector", "Suburb", "Postcode", "Phone",
	"Distance (km)", "Email", "Contact Form", "Website",
}

// CSV renders the rows as a CSV document: every cell quoted, embedded
// quotes doubled, records joined with \n and no trailing newline. Absent
// optional fields render as empty strings.
func CSV(rows []model.Row) string {
	var b strings.Builder
	writeRecord(&b, Header)
	for _, r := range rows {
		b.WriteByte('\n')
		writeRecord(&b, []string{
			r.Name,
			r.Sector,
			r.Suburb,
			r.Postcode,
			r.Phone,
			strconv.FormatFloat(r.DistanceKm, 'f', 2, 64),
			r.Email,
			r.ContactFormURL,
			r.WebsiteURL,
		})
	}
	return b.String()
}

func writeRecord(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
}

var nonSlugRe = regexp.MustCompile(`\s+`)

// Filename derives the export filename from the region code, the resolved
// label (lower-cased, whitespace replaced with hyphens), and the radius.
func Filename(regionCode, label string, radiusKm float64, ext string) string {
	slug := nonSlugRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(label)), "-")
	radius := strconv.FormatFloat(radiusKm, 'f', -1, 64)
	return fmt.Sprintf("%s-schools-%s-%skm.%s", strings.ToLower(regionCode), slug, radius, ext)
}
