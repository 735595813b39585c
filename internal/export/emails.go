// Package export derives downstream artifacts from the displayed result
// rows: de-duplicated email lists, CSV documents, and XLSX workbooks.
package export

import (
	"strings"

	"github.com/openschools-au/schoolsearch-cli/internal/model"
)

// Emails returns the de-duplicated contact emails of the given rows,
// trimmed, blanks dropped, first-occurrence order preserved. Equality is
// case-sensitive. An empty result is informational, not an error.
func Emails(rows []model.Row) []string {
	seen := make(map[string]struct{}, len(rows))
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		email := strings.TrimSpace(r.Email)
		if email == "" {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		out = append(out, email)
	}
	return out
}
