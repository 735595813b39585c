// Package flavour supplies optional regional descriptions for resolved
// locations. The notes live in a YAML file keyed by region code and label;
// a missing file or key only suppresses the note, never a search.
package flavour

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Provider looks up decorative notes for resolved location labels.
type Provider struct {
	notes map[string]map[string]string
}

// LoadNotes reads a notes file of the form:
//
//	nsw:
//	  "Suburb Newtown": "Inner West, high enrolment density."
//	  "Postcode 2000": "Sydney CBD."
func LoadNotes(path string) (*Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "flavour: read %s", path)
	}

	notes := make(map[string]map[string]string)
	if err := yaml.Unmarshal(data, &notes); err != nil {
		return nil, eris.Wrapf(err, "flavour: parse %s", path)
	}

	return &Provider{notes: notes}, nil
}

// Note returns the note for the given label and region code, or "" when
// none is configured. Safe to call on a nil Provider.
func (p *Provider) Note(label, regionCode string) string {
	if p == nil {
		return ""
	}
	return p.notes[strings.ToLower(regionCode)][label]
}
