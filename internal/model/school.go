package model

import "strings"

// SectorAll is the sector filter sentinel matching every record.
const SectorAll = "all"

// Known sector values in the NSW dataset.
const (
	SectorGovernment  = "government"
	SectorCatholic    = "catholic"
	SectorIndependent = "independent"
)

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// School is one immutable dataset record. Field names match the
// schools.min.json document produced by the offline pipeline.
type School struct {
	Sector         string  `json:"sector"`
	Name           string  `json:"school_name"`
	Suburb         string  `json:"suburb"`
	Postcode       string  `json:"postcode"`
	Phone          string  `json:"phone,omitempty"`
	Email          string  `json:"public_email,omitempty"`
	ContactFormURL string  `json:"contact_form_url,omitempty"`
	WebsiteURL     string  `json:"website_url,omitempty"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
}

// HasEmail reports whether the record carries a non-blank contact email.
func (s School) HasEmail() bool {
	return strings.TrimSpace(s.Email) != ""
}

// Row is a School annotated with its distance from a search center.
// DistanceKm is rounded to two decimal places at materialization time
// and is always within the radius that produced the row.
type Row struct {
	School
	DistanceKm float64 `json:"distance_km"`
}
