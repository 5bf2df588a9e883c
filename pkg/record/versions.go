package record

import (
	"sort"

	"github.com/spf13/cast"
)

// Version statuses derived from the dates on a version entry.
const (
	StatusCurrent    = "current"
	StatusProposed   = "proposed"
	StatusDeprecated = "deprecated"
)

// Version is one entry of a record's version history, with its dates
// interpreted into a display status.
type Version struct {
	Number      string       `json:"number"`
	Date        string       `json:"date,omitempty"`
	Status      string       `json:"status,omitempty"`
	Note        string       `json:"note,omitempty"`
	Issued      string       `json:"issued,omitempty"`
	Available   string       `json:"available,omitempty"`
	ValidFrom   string       `json:"valid_from,omitempty"`
	ValidTo     string       `json:"valid_to,omitempty"`
	Identifiers []Identifier `json:"identifiers,omitempty"`
	Samples     []Sample     `json:"samples,omitempty"`
	Namespaces  []Namespace  `json:"namespaces,omitempty"`
	Locations   []Location   `json:"locations,omitempty"`
}

// Versions interprets the record's version history for display: entries
// without a number are dropped, dates collapse into a single display date,
// statuses are derived, and the list is sorted newest first. Returns nil when
// the record has no version information.
func (r Record) Versions() []Version {
	raw := toMapSlice(r.Get("versions"))
	if raw == nil {
		return nil
	}
	versions := make([]Version, 0, len(raw))
	for _, entry := range raw {
		number := cast.ToString(entry["number"])
		if number == "" {
			continue
		}
		v := Version{
			Number:      number,
			Note:        cast.ToString(entry["note"]),
			Issued:      cast.ToString(entry["issued"]),
			Available:   cast.ToString(entry["available"]),
			ValidFrom:   cast.ToString(entry["valid_from"]),
			ValidTo:     cast.ToString(entry["valid_to"]),
			Identifiers: identifiersFrom(entry["identifiers"]),
			Samples:     samplesFrom(entry["samples"]),
			Locations:   locationsFrom(entry["locations"]),
		}
		for _, ns := range toMapSlice(entry["namespaces"]) {
			v.Namespaces = append(v.Namespaces, Namespace{
				Prefix: cast.ToString(ns["prefix"]),
				URI:    cast.ToString(ns["uri"]),
			})
		}
		v.Date, v.Status = interpretDates(v)
		versions = append(versions, v)
	}

	sort.SliceStable(versions, func(i, j int) bool {
		if versions[i].Date != versions[j].Date {
			return versions[i].Date > versions[j].Date
		}
		return versions[i].Number > versions[j].Number
	})

	// The newest version without an explicit status is the current one.
	for i := range versions {
		switch versions[i].Status {
		case StatusCurrent:
			return versions
		case StatusProposed, StatusDeprecated:
			continue
		default:
			versions[i].Status = StatusCurrent
			return versions
		}
	}
	return versions
}

func interpretDates(v Version) (date, status string) {
	switch {
	case v.Issued != "":
		date = v.Issued
		if v.ValidTo != "" {
			status = StatusDeprecated
		}
	case v.ValidFrom != "":
		date = v.ValidFrom
		if v.ValidTo != "" {
			status = StatusDeprecated
		} else {
			status = StatusCurrent
		}
	case v.Available != "":
		date = v.Available
		status = StatusProposed
	}
	return date, status
}
