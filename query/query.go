// Package query implements the query-builder logic: series picklists, year
// range defaults, API-key precedence, and assembly of a submitted request.
package query

import (
	"fmt"
	"strings"

	"blsexplorer/models"
)

// defaultYearSpan is how far back the pre-selected year range reaches from
// the survey's latest year.
const defaultYearSpan = 5

// Picklist renders the series list as "{id}: {title}" display strings in
// series order. The first entry is the pre-selected default.
func Picklist(meta *models.Metadata) []string {
	entries := make([]string, 0, len(meta.Series))
	for _, s := range meta.Series {
		entries = append(entries, fmt.Sprintf("%s: %s", s.ID, s.Title))
	}
	return entries
}

// SeriesID recovers the raw series id from a picklist entry by splitting on
// the first colon, so colons inside the title are harmless.
func SeriesID(entry string) string {
	id, _, _ := strings.Cut(entry, ":")
	return strings.TrimSpace(id)
}

// ResolveKey applies the key precedence rule: a non-empty user-entered
// value, trimmed of surrounding whitespace, always overrides the shared
// demo key; an empty entry falls back to it.
func ResolveKey(userKey, demoKey string) string {
	if trimmed := strings.TrimSpace(userKey); trimmed != "" {
		return trimmed
	}
	return demoKey
}

// DefaultYearRange is the pre-selected slider range: the last five years of
// the survey, clamped to its bounds when the survey is narrower than that.
func DefaultYearRange(minYear, maxYear int) (int, int) {
	start := maxYear - defaultYearSpan
	if start < minYear {
		start = minYear
	}
	return start, maxYear
}

// BuildParams packages a submitted form into a request descriptor. Years
// are clamped to the survey bounds; the selection must be non-empty and the
// range ordered.
func BuildParams(meta *models.Metadata, selected []string, startYear, endYear int, userKey, demoKey string) (models.QueryParams, error) {
	if len(selected) == 0 {
		return models.QueryParams{}, fmt.Errorf("select at least one series")
	}
	if startYear > endYear {
		return models.QueryParams{}, fmt.Errorf("start year %d is after end year %d", startYear, endYear)
	}
	if startYear < meta.MinimumYear {
		startYear = meta.MinimumYear
	}
	if endYear > meta.MaximumYear {
		endYear = meta.MaximumYear
	}

	ids := make([]string, 0, len(selected))
	for _, entry := range selected {
		ids = append(ids, SeriesID(entry))
	}

	return models.QueryParams{
		SeriesIDs:  ids,
		StartYear:  startYear,
		EndYear:    endYear,
		APIKey:     ResolveKey(userKey, demoKey),
		SurveyName: meta.SurveyName,
		SurveyAbbr: meta.SurveyAbbr,
	}, nil
}
