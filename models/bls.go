// Package models defines data structures shared across the explorer.
package models

// Survey identifies one BLS statistical program.
type Survey struct {
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
}

// SeriesRef is one selectable time series within a survey. Title may be
// empty when the API returns no catalog entry for the series.
type SeriesRef struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// Metadata describes a single survey: its description text, the year bounds
// of its published data, a small preview table, and the series a user can
// pick from. Series IDs are unique within a survey.
type Metadata struct {
	SurveyName  string      `json:"survey_name"`
	SurveyAbbr  string      `json:"survey_abbreviation"`
	Description string      `json:"survey_description"`
	MinimumYear int         `json:"survey_minimum_year"`
	MaximumYear int         `json:"survey_maximum_year"`
	Preview     Table       `json:"data_preview"`
	Series      []SeriesRef `json:"series"`
}

// Table is an ordered set of columns plus rows of cell text. It is the
// common currency between the API client, the presenter, and CSV export.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Empty reports whether the table holds no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// QueryParams is a fully-built API request, constructed only on explicit
// user submission.
type QueryParams struct {
	SeriesIDs  []string `json:"seriesids"`
	StartYear  int      `json:"startyear"`
	EndYear    int      `json:"endyear"`
	APIKey     string   `json:"registrationkey"`
	SurveyName string   `json:"survey_name"`
	SurveyAbbr string   `json:"survey"`
}

// Result pairs the data table with the API's log table. An empty log is the
// sole success signal; any log rows mean the request failed in whole or in
// part and the log is shown verbatim.
type Result struct {
	Data Table `json:"data"`
	Log  Table `json:"log"`
}

// Succeeded reports whether the API returned no log messages.
func (r Result) Succeeded() bool { return r.Log.Empty() }
