package server

import (
	"fmt"
	"strings"

	"blsexplorer/models"
)

// keyPlaceholder replaces the shared demo key in copyable example code so
// the operator's credential never leaks.
const keyPlaceholder = "your_api_key"

// Snippets are the read-only code panels shown after a successful fetch.
type Snippets struct {
	Data     string
	Metadata string
	License  string
}

func buildSnippets(params models.QueryParams, demoKey string) *Snippets {
	shownKey := params.APIKey
	if shownKey == demoKey {
		shownKey = keyPlaceholder
	}
	return &Snippets{
		Data:     dataSnippet(params, shownKey),
		Metadata: metadataSnippet(params, shownKey),
		License:  licenseText,
	}
}

func dataSnippet(params models.QueryParams, shownKey string) string {
	ids := make([]string, 0, len(params.SeriesIDs))
	for _, id := range params.SeriesIDs {
		ids = append(ids, fmt.Sprintf("%q", id))
	}
	return fmt.Sprintf(`client, err := blsapi.NewClient(config.DefaultConfig())
if err != nil {
	log.Fatal(err)
}

data, logTable, err := client.GetData(context.Background(), models.QueryParams{
	SeriesIDs: []string{%s},
	StartYear: %d,
	EndYear:   %d,
	APIKey:    %q,
})
if err != nil {
	log.Fatal(err)
}
if !logTable.Empty() {
	// the API reported problems; inspect logTable.Rows
}`, strings.Join(ids, ", "), params.StartYear, params.EndYear, shownKey)
}

func metadataSnippet(params models.QueryParams, shownKey string) string {
	return fmt.Sprintf(`client, err := blsapi.NewClient(config.DefaultConfig())
if err != nil {
	log.Fatal(err)
}

// Catalog of supported surveys, abbreviation -> full name.
surveys, err := client.Surveys(context.Background())

// Description, year bounds, data preview, and series list for one survey.
meta, err := client.SurveyMetadata(context.Background(), %q)

_ = surveys
_ = meta
_ = %q // pass your key through config.DemoAPIKey for metadata previews`,
		params.SurveyName, shownKey)
}

const licenseText = `This explorer retrieves public data from the U.S. Bureau of Labor ` +
	`Statistics API (www.bls.gov/developers/). BLS.gov cannot vouch for the data or ` +
	`analyses derived from these data after the data have been retrieved from BLS.gov. ` +
	`The software is provided "as is", without warranty of any kind; use of the shared ` +
	`demo key is limited to personal, educational, and non-commercial research purposes.`
