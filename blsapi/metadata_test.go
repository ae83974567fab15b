package blsapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"blsexplorer/models"
	"github.com/jarcoal/httpmock"
)

const ceSurveyName = "Employment, Hours, and Earnings - National (Current Employment Statistics)"

func TestSurveyMetadataAssemblesRecord(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponderWithQuery("GET", "http://api.test/publicAPI/v2/timeseries/popular",
		map[string]string{"survey": "CE"},
		httpmock.NewStringResponder(http.StatusOK, `{
			"status": "REQUEST_SUCCEEDED",
			"Results": {"series": [{"seriesID": "CES0000000001"}, {"seriesID": "CES0500000003"}]}
		}`))
	transport.RegisterResponder("POST", "http://api.test/publicAPI/v2/timeseries/data/",
		httpmock.NewStringResponder(http.StatusOK, `{
			"status": "REQUEST_SUCCEEDED",
			"Results": {"series": [
				{"seriesID": "CES0000000001",
				 "catalog": {"series_title": "Total Nonfarm", "survey_name": "`+ceSurveyName+`", "survey_abbreviation": "CE"},
				 "data": [{"year": "2024", "period": "M01", "periodName": "January", "value": "157232", "footnotes": [{}]}]},
				{"seriesID": "CES0500000003",
				 "catalog": {"series_title": "Avg Hourly Earnings", "survey_name": "`+ceSurveyName+`", "survey_abbreviation": "CE"},
				 "data": [{"year": "2024", "period": "M01", "periodName": "January", "value": "34.55", "footnotes": [{}]}]}
			]}
		}`))
	transport.RegisterResponder("GET", "http://site.test/ces/",
		httpmock.NewStringResponder(http.StatusOK, `<html><head>
			<meta name="description" content="The Current Employment Statistics program surveys payroll records.">
			</head><body><main><p>fallback text</p></main></body></html>`).
			HeaderSet(http.Header{"Content-Type": []string{"text/html; charset=utf-8"}}))

	c := newTestClient(t, transport)
	meta, err := c.SurveyMetadata(context.Background(), ceSurveyName)
	if err != nil {
		t.Fatalf("survey metadata: %v", err)
	}

	if meta.SurveyAbbr != "CE" {
		t.Errorf("abbr = %q, want CE", meta.SurveyAbbr)
	}
	if meta.MinimumYear != 1939 {
		t.Errorf("minimum year = %d, want 1939", meta.MinimumYear)
	}
	if want := time.Now().Year(); meta.MaximumYear != want {
		t.Errorf("maximum year = %d, want %d", meta.MaximumYear, want)
	}
	if meta.Description != "The Current Employment Statistics program surveys payroll records." {
		t.Errorf("description = %q", meta.Description)
	}
	if len(meta.Series) != 2 {
		t.Fatalf("series count = %d, want 2", len(meta.Series))
	}
	if meta.Series[0].ID != "CES0000000001" || meta.Series[0].Title != "Total Nonfarm" {
		t.Errorf("series[0] = %+v", meta.Series[0])
	}
	if meta.Preview.Empty() {
		t.Fatalf("expected preview rows")
	}
	for _, col := range meta.Preview.Columns {
		if col == "survey_name" || col == "survey_abbreviation" {
			t.Errorf("preview should drop column %q", col)
		}
	}
}

func TestSurveyMetadataUnknownSurvey(t *testing.T) {
	c := newTestClient(t, httpmock.NewMockTransport())
	if _, err := c.SurveyMetadata(context.Background(), "Not A Survey"); err == nil {
		t.Fatalf("expected error for unknown survey")
	}
}

func TestSurveyMetadataScrapeFailureDegrades(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponderWithQuery("GET", "http://api.test/publicAPI/v2/timeseries/popular",
		map[string]string{"survey": "CE"},
		httpmock.NewStringResponder(http.StatusOK, `{
			"status": "REQUEST_SUCCEEDED",
			"Results": {"series": [{"seriesID": "CES0000000001"}]}
		}`))
	transport.RegisterResponder("POST", "http://api.test/publicAPI/v2/timeseries/data/",
		httpmock.NewStringResponder(http.StatusOK, `{
			"status": "REQUEST_SUCCEEDED",
			"Results": {"series": [
				{"seriesID": "CES0000000001",
				 "catalog": {"series_title": "Total Nonfarm", "survey_name": "`+ceSurveyName+`", "survey_abbreviation": "CE"},
				 "data": [{"year": "2024", "period": "M01", "periodName": "January", "value": "157232", "footnotes": [{}]}]}
			]}
		}`))
	// No responder for the survey page: the scrape fails.

	c := newTestClient(t, transport)
	meta, err := c.SurveyMetadata(context.Background(), ceSurveyName)
	if err != nil {
		t.Fatalf("scrape failure must not fail metadata: %v", err)
	}
	if meta.Description != "" {
		t.Errorf("description = %q, want empty", meta.Description)
	}
}

func TestPreviewTable(t *testing.T) {
	data := models.Table{
		Columns: DataColumns,
		Rows: [][]string{
			{"S1", "T1", "Survey", "SV", "2024", "M01", "January", "1.0", ""},
			{"S1", "T1", "Survey", "SV", "2024", "M02", "February", "2.0", ""},
			{"S1", "T1", "Survey", "SV", "2024", "M03", "March", "3.0", ""},
		},
	}
	preview := previewTable(data, 2)
	if len(preview.Rows) != 2 {
		t.Fatalf("preview rows = %d, want 2", len(preview.Rows))
	}
	if len(preview.Columns) != len(DataColumns)-2 {
		t.Fatalf("preview columns = %d, want %d", len(preview.Columns), len(DataColumns)-2)
	}
	if preview.Rows[0][0] != "S1" || preview.Rows[0][2] != "2024" {
		t.Errorf("unexpected preview row %v", preview.Rows[0])
	}
}
