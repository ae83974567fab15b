// Package blsapi is a thin client for the BLS public timeseries API v2.
// It exposes the three read operations the explorer needs: the survey
// catalog, per-survey metadata, and parameterized data retrieval. Data
// requests are chunked to the API's per-call limits and API-level failures
// are reported through a log table rather than an error.
package blsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"blsexplorer/config"
	"blsexplorer/models"
)

const (
	statusSucceeded = "REQUEST_SUCCEEDED"

	// Per-request limits documented for the v2 API. Requests without a
	// registration key fall back to the v1 limits.
	maxSeriesWithKey = 50
	maxYearsWithKey  = 20
	maxSeriesNoKey   = 25
	maxYearsNoKey    = 10
)

// DataColumns is the column order of every data table the client returns.
var DataColumns = []string{
	"series_id", "series_title", "survey_name", "survey_abbreviation",
	"year", "period", "period_name", "value", "footnotes",
}

// LogColumns is the column order of every log table the client returns.
var LogColumns = []string{"series_id", "message"}

// Client calls the BLS public timeseries API.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	Metrics    *Metrics
}

// NewClient builds a client configured from cfg.
func NewClient(cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("client config: %w", err)
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		Metrics: NewMetrics(),
	}, nil
}

// Surveys returns the catalog of supported surveys, abbreviation → full
// name. The set ships with the client; no network call is needed.
func (c *Client) Surveys(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	catalog := make(map[string]string, len(registry))
	for _, info := range registry {
		catalog[info.Abbr] = info.Name
	}
	return catalog, nil
}

type dataRequest struct {
	SeriesID        []string `json:"seriesid"`
	StartYear       string   `json:"startyear"`
	EndYear         string   `json:"endyear"`
	Catalog         bool     `json:"catalog"`
	RegistrationKey string   `json:"registrationkey,omitempty"`
}

type seriesCatalog struct {
	SeriesTitle        string `json:"series_title"`
	SurveyName         string `json:"survey_name"`
	SurveyAbbreviation string `json:"survey_abbreviation"`
}

type footnote struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

type observation struct {
	Year       string     `json:"year"`
	Period     string     `json:"period"`
	PeriodName string     `json:"periodName"`
	Value      string     `json:"value"`
	Footnotes  []footnote `json:"footnotes"`
}

type apiSeries struct {
	SeriesID string         `json:"seriesID"`
	Catalog  *seriesCatalog `json:"catalog"`
	Data     []observation  `json:"data"`
}

type apiResponse struct {
	Status  string   `json:"status"`
	Message []string `json:"message"`
	Results struct {
		Series []apiSeries `json:"series"`
	} `json:"Results"`
}

// GetData retrieves observations for req with the series catalog enabled.
// The request is split into chunks that respect the API's series and year
// limits; rows are merged back in the order the series were requested.
// API-level failures (bad key, unknown series, quota) come back as rows in
// the log table, not as an error.
func (c *Client) GetData(ctx context.Context, req models.QueryParams) (models.Table, models.Table, error) {
	data := models.Table{Columns: DataColumns}
	logTable := models.Table{Columns: LogColumns}
	if len(req.SeriesIDs) == 0 {
		return data, logTable, fmt.Errorf("no series ids requested")
	}
	if req.StartYear > req.EndYear {
		return data, logTable, fmt.Errorf("start year %d after end year %d", req.StartYear, req.EndYear)
	}

	maxSeries, maxYears := maxSeriesWithKey, maxYearsWithKey
	if req.APIKey == "" {
		maxSeries, maxYears = maxSeriesNoKey, maxYearsNoKey
	}

	rowsBySeries := make(map[string][][]string, len(req.SeriesIDs))
	for remaining := req.SeriesIDs; len(remaining) > 0; {
		chunk := remaining
		if len(chunk) > maxSeries {
			chunk = chunk[:maxSeries]
		}
		remaining = remaining[len(chunk):]

		for yearFrom := req.StartYear; yearFrom <= req.EndYear; yearFrom += maxYears {
			yearTo := yearFrom + maxYears - 1
			if yearTo > req.EndYear {
				yearTo = req.EndYear
			}

			resp, err := c.postData(ctx, dataRequest{
				SeriesID:        chunk,
				StartYear:       strconv.Itoa(yearFrom),
				EndYear:         strconv.Itoa(yearTo),
				Catalog:         true,
				RegistrationKey: req.APIKey,
			})
			if err != nil {
				return data, logTable, err
			}

			for _, msg := range resp.Message {
				logTable.Rows = append(logTable.Rows, []string{logSeriesID(msg), msg})
			}
			if resp.Status != statusSucceeded && len(resp.Message) == 0 {
				logTable.Rows = append(logTable.Rows, []string{"", resp.Status})
			}
			for _, s := range resp.Results.Series {
				rowsBySeries[s.SeriesID] = append(rowsBySeries[s.SeriesID], seriesRows(s)...)
			}
		}
	}

	for _, id := range req.SeriesIDs {
		data.Rows = append(data.Rows, rowsBySeries[id]...)
	}

	c.Metrics.AddRows(len(data.Rows))
	c.Metrics.AddLogRows(len(logTable.Rows))
	return data, logTable, nil
}

func (c *Client) postData(ctx context.Context, payload dataRequest) (*apiResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode data request: %w", err)
	}

	endpoint := c.cfg.APIBaseURL + "/timeseries/data/"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build data request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.do(httpReq, "data")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode data response: %w", err)
	}
	return &parsed, nil
}

// popularSeries fetches the API's list of popular series ids for a survey.
func (c *Client) popularSeries(ctx context.Context, abbr string) ([]string, error) {
	endpoint := c.cfg.APIBaseURL + "/timeseries/popular?survey=" + url.QueryEscape(abbr)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build popular request: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.do(httpReq, "popular")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode popular response: %w", err)
	}
	if parsed.Status != statusSucceeded {
		return nil, fmt.Errorf("popular series for %s: %s", abbr, parsed.Status)
	}

	ids := make([]string, 0, len(parsed.Results.Series))
	for _, s := range parsed.Results.Series {
		ids = append(ids, s.SeriesID)
	}
	return ids, nil
}

// do issues the request, records metrics, and classifies failures.
func (c *Client) do(req *http.Request, operation string) (*http.Response, error) {
	c.Metrics.IncRequest(operation)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.Metrics.ObserveDuration(time.Since(start))

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if classified := classifyError(err, statusCode); classified != nil {
		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}
		c.Metrics.IncError(errorTypeLabel(classified))
		return nil, classified
	}
	return resp, nil
}

func seriesRows(s apiSeries) [][]string {
	title, surveyName, surveyAbbr := "", "", ""
	if s.Catalog != nil {
		title = s.Catalog.SeriesTitle
		surveyName = s.Catalog.SurveyName
		surveyAbbr = s.Catalog.SurveyAbbreviation
	}
	rows := make([][]string, 0, len(s.Data))
	for _, obs := range s.Data {
		rows = append(rows, []string{
			s.SeriesID, title, surveyName, surveyAbbr,
			obs.Year, obs.Period, obs.PeriodName, obs.Value, footnoteText(obs.Footnotes),
		})
	}
	return rows
}

func footnoteText(notes []footnote) string {
	out := ""
	for _, n := range notes {
		if n.Text == "" {
			continue
		}
		if out != "" {
			out += "; "
		}
		out += n.Text
	}
	return out
}

var seriesIDPattern = regexp.MustCompile(`[Ss]eries\s+([A-Za-z0-9][A-Za-z0-9._-]{5,})`)

// logSeriesID pulls the series id out of an API message when one is named,
// e.g. "Series does not exist for Series LNS14000000".
func logSeriesID(msg string) string {
	matches := seriesIDPattern.FindAllStringSubmatch(msg, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1][1]
}
