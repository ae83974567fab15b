package blsapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"blsexplorer/models"
	"github.com/gocolly/colly/v2"
)

// SurveyMetadata assembles the metadata record for a survey: description
// text scraped from the survey's bls.gov page, the popular series list from
// the API, series titles and a data preview from one catalog-enabled data
// request, and year bounds from the registry. Fails when the survey name is
// not one the client supports.
func (c *Client) SurveyMetadata(ctx context.Context, surveyName string) (*models.Metadata, error) {
	info, ok := lookupSurveyByName(surveyName)
	if !ok {
		return nil, fmt.Errorf("unknown survey %q", surveyName)
	}

	ids, err := c.popularSeries(ctx, info.Abbr)
	if err != nil {
		return nil, fmt.Errorf("survey %s: %w", info.Abbr, err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("survey %s: no series available", info.Abbr)
	}

	maxYear := time.Now().Year()
	if maxYear < info.FirstYear {
		maxYear = info.FirstYear
	}

	// One catalog-enabled request over the first chunk of popular series
	// supplies titles and the preview rows. Series beyond the chunk keep
	// empty titles rather than spending extra request quota.
	titleIDs := ids
	maxSeries := maxSeriesWithKey
	if c.cfg.DemoAPIKey == "" {
		maxSeries = maxSeriesNoKey
	}
	if len(titleIDs) > maxSeries {
		titleIDs = titleIDs[:maxSeries]
	}

	data, logTable, err := c.GetData(ctx, models.QueryParams{
		SeriesIDs: titleIDs,
		StartYear: maxYear - 1,
		EndYear:   maxYear,
		APIKey:    c.cfg.DemoAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("survey %s preview: %w", info.Abbr, err)
	}
	if data.Empty() && !logTable.Empty() {
		return nil, fmt.Errorf("survey %s preview: %s", info.Abbr, logTable.Rows[0][1])
	}

	titles := make(map[string]string, len(titleIDs))
	for _, row := range data.Rows {
		titles[row[0]] = row[1]
	}
	series := make([]models.SeriesRef, 0, len(ids))
	for _, id := range ids {
		series = append(series, models.SeriesRef{ID: id, Title: titles[id]})
	}

	description := c.scrapeDescription(ctx, info)

	return &models.Metadata{
		SurveyName:  info.Name,
		SurveyAbbr:  info.Abbr,
		Description: description,
		MinimumYear: info.FirstYear,
		MaximumYear: maxYear,
		Preview:     previewTable(data, c.cfg.PreviewRows),
		Series:      series,
	}, nil
}

// scrapeDescription pulls the survey description from the bls.gov survey
// page. A failed scrape degrades to an empty description; it never fails
// the metadata load.
func (c *Client) scrapeDescription(ctx context.Context, info surveyInfo) string {
	parsed, err := url.Parse(c.cfg.SiteBaseURL)
	if err != nil {
		return ""
	}

	collector := colly.NewCollector(
		colly.AllowedDomains(parsed.Host),
		colly.UserAgent(c.cfg.UserAgent),
	)
	collector.SetRequestTimeout(c.cfg.Timeout)
	collector.IgnoreRobotsTxt = true
	if c.httpClient.Transport != nil {
		collector.WithTransport(c.httpClient.Transport)
	}

	description := ""
	collector.OnHTML(`meta[name="description"]`, func(e *colly.HTMLElement) {
		if description == "" {
			description = strings.TrimSpace(e.Attr("content"))
		}
	})
	collector.OnHTML("main p", func(e *colly.HTMLElement) {
		if description == "" {
			description = strings.TrimSpace(e.Text)
		}
	})
	collector.OnRequest(func(r *colly.Request) {
		select {
		case <-ctx.Done():
			r.Abort()
		default:
		}
		c.Metrics.IncRequest("scrape")
	})

	if err := collector.Visit(c.cfg.SiteBaseURL + info.SitePath); err != nil {
		c.Metrics.IncError("scrape")
		return ""
	}
	collector.Wait()
	return description
}

// previewTable keeps the first n rows and drops the survey columns, which
// repeat the survey the user already picked.
func previewTable(data models.Table, n int) models.Table {
	drop := map[string]bool{"survey_name": true, "survey_abbreviation": true}
	keep := make([]int, 0, len(data.Columns))
	columns := make([]string, 0, len(data.Columns))
	for i, col := range data.Columns {
		if drop[col] {
			continue
		}
		keep = append(keep, i)
		columns = append(columns, col)
	}

	rows := make([][]string, 0, n)
	for _, row := range data.Rows {
		if len(rows) == n {
			break
		}
		out := make([]string, 0, len(keep))
		for _, i := range keep {
			out = append(out, row[i])
		}
		rows = append(rows, out)
	}
	return models.Table{Columns: columns, Rows: rows}
}
