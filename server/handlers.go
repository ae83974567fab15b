package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"blsexplorer/export"
	"blsexplorer/models"
	"blsexplorer/query"
	"github.com/gin-gonic/gin"
)

const sessionCookie = "bls_session"

// indexView is everything one render of the page needs.
type indexView struct {
	Surveys       []models.Survey
	Survey        models.Survey
	Meta          *models.Metadata
	Picklist      []string
	DefaultStart  int
	DefaultEnd    int
	APIKeyValue   string
	Notice        string
	HasResult     bool
	Result        models.Result
	ShowAnimation bool
	DownloadName  string
	Snippets      *Snippets
}

func (s *Server) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := s.sessions.NewID()
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return id
}

// handleIndex renders the whole page: survey picker, metadata panels, the
// query-builder form, and whatever the session last stored.
func (s *Server) handleIndex(c *gin.Context) {
	ctx := c.Request.Context()
	sid := s.sessionID(c)

	catalog, err := s.source.Surveys(ctx)
	if err != nil {
		c.String(http.StatusBadGateway, "load surveys: %v", err)
		return
	}
	if len(catalog) == 0 {
		c.String(http.StatusBadGateway, "no surveys available")
		return
	}

	abbrs := make([]string, 0, len(catalog))
	for abbr := range catalog {
		abbrs = append(abbrs, abbr)
	}
	sort.Strings(abbrs)
	surveys := make([]models.Survey, 0, len(abbrs))
	for _, abbr := range abbrs {
		surveys = append(surveys, models.Survey{Abbreviation: abbr, Name: catalog[abbr]})
	}

	abbr := c.Query("survey")
	if _, ok := catalog[abbr]; !ok {
		abbr = abbrs[0]
	}

	meta, err := s.source.Metadata(ctx, catalog[abbr])
	if err != nil {
		c.String(http.StatusBadGateway, "load metadata for %s: %v", abbr, err)
		return
	}

	defaultStart, defaultEnd := query.DefaultYearRange(meta.MinimumYear, meta.MaximumYear)
	view := indexView{
		Surveys:      surveys,
		Survey:       models.Survey{Abbreviation: abbr, Name: catalog[abbr]},
		Meta:         meta,
		Picklist:     query.Picklist(meta),
		DefaultStart: defaultStart,
		DefaultEnd:   defaultEnd,
		Notice:       c.Query("notice"),
	}

	if state, ok := s.sessions.Get(sid); ok {
		view.HasResult = true
		view.Result = state.Result
		if state.Params.APIKey != s.cfg.DemoAPIKey {
			view.APIKeyValue = state.Params.APIKey
		}
		if state.Result.Succeeded() {
			view.ShowAnimation = s.sessions.ConsumeAnimation(sid)
			view.DownloadName = export.Filename(time.Now(), state.Params.SurveyAbbr)
			view.Snippets = buildSnippets(state.Params, s.cfg.DemoAPIKey)
		}
	}

	c.HTML(http.StatusOK, "index", view)
}

// handleQuery builds the request descriptor from the submitted form,
// fetches, stores the result in the session, and redirects back to the
// page render.
func (s *Server) handleQuery(c *gin.Context) {
	ctx := c.Request.Context()
	sid := s.sessionID(c)
	abbr := c.PostForm("survey")

	catalog, err := s.source.Surveys(ctx)
	if err != nil {
		c.String(http.StatusBadGateway, "load surveys: %v", err)
		return
	}
	name, ok := catalog[abbr]
	if !ok {
		c.String(http.StatusNotFound, "unknown survey %q", abbr)
		return
	}
	meta, err := s.source.Metadata(ctx, name)
	if err != nil {
		c.String(http.StatusBadGateway, "load metadata for %s: %v", abbr, err)
		return
	}

	startYear, errStart := strconv.Atoi(c.PostForm("startyear"))
	endYear, errEnd := strconv.Atoi(c.PostForm("endyear"))
	if errStart != nil || errEnd != nil {
		s.redirectWithNotice(c, abbr, "year range must be numeric")
		return
	}

	params, err := query.BuildParams(meta, c.PostFormArray("series"), startYear, endYear, c.PostForm("apikey"), s.cfg.DemoAPIKey)
	if err != nil {
		s.redirectWithNotice(c, abbr, err.Error())
		return
	}

	slog.Info("fetching data",
		slog.String("survey", abbr),
		slog.Int("series", len(params.SeriesIDs)),
		slog.Int("start_year", params.StartYear),
		slog.Int("end_year", params.EndYear),
	)

	data, logTable, err := s.fetcher.GetData(ctx, params)
	if err != nil {
		c.String(http.StatusBadGateway, "fetch data: %v", err)
		return
	}

	s.sessions.Put(sid, params, models.Result{Data: data, Log: logTable})
	c.Redirect(http.StatusSeeOther, "/?survey="+url.QueryEscape(abbr))
}

// handleDownload streams the session's last successful result as CSV.
func (s *Server) handleDownload(c *gin.Context) {
	sid := s.sessionID(c)
	state, ok := s.sessions.Get(sid)
	if !ok || !state.Result.Succeeded() || state.Result.Data.Empty() {
		c.String(http.StatusNotFound, "no data to download")
		return
	}

	filename := export.Filename(time.Now(), state.Params.SurveyAbbr)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", export.MIMEType)
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, state.Result.Data); err != nil {
		slog.Error("stream csv", slog.Any("error", err))
	}
}

func (s *Server) redirectWithNotice(c *gin.Context, abbr, notice string) {
	c.Redirect(http.StatusSeeOther, "/?survey="+url.QueryEscape(abbr)+"&notice="+url.QueryEscape(notice))
}
