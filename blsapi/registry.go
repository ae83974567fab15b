package blsapi

// surveyInfo is one entry in the built-in registry of supported surveys.
// FirstYear is the earliest year the survey publishes data for; the survey
// page under SitePath supplies the description text.
type surveyInfo struct {
	Abbr      string
	Name      string
	FirstYear int
	SitePath  string
}

// registry lists the BLS surveys the explorer supports. Abbreviations are
// unique; the API has no catalog-listing endpoint, so this set is shipped
// with the client.
var registry = []surveyInfo{
	{Abbr: "AP", Name: "Consumer Price Index - Average Price Data", FirstYear: 1980, SitePath: "/cpi/"},
	{Abbr: "BD", Name: "Business Employment Dynamics", FirstYear: 1992, SitePath: "/bdm/"},
	{Abbr: "CE", Name: "Employment, Hours, and Earnings - National (Current Employment Statistics)", FirstYear: 1939, SitePath: "/ces/"},
	{Abbr: "CU", Name: "Consumer Price Index - All Urban Consumers", FirstYear: 1913, SitePath: "/cpi/"},
	{Abbr: "CW", Name: "Consumer Price Index - Urban Wage Earners and Clerical Workers", FirstYear: 1913, SitePath: "/cpi/"},
	{Abbr: "EC", Name: "Employment Cost Index", FirstYear: 1975, SitePath: "/eci/"},
	{Abbr: "EI", Name: "Import/Export Price Indexes", FirstYear: 1971, SitePath: "/mxp/"},
	{Abbr: "IP", Name: "Industry Productivity", FirstYear: 1987, SitePath: "/lpc/"},
	{Abbr: "JT", Name: "Job Openings and Labor Turnover Survey", FirstYear: 2000, SitePath: "/jlt/"},
	{Abbr: "LA", Name: "Local Area Unemployment Statistics", FirstYear: 1976, SitePath: "/lau/"},
	{Abbr: "LN", Name: "Labor Force Statistics (Current Population Survey)", FirstYear: 1948, SitePath: "/cps/"},
	{Abbr: "MP", Name: "Major Sector Multifactor Productivity", FirstYear: 1987, SitePath: "/mfp/"},
	{Abbr: "OE", Name: "Occupational Employment and Wage Statistics", FirstYear: 1988, SitePath: "/oes/"},
	{Abbr: "PC", Name: "Producer Price Index - Industry Data", FirstYear: 1984, SitePath: "/ppi/"},
	{Abbr: "PR", Name: "Major Sector Productivity and Costs", FirstYear: 1947, SitePath: "/lpc/"},
	{Abbr: "SM", Name: "State and Area Employment, Hours, and Earnings", FirstYear: 1939, SitePath: "/sae/"},
	{Abbr: "TU", Name: "American Time Use Survey", FirstYear: 2003, SitePath: "/tus/"},
	{Abbr: "WP", Name: "Producer Price Index - Commodity Data", FirstYear: 1913, SitePath: "/ppi/"},
	{Abbr: "WS", Name: "Work Stoppages", FirstYear: 1947, SitePath: "/wsp/"},
}

func lookupSurveyByName(name string) (surveyInfo, bool) {
	for _, info := range registry {
		if info.Name == name {
			return info, true
		}
	}
	return surveyInfo{}, false
}

func lookupSurveyByAbbr(abbr string) (surveyInfo, bool) {
	for _, info := range registry {
		if info.Abbr == abbr {
			return info, true
		}
	}
	return surveyInfo{}, false
}
