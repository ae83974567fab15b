package server

import "html/template"

// ── Page templates ────────────────────────────────────────────────────────────

const tmplIndex = `
{{define "index"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>BLS Data Explorer</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:system-ui,sans-serif;background:#f5f7fa;color:#1c2733;font-size:14px;line-height:1.5}
a{color:#006f96;text-decoration:none}
a:hover{text-decoration:underline}
header{background:#fff;border-bottom:3px solid #006f96;padding:14px 24px}
header h1{color:#006f96;font-size:22px}
main{max-width:1080px;margin:0 auto;padding:20px 24px}
h2{color:#006f96;font-size:17px;margin:18px 0 8px}
h3{color:#006f96;font-size:14px;margin:14px 0 6px}
.disclaimer{background:#fff;border-left:5px solid #c0392b;color:#c0392b;padding:10px 14px;margin:12px 0;font-size:13px}
.description{background:#e1f5fe;border-left:5px solid #2196f3;border-radius:5px;padding:10px 14px;max-height:200px;overflow-y:auto}
.panel{background:#fff;border:1px solid #d5dde5;border-radius:6px;padding:14px 16px;margin:12px 0}
table{width:100%;border-collapse:collapse;font-size:12px;background:#fff}
th{text-align:left;padding:6px 10px;border-bottom:2px solid #d5dde5;color:#51606e;font-weight:600;text-transform:uppercase;font-size:11px}
td{padding:5px 10px;border-bottom:1px solid #e8edf2;vertical-align:top}
label{display:block;font-weight:600;margin:10px 0 4px}
input[type=text],input[type=number],select{width:100%;padding:7px 9px;border:1px solid #b8c4cf;border-radius:4px;font-size:13px}
select[multiple]{min-height:140px}
.row{display:flex;gap:16px;flex-wrap:wrap}
.row>div{flex:1;min-width:220px}
button{background:#17157a;color:#fff;border:0;border-radius:4px;padding:9px 18px;font-size:14px;cursor:pointer;margin-top:12px}
button:hover{background:#23209e}
.banner-success{background:#d4edda;border-left:5px solid #28a745;border-radius:5px;color:#155724;padding:10px 15px;margin:12px 0;font-size:16px}
.banner-notice{background:#fff3cd;border-left:5px solid #ffc107;border-radius:5px;color:#856404;padding:10px 15px;margin:12px 0}
.download{display:inline-block;background:#006f96;color:#fff;border-radius:4px;padding:8px 16px;margin:8px 0}
.download:hover{background:#00597a;text-decoration:none}
.tablewrap{max-height:420px;overflow:auto;border:1px solid #d5dde5;border-radius:5px}
pre{background:#0d1117;color:#c9d1d9;border-radius:5px;padding:12px;overflow-x:auto;font-size:12px;line-height:1.45}
.hint{color:#51606e;font-size:12px}
.balloons{position:fixed;inset:0;pointer-events:none;overflow:hidden}
.balloons span{position:absolute;bottom:-60px;font-size:34px;animation:rise 2.6s ease-in forwards}
.balloons span:nth-child(2){left:25%;animation-delay:.2s}
.balloons span:nth-child(3){left:50%;animation-delay:.4s}
.balloons span:nth-child(4){left:70%;animation-delay:.1s}
.balloons span:nth-child(5){left:88%;animation-delay:.3s}
@keyframes rise{to{transform:translateY(-110vh)}}
</style>
</head>
<body>
<header><h1>BLS Data Explorer</h1></header>
<main>
<div class="disclaimer">DISCLAIMER: This app is not an official BLS product.
BLS.gov cannot vouch for the data or analyses derived from these data after
the data have been retrieved from BLS.gov.</div>

<h2>Explore Datasets</h2>
<form method="GET" action="/">
<label for="survey">Select a dataset:</label>
<select id="survey" name="survey" onchange="this.form.submit()">
{{range .Surveys}}<option value="{{.Abbreviation}}"{{if eq .Abbreviation $.Survey.Abbreviation}} selected{{end}}>{{.Abbreviation}} — {{.Name}}</option>
{{end}}</select>
<noscript><button type="submit">Load dataset</button></noscript>
</form>

{{if .Meta.Description}}
<h3>Dataset Description</h3>
<div class="description">{{.Meta.Description}}</div>
{{end}}

{{if not .Meta.Preview.Empty}}
<h3>Data Preview</h3>
<div class="tablewrap">{{template "table" .Meta.Preview}}</div>
{{end}}

<h2>API Query Builder: Build Your Own Request</h2>
{{if .Notice}}<div class="banner-notice">{{.Notice}}</div>{{end}}
<form method="POST" action="/query" class="panel">
<input type="hidden" name="survey" value="{{.Survey.Abbreviation}}">
<div class="row">
<div>
<label for="apikey">Enter Your BLS API Key</label>
<input type="text" id="apikey" name="apikey" value="{{.APIKeyValue}}">
<div class="hint">Register for a free key at data.bls.gov/registrationEngine. Leave blank to use the shared demo key.</div>
</div>
<div>
<label>Select Year Range</label>
<div class="row">
<div><input type="number" name="startyear" min="{{.Meta.MinimumYear}}" max="{{.Meta.MaximumYear}}" value="{{.DefaultStart}}"></div>
<div><input type="number" name="endyear" min="{{.Meta.MinimumYear}}" max="{{.Meta.MaximumYear}}" value="{{.DefaultEnd}}"></div>
</div>
<div class="hint">The bounds apply to the dataset, not to individual series.</div>
</div>
</div>
<label for="series">Select 1 or more series ({{len .Picklist}} available)</label>
<select id="series" name="series" multiple>
{{range $i, $entry := .Picklist}}<option value="{{$entry}}"{{if eq $i 0}} selected{{end}}>{{$entry}}</option>
{{end}}</select>
<div class="hint">For series id formats, see bls.gov/help/hlpforma.htm.</div>
<button type="submit">Get Data</button>
</form>

{{if .HasResult}}
{{if .Result.Succeeded}}
{{if .ShowAnimation}}<div class="balloons"><span>🎈</span><span>🎈</span><span>🎈</span><span>🎈</span><span>🎈</span></div>{{end}}
<div class="banner-success">SUCCESS! No log messages returned from the API.</div>
<h3>Output</h3>
<div class="tablewrap">{{template "table" .Result.Data}}</div>
<a class="download" href="/download.csv" download="{{.DownloadName}}">Download CSV File</a>
<h3>Go Code</h3>
<div class="panel"><h3>Data</h3><pre>{{.Snippets.Data}}</pre></div>
<div class="panel"><h3>Metadata</h3><pre>{{.Snippets.Metadata}}</pre></div>
<div class="panel"><h3>License</h3><div class="banner-notice">{{.Snippets.License}}</div></div>
{{else}}
<h3>API Log Messages</h3>
<div class="tablewrap">{{template "table" .Result.Log}}</div>
{{end}}
{{end}}
</main>
</body>
</html>{{end}}
`

const tmplTable = `
{{define "table"}}<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>{{end}}
`

func loadTemplates() *template.Template {
	tmpl := template.New("explorer")
	template.Must(tmpl.Parse(tmplIndex))
	template.Must(tmpl.Parse(tmplTable))
	return tmpl
}
