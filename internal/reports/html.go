package reports

import (
	"html/template"
	"strings"
)

const dateTimeLayout = "January 2, 2006 at 3:04 PM"

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.AppName}} Report</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
.header { text-align: center; margin-bottom: 30px; }
.title { font-size: 24px; font-weight: bold; margin-bottom: 10px; }
.subtitle { font-size: 16px; color: #666; }
table { width: 100%; border-collapse: collapse; margin: 20px 0; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f2f2f2; font-weight: bold; }
.summary { background-color: #f9f9f9; padding: 15px; margin: 20px 0; border-radius: 5px; }
.urgent { color: #d32f2f; font-weight: bold; }
.warning { color: #f57c00; font-weight: bold; }
</style>
</head>
<body>
<div class="header">
<div class="title">{{.Heading}}</div>
<div class="subtitle">Generated on {{.GeneratedOn}}</div>
</div>
<h2>{{.Report.Title}}</h2>
<div class="summary">
{{- range $i, $line := .Report.Summary}}
{{if $i}}<br>{{end}}<strong>{{$line.Label}}:</strong> {{if $line.Money}}{{$.Currency}}{{end}}{{$line.Value}}
{{- end}}
</div>
<table>
<tr>{{range .Report.Columns}}<th>{{.}}</th>{{end}}</tr>
{{- range .Report.Rows}}
<tr>{{range .}}<td{{if .Class}} class="{{.Class}}"{{end}}>{{if .Money}}{{$.Currency}}{{end}}{{.Value}}</td>{{end}}</tr>
{{- end}}
</table>
</body>
</html>
`))

type htmlView struct {
	AppName     string
	Heading     string
	GeneratedOn string
	Currency    string
	Report      *Report
}

// EncodeHTML renders a standalone HTML document. Every field is escaped by
// html/template.
func EncodeHTML(r *Report, opts Options) (string, error) {
	appName := opts.AppName
	if appName == "" {
		appName = "Inventory"
	}
	view := htmlView{
		AppName:     appName,
		Heading:     splitCamel(appName) + " Report",
		GeneratedOn: r.GeneratedAt.Format(dateTimeLayout),
		Currency:    opts.CurrencySymbol,
		Report:      r,
	}

	var b strings.Builder
	if err := reportTemplate.Execute(&b, view); err != nil {
		return "", err
	}
	return b.String(), nil
}

// splitCamel turns "SmartInventory" into "Smart Inventory".
func splitCamel(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' && s[i-1] >= 'a' && s[i-1] <= 'z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
