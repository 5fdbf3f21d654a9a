// Package renderer renders stacks and quotes as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/etnz/stacker"
)

//go:embed templates/*.md
var embedded embed.FS

var templates = must(fs.Sub(embedded, "templates"))

// SummaryMarkdown renders the summary of a stack.
func SummaryMarkdown(s *stacker.Summary) string {
	partials := map[string]string{
		"summary_value":        "summary_value.md",
		"summary_performance":  "summary_performance.md",
		"summary_distribution": "summary_distribution.md",
		"holdings":             "holdings.md",
	}
	return renderTemplate("summary", "summary.md", partials, s)
}

// HoldingsMarkdown renders the list of holdings of a stack.
func HoldingsMarkdown(holdings []stacker.Holding) string {
	return renderTemplate("holdings", "holdings.md", nil, holdings)
}

type quoteRow struct {
	Metal stacker.Metal
	Quote stacker.Quote
	OK    bool
}

// QuotesMarkdown renders the spot prices of every supported metal, "-" for
// metals without a quote.
func QuotesMarkdown(quotes stacker.Quotes) string {
	rows := make([]quoteRow, 0, len(stacker.Metals))
	for _, m := range stacker.Metals {
		q, ok := quotes[m]
		rows = append(rows, quoteRow{Metal: m, Quote: q, OK: ok})
	}
	return renderTemplate("quotes", "quotes.md", nil, rows)
}

var funcs = template.FuncMap{
	"day": func(t time.Time) string { return t.Format("2006-01-02") },
	"oz":  func(o stacker.Ounces) string { return fmt.Sprintf("%.2f", o.Float64()) },
	"kg":  func(o stacker.Ounces) string { return fmt.Sprintf("%.2f", o.Kilograms()) },
	"num": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	"purity": func(p *float64) string {
		if p == nil {
			return "1"
		}
		return strconv.FormatFloat(*p, 'f', -1, 64)
	},
	"paid": func(v float64) string {
		if v == 0 {
			return "-"
		}
		return stacker.USD(v).String()
	},
	// cell escapes the table separator.
	"cell": func(s string) string { return strings.ReplaceAll(s, "|", `\|`) },
	"short": ShortID,
}

// ShortID returns the prefix of id displayed in tables.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
