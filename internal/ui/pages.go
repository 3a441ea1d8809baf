// Package ui renders the monitor's HTML pages as hand-built
// templ.Component values (templ.ComponentFunc), since the generated
// .templ sources backing the original UI package were not part of the
// retrieved reference material.
package ui

import (
	"context"
	"fmt"
	"html"
	"io"
	"time"

	"github.com/a-h/templ"
)

// JobView is the subset of a render job's state the UI needs to display,
// kept independent of internal/monitor's RenderJob type to avoid an import
// cycle between the two packages.
type JobView struct {
	ID         string
	State      string
	Stage      string
	InputPath  string
	Width      int
	Height     int
	World      int
	StartTime  time.Time
	EndTime    *time.Time
	Error      string
	HasImage   bool
}

func esc(s string) string { return html.EscapeString(s) }

func layout(title string, body func(io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>%s</title>
  <style>
    body { font-family: monospace; margin: 2rem; background: #111; color: #ddd; }
    a { color: #6cf; }
    table { border-collapse: collapse; width: 100%%; }
    td, th { border: 1px solid #333; padding: 0.4rem 0.8rem; text-align: left; }
    .state-running { color: #fc6; }
    .state-completed { color: #6f6; }
    .state-failed { color: #f66; }
  </style>
</head>
<body>
<h1><a href="/">gosplat monitor</a></h1>
`, esc(title)); err != nil {
			return err
		}
		if err := body(w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

// JobListPage renders the index page listing every known render job.
func JobListPage(jobs []JobView) templ.Component {
	return layout("gosplat monitor", func(w io.Writer) error {
		if _, err := io.WriteString(w, "<h2>jobs</h2>\n<table><tr><th>id</th><th>state</th><th>stage</th><th>input</th><th>size</th><th>world</th></tr>\n"); err != nil {
			return err
		}
		for _, j := range jobs {
			_, err := fmt.Fprintf(w,
				"<tr><td><a href=\"/jobs/%s\">%s</a></td><td class=\"state-%s\">%s</td><td>%s</td><td>%s</td><td>%dx%d</td><td>%d</td></tr>\n",
				esc(j.ID), esc(j.ID), esc(j.State), esc(j.State), esc(j.Stage), esc(j.InputPath), j.Width, j.Height, j.World)
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</table>\n")
		return err
	})
}

// JobDetailPage renders one job's status, and its output image once done.
func JobDetailPage(j JobView) templ.Component {
	return layout("job "+j.ID, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<h2>job %s</h2>\n<p>state: <span class=\"state-%s\">%s</span> &mdash; stage: %s</p>\n",
			esc(j.ID), esc(j.State), esc(j.State), esc(j.Stage)); err != nil {
			return err
		}
		if j.Error != "" {
			if _, err := fmt.Fprintf(w, "<p style=\"color:#f66\">error: %s</p>\n", esc(j.Error)); err != nil {
				return err
			}
		}
		if j.HasImage {
			if _, err := fmt.Fprintf(w, "<p><img src=\"/api/v1/jobs/%s/image.png\" style=\"max-width:100%%;border:1px solid #444\"></p>\n", esc(j.ID)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "<p><code>%s</code> &mdash; %dx%d, %d rank(s)</p>\n", esc(j.InputPath), j.Width, j.Height, j.World)
		return err
	})
}
