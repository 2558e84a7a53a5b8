// FilePath: web/embed.go

// Package web embeds the dashboard's HTML templates.
package web

import "embed"

//go:embed templates/layout.html templates/pages/*.html
var FS embed.FS
