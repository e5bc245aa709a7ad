// Package ui embeds the built frontend assets served by the API server.
package ui

import "embed"

//go:embed all:dist
var DistFS embed.FS
