// Package ui holds the embedded templates and static assets.
package ui

import "embed"

//go:embed templates static
var Files embed.FS
