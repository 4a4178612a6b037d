package web

import (
	"embed"
	"io/fs"
)

// staticFiles bundles the live player page.
//
//go:embed static/*
var staticFiles embed.FS

// Static returns a filesystem rooted at the bundled player assets.
func Static() (fs.FS, error) {
	return fs.Sub(staticFiles, "static")
}
