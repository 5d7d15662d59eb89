// Package web holds the embedded HTML assets served by the bridge.
package web

import "embed"

//go:embed templates/*
var TemplateAssets embed.FS
