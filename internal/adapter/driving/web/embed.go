package web

import "embed"

// StaticFS holds the embedded single-page client (markup, scripts, styles).
//
//go:embed static/*
var StaticFS embed.FS
