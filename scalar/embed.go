package scalar

import "embed"

// assets contains the Scalar API Reference page.
//
//go:embed assets/*
var assets embed.FS
