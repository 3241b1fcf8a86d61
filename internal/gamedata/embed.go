// Package gamedata provides embedded game data and utilities for loading it.
package gamedata

import "embed"

// dataFS embeds all JSON files and sprites from this directory at build time.
//
//go:embed *.json sprites/*.png
var dataFS embed.FS
