// Package locales embeds the message catalogs shipped with the CLI.
package locales

import "embed"

// FS holds one YAML catalog per language at its root.
//
//go:embed *.yaml
var FS embed.FS
