package demo_configs

import (
	"embed"
)

// FS provides embedded demo profiles for external usage.
//
//go:embed *.yaml
var FS embed.FS
