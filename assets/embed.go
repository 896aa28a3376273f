package assets

import (
	_ "embed"
)

// Usage is the command-line help printed before the flag defaults.
//
//go:embed usage.txt
var Usage string
