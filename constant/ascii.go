package constant

import _ "embed"

// AsciiArtLogo is the CreaTV banner printed above the root command help.
//
//go:embed ascii.txt
var AsciiArtLogo string
