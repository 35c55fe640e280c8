package assets

import "embed"

// Templates holds the static report assets shipped inside the binary.
// The report template lives at templates/report_template.html.
//
//go:embed templates
var Templates embed.FS
