// Package assets embeds static files served under /assets/.
package assets

import "embed"

//go:embed style.css
var AssetsFS embed.FS
