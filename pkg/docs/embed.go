package docs

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in documentation templates so callers can
// derive their own variants from them.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
