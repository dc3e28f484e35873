// internal/app/features/hasil/templates.go
package hasil

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "hasil",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
