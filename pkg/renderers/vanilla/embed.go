package vanilla

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed templates/*.tmpl templates/components/*.tmpl assets/*.css
var bundle embed.FS

// StylesheetName is the admin stylesheet inside AssetsFS.
const StylesheetName = "jsonfields-admin.css"

// TemplatesFS returns the built-in templates, addressed as templates/....
func TemplatesFS() fs.FS {
	return bundle
}

// AssetsFS returns the stylesheet bundle rooted at its directory, ready for
// http.FileServer.
func AssetsFS() fs.FS {
	assets, err := fs.Sub(bundle, "assets")
	if err != nil {
		panic(err)
	}
	return assets
}

var defaultStylesheet = sync.OnceValue(func() string {
	data, err := fs.ReadFile(AssetsFS(), StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
})
