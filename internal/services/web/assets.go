package web

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
)

//go:embed static
var assetsFS embed.FS

// staticHandler serves the embedded site assets. A broken embed is a build
// defect, so it degrades to 404s rather than failing the server.
func staticHandler() http.Handler {
	sub, err := fs.Sub(assetsFS, "static")
	if err != nil {
		log.Printf("resolve static assets: %v", err)
		return http.NotFoundHandler()
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
