package web

import (
	"fmt"
	"io/fs"
	"net/http"
)

// FileServer serves the files under dir of static at path, e.g. "/static/".
// Global middleware does not apply.
func (a *WebHandler) FileServer(static fs.FS, dir string, path string) error {
	fSys, err := fs.Sub(static, dir)
	if err != nil {
		return fmt.Errorf("switching to static folder: %w", err)
	}

	fileServer := http.StripPrefix(path, http.FileServer(http.FS(fSys)))

	a.mux.Handle(fmt.Sprintf("GET %s", path), fileServer)

	return nil
}
