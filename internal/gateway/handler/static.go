package handler

import (
	"io/fs"
	"net/http"
)

// staticFiles serves files below dir. Directories answer 404 instead of a
// listing.
func staticFiles(dir string) http.Handler {
	return http.FileServer(noListingFS{http.Dir(dir)})
}

type noListingFS struct {
	fs http.FileSystem
}

func (n noListingFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
