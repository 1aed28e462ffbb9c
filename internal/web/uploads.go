package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

var allowedExtensions = map[string]bool{
	".txt": true, ".pdf": true, ".png": true, ".jpg": true,
	".jpeg": true, ".gif": true, ".mp4": true,
}

// saveUpload stores an uploaded file under a fresh uuid name and
// returns its public URL. A missing file is not an error: the field
// stays empty.
func (app *App) saveUpload(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", fmt.Errorf("read upload %s: %w", field, err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("file type %q is not allowed", ext)
	}

	if err := os.MkdirAll(app.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(app.cfg.UploadDir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}

	return "/uploads/" + name, nil
}

// uploads serves stored files. The name is reduced to its base so a
// crafted path cannot escape the upload directory.
func (app *App) uploads(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(mux.Vars(r)["name"])
	path := filepath.Join(app.cfg.UploadDir, name)

	if _, err := os.Stat(path); err != nil {
		app.notFound(w)
		return
	}
	http.ServeFile(w, r, path)
}
