package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"travel-diary/internal/model"
)

// HTMLData carries everything a page template may need.
type HTMLData struct {
	Title          string
	Path           string
	CurrentUser    *model.User
	Posts          []model.Post
	Authors        map[uint]string
	NextURL        string
	PrevURL        string
	FormErrors     FieldErrors
	FormData       map[string]string
	ProfileUser    *model.User
	FollowerCount  int64
	FollowingCount int64
	IsFollowing    bool
	Flash          string
}

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
}

func (app *App) render(w http.ResponseWriter, r *http.Request, pageFile string, data *HTMLData) {
	if data == nil {
		data = &HTMLData{}
	}

	data.Path = r.URL.Path
	if data.CurrentUser == nil {
		data.CurrentUser = app.currentUser(r)
	}
	if data.FormErrors == nil {
		data.FormErrors = FieldErrors{}
	}
	if data.FormData == nil {
		data.FormData = map[string]string{}
	}

	files := []string{
		filepath.Join(app.cfg.HTMLDir, "base.layout.html"),
		filepath.Join(app.cfg.HTMLDir, pageFile),
	}

	ts, err := template.New("").Funcs(functions).ParseFiles(files...)
	if err != nil {
		app.serverError(w, fmt.Errorf("parse templates: %w", err))
		return
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		app.serverError(w, fmt.Errorf("render %s: %w", pageFile, err))
		return
	}

	buf.WriteTo(w)
}
