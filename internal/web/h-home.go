package web

import (
	"context"
	"net/http"
	"strconv"

	"travel-diary/internal/model"
	"travel-diary/internal/service"
)

// home renders the feed of followed authors plus the viewer's own
// posts; a POST publishes a new post with optional photo and video.
func (app *App) home(w http.ResponseWriter, r *http.Request) {
	user := app.currentUser(r)

	if r.Method == http.MethodPost {
		app.publish(w, r, user)
		return
	}

	page, err := app.feed.Home(r.Context(), user, pageParam(r))
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.render(w, r, "index.page.html", &HTMLData{
		Title:       "Лента",
		CurrentUser: user,
		Posts:       page.Posts,
		Authors:     app.authorNames(r.Context(), page.Posts),
		NextURL:     pageURL("/", page.Number+1, page.HasNext),
		PrevURL:     pageURL("/", page.Number-1, page.HasPrev),
	})
}

func (app *App) publish(w http.ResponseWriter, r *http.Request, user *model.User) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		app.serverError(w, err)
		return
	}

	form := PostForm{
		Title:  r.FormValue("title"),
		Body:   r.FormValue("body"),
		Price:  r.FormValue("price"),
		Places: r.FormValue("places"),
	}
	if errs := form.Validate(); !errs.Valid() {
		app.renderHomeForm(w, r, user, form, errs)
		return
	}

	photoURL, err := app.saveUpload(r, "photo")
	if err != nil {
		errs := FieldErrors{}
		errs.Add("photo", err.Error())
		app.renderHomeForm(w, r, user, form, errs)
		return
	}
	videoURL, err := app.saveUpload(r, "video")
	if err != nil {
		errs := FieldErrors{}
		errs.Add("video", err.Error())
		app.renderHomeForm(w, r, user, form, errs)
		return
	}

	post, err := app.feed.Publish(r.Context(), user, service.PostInput{
		Title:    form.Title,
		Body:     form.Body,
		Price:    form.Price,
		Places:   form.Places,
		PhotoURL: photoURL,
		VideoURL: videoURL,
	})
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.infoLog.Printf("post %d published by user %d", post.ID, user.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *App) renderHomeForm(w http.ResponseWriter, r *http.Request, user *model.User, form PostForm, errs FieldErrors) {
	page, err := app.feed.Home(r.Context(), user, 1)
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.render(w, r, "index.page.html", &HTMLData{
		Title:       "Лента",
		CurrentUser: user,
		Posts:       page.Posts,
		Authors:     app.authorNames(r.Context(), page.Posts),
		FormErrors:  errs,
		FormData: map[string]string{
			"title":  form.Title,
			"body":   form.Body,
			"price":  form.Price,
			"places": form.Places,
		},
	})
}

// explore shows every post on the site.
func (app *App) explore(w http.ResponseWriter, r *http.Request) {
	page, err := app.feed.Explore(r.Context(), pageParam(r))
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.render(w, r, "explore.page.html", &HTMLData{
		Title:   "Все посты",
		Posts:   page.Posts,
		Authors: app.authorNames(r.Context(), page.Posts),
		NextURL: pageURL("/explore", page.Number+1, page.HasNext),
		PrevURL: pageURL("/explore", page.Number-1, page.HasPrev),
	})
}

// authorNames resolves post owners to usernames for rendering.
func (app *App) authorNames(ctx context.Context, posts []model.Post) map[uint]string {
	names := make(map[uint]string)
	for _, post := range posts {
		if _, done := names[post.UserID]; done {
			continue
		}
		author, err := app.accounts.FindByID(ctx, post.UserID)
		if err != nil {
			app.errorLog.Printf("resolve author %d: %v", post.UserID, err)
			continue
		}
		names[post.UserID] = author.Username
	}
	return names
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func pageURL(path string, page int, ok bool) string {
	if !ok {
		return ""
	}
	return path + "?page=" + strconv.Itoa(page)
}
