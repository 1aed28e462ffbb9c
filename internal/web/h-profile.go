package web

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"travel-diary/internal/service"
)

func (app *App) profile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	profileUser, err := app.accounts.FindByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			app.notFound(w)
			return
		}
		app.serverError(w, err)
		return
	}

	viewer := app.currentUser(r)

	page, err := app.feed.ByUser(r.Context(), profileUser, pageParam(r))
	if err != nil {
		app.serverError(w, err)
		return
	}

	followers, err := app.follows.FollowerCount(r.Context(), profileUser)
	if err != nil {
		app.serverError(w, err)
		return
	}
	following, err := app.follows.FollowingCount(r.Context(), profileUser)
	if err != nil {
		app.serverError(w, err)
		return
	}
	isFollowing, err := app.follows.IsFollowing(r.Context(), viewer, profileUser)
	if err != nil {
		app.serverError(w, err)
		return
	}

	base := "/user/" + profileUser.Username
	app.render(w, r, "user.page.html", &HTMLData{
		Title:          profileUser.Username,
		CurrentUser:    viewer,
		ProfileUser:    profileUser,
		Posts:          page.Posts,
		Authors:        map[uint]string{profileUser.ID: profileUser.Username},
		FollowerCount:  followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
		NextURL:        pageURL(base, page.Number+1, page.HasNext),
		PrevURL:        pageURL(base, page.Number-1, page.HasPrev),
	})
}

func (app *App) editProfile(w http.ResponseWriter, r *http.Request) {
	user := app.currentUser(r)

	if r.Method != http.MethodPost {
		app.render(w, r, "edit_profile.page.html", &HTMLData{
			Title: "О себе",
			FormData: map[string]string{
				"username": user.Username,
				"about_me": user.AboutMe,
			},
		})
		return
	}

	form := EditProfileForm{
		Username: r.FormValue("username"),
		AboutMe:  r.FormValue("about_me"),
	}

	errs := form.Validate()
	if errs.Valid() {
		err := app.accounts.UpdateProfile(r.Context(), user, form.Username, form.AboutMe)
		switch {
		case err == nil:
			http.Redirect(w, r, "/edit_profile", http.StatusSeeOther)
			return
		case errors.Is(err, service.ErrDuplicateIdentity):
			errs.Add("username", "Имя занято")
		default:
			app.serverError(w, err)
			return
		}
	}

	app.render(w, r, "edit_profile.page.html", &HTMLData{
		Title:      "О себе",
		FormErrors: errs,
		FormData: map[string]string{
			"username": form.Username,
			"about_me": form.AboutMe,
		},
	})
}

func (app *App) follow(w http.ResponseWriter, r *http.Request) {
	app.changeFollow(w, r, true)
}

func (app *App) unfollow(w http.ResponseWriter, r *http.Request) {
	app.changeFollow(w, r, false)
}

func (app *App) changeFollow(w http.ResponseWriter, r *http.Request, follow bool) {
	username := mux.Vars(r)["username"]

	target, err := app.accounts.FindByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			app.notFound(w)
			return
		}
		app.serverError(w, err)
		return
	}

	actor := app.currentUser(r)
	if follow {
		err = app.follows.Follow(r.Context(), actor, target)
	} else {
		err = app.follows.Unfollow(r.Context(), actor, target)
	}
	switch {
	case err == nil:
	case errors.Is(err, service.ErrSelfFollow):
		// Nothing to do; land back on the profile.
	default:
		app.serverError(w, err)
		return
	}

	http.Redirect(w, r, "/user/"+target.Username, http.StatusSeeOther)
}
