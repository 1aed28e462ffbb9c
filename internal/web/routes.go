package web

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes wires the URL surface to the handlers.
func (app *App) Routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", app.requireAuth(app.home)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/explore", app.requireAuth(app.explore)).Methods(http.MethodGet)

	r.HandleFunc("/register", app.requireGuest(app.register)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/login", app.requireGuest(app.login)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/logout", app.logout).Methods(http.MethodGet)

	r.HandleFunc("/user/{username}", app.requireAuth(app.profile)).Methods(http.MethodGet)
	r.HandleFunc("/edit_profile", app.requireAuth(app.editProfile)).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/follow/{username}", app.requireAuth(app.follow)).Methods(http.MethodPost)
	r.HandleFunc("/unfollow/{username}", app.requireAuth(app.unfollow)).Methods(http.MethodPost)

	r.HandleFunc("/uploads/{name}", app.uploads).Methods(http.MethodGet)

	return r
}
