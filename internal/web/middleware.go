package web

import (
	"net/http"
)

// requireAuth redirects anonymous visitors to the login page and
// refreshes the user's last-seen mark.
func (app *App) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")

		user := app.currentUser(r)
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if err := app.accounts.TouchLastSeen(r.Context(), user.ID); err != nil {
			app.errorLog.Printf("touch last seen for user %d: %v", user.ID, err)
		}

		next(w, r)
	}
}

// requireGuest keeps logged-in users away from the register and login
// pages.
func (app *App) requireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")

		if app.currentUser(r) != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}
