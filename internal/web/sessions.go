package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"travel-diary/internal/model"
)

const sessionCookieName = "session_token"

// signIn opens a fresh session for the user and sets its cookie.
func (app *App) signIn(w http.ResponseWriter, r *http.Request, user *model.User) error {
	session := &model.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(app.cfg.SessionTTL),
	}
	if err := app.sessions.Create(r.Context(), session); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(app.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (app *App) signOut(w http.ResponseWriter, r *http.Request) {
	if token := app.sessionToken(r); token != "" {
		if err := app.sessions.Delete(r.Context(), token); err != nil {
			app.errorLog.Printf("delete session: %v", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (app *App) sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// currentUser resolves the session cookie to a user, or nil.
func (app *App) currentUser(r *http.Request) *model.User {
	token := app.sessionToken(r)
	if token == "" {
		return nil
	}

	user, err := app.sessions.FindUser(r.Context(), token, time.Now())
	if err != nil {
		return nil
	}
	return user
}
