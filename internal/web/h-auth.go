package web

import (
	"errors"
	"net/http"

	"travel-diary/internal/service"
)

func (app *App) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.render(w, r, "register.page.html", &HTMLData{Title: "Регистрация"})
		return
	}

	form := RegisterForm{
		Username:  r.FormValue("username"),
		Telegram:  r.FormValue("telegram"),
		Email:     r.FormValue("email"),
		Password:  r.FormValue("password"),
		Password2: r.FormValue("password2"),
	}

	errs := form.Validate()
	if errs.Valid() {
		_, err := app.accounts.Register(r.Context(), form.Username, form.Email, form.Password, form.Telegram)
		switch {
		case err == nil:
			app.infoLog.Printf("registered user %q", form.Username)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		case errors.Is(err, service.ErrDuplicateIdentity):
			errs.Add("username", "Имя, почта или телеграм уже заняты")
		default:
			app.serverError(w, err)
			return
		}
	}

	app.render(w, r, "register.page.html", &HTMLData{
		Title:      "Регистрация",
		FormErrors: errs,
		FormData: map[string]string{
			"username": form.Username,
			"telegram": form.Telegram,
			"email":    form.Email,
		},
	})
}

func (app *App) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.render(w, r, "login.page.html", &HTMLData{Title: "Вход"})
		return
	}

	form := LoginForm{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	errs := form.Validate()
	if errs.Valid() {
		user, err := app.accounts.VerifyCredentials(r.Context(), form.Username, form.Password)
		switch {
		case err == nil:
			if err := app.signIn(w, r, user); err != nil {
				app.serverError(w, err)
				return
			}
			app.infoLog.Printf("user %q logged in", user.Username)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrInvalidCredentials):
			// One message for both, so login probing reveals nothing.
			errs.Add("password", "Неверное имя или пароль")
		default:
			app.serverError(w, err)
			return
		}
	}

	app.render(w, r, "login.page.html", &HTMLData{
		Title:      "Вход",
		FormErrors: errs,
		FormData:   map[string]string{"username": form.Username},
	})
}

func (app *App) logout(w http.ResponseWriter, r *http.Request) {
	app.signOut(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
