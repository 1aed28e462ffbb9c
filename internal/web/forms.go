package web

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// FieldErrors maps a form field to its first validation message.
type FieldErrors map[string]string

func (e FieldErrors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Field validators are independent of any form; each form composes
// the ones it needs.

func required(errs FieldErrors, field, value string) {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, "Поле обязательно")
	}
}

func maxLength(errs FieldErrors, field, value string, limit int) {
	if utf8.RuneCountInString(value) > limit {
		errs.Add(field, fmt.Sprintf("Не длиннее %d символов", limit))
	}
}

func validEmail(errs FieldErrors, field, value string) {
	if value != "" && !emailPattern.MatchString(value) {
		errs.Add(field, "Некорректный email")
	}
}

func equalFields(errs FieldErrors, field, a, b string) {
	if a != b {
		errs.Add(field, "Пароли не совпадают")
	}
}

type LoginForm struct {
	Username string
	Password string
}

func (f LoginForm) Validate() FieldErrors {
	errs := FieldErrors{}
	required(errs, "username", f.Username)
	required(errs, "password", f.Password)
	return errs
}

type RegisterForm struct {
	Username  string
	Telegram  string
	Email     string
	Password  string
	Password2 string
}

func (f RegisterForm) Validate() FieldErrors {
	errs := FieldErrors{}
	required(errs, "username", f.Username)
	maxLength(errs, "username", f.Username, 64)
	required(errs, "email", f.Email)
	validEmail(errs, "email", f.Email)
	required(errs, "password", f.Password)
	equalFields(errs, "password2", f.Password, f.Password2)
	return errs
}

type PostForm struct {
	Title  string
	Body   string
	Price  string
	Places string
}

func (f PostForm) Validate() FieldErrors {
	errs := FieldErrors{}
	required(errs, "title", f.Title)
	maxLength(errs, "title", f.Title, 100)
	required(errs, "body", f.Body)
	maxLength(errs, "body", f.Body, 300)
	required(errs, "price", f.Price)
	maxLength(errs, "price", f.Price, 20)
	required(errs, "places", f.Places)
	maxLength(errs, "places", f.Places, 300)
	return errs
}

type EditProfileForm struct {
	Username string
	AboutMe  string
}

func (f EditProfileForm) Validate() FieldErrors {
	errs := FieldErrors{}
	required(errs, "username", f.Username)
	maxLength(errs, "username", f.Username, 64)
	maxLength(errs, "about_me", f.AboutMe, 140)
	return errs
}
