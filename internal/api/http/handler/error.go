package handler

import (
	"errors"

	"github.com/todoweb/todoweb/internal/model"
	"github.com/todoweb/todoweb/web"
)

// formStateFromError maps a flow error onto the form it came from. Domain
// errors land on their field, everything else becomes a form-level banner.
func formStateFromError(form *web.Form, err error) {
	if fieldErrs, ok := model.AsFieldErrors(err); ok {
		form.FieldErrors = fieldErrs
		return
	}

	switch {
	case errors.Is(err, model.ErrDuplicateEmail):
		form.FieldErrors = model.FieldErrors{"email": {"this email is already registered"}}
	case errors.Is(err, model.ErrUnknownEmail):
		form.FieldErrors = model.FieldErrors{"email": {"this email is not registered"}}
	case errors.Is(err, model.ErrInvalidPassword):
		form.FieldErrors = model.FieldErrors{"password": {"password is incorrect"}}
	default:
		form.FormErrors = append(form.FormErrors, "something went wrong, please try again")
	}
}
