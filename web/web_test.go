package web

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoweb/todoweb/internal/model"
)

func TestForm_FieldError(t *testing.T) {
	form := NewForm()
	form.FieldErrors = model.FieldErrors{"email": {"first", "second"}}

	assert.Equal(t, "first", form.FieldError("email"))
	assert.Equal(t, "", form.FieldError("password"))
}

func TestRenderer_Render(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	form := NewForm()
	form.Values["email"] = "alice@example.com"
	form.FieldErrors = model.FieldErrors{"password": {"password must be at least 8 characters"}}

	w := httptest.NewRecorder()
	err = renderer.Render(w, "login.html", struct{ Form Form }{Form: form})
	require.NoError(t, err)

	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "alice@example.com")
	assert.Contains(t, w.Body.String(), "password must be at least 8 characters")
}

func TestRenderer_RenderUnknownTemplate(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	err = renderer.Render(w, "missing.html", nil)

	require.Error(t, err)
	assert.Empty(t, w.Body.String())
}
