// Package session reads and writes the session token cookie. The cookie is
// the only transport for the token, the codec itself never sees HTTP.
package session

import (
	"net/http"
	"time"
)

// CookieName is the name of the session token cookie.
const CookieName = "session"

// Token returns the session token from the request cookie, or an empty
// string when the cookie is absent.
func Token(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Set attaches the session token to the response as an HTTP-only cookie
// expiring together with the token.
func Set(w http.ResponseWriter, token string, expiresAt time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear deletes the session cookie.
func Clear(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
