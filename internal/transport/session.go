package transport

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	cartSessionCookie = "cart_session"
	accessTokenCookie = "access_token"

	cartSessionTTL = 30 * 24 * time.Hour
	sessionTTL     = 24 * time.Hour
)

// ensureCartSession returns the caller's cart session id, minting one on
// first contact so the cart survives reloads.
func ensureCartSession(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(cartSessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cartSessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cartSessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
