package consent

import (
	"net/http"
	"time"
)

// CookieValues returns the consent cookies present on r, keyed like Storage.
func CookieValues(r *http.Request) map[string]string {
	values := make(map[string]string, 2)
	for _, name := range []string{KeyStatus, KeyTimestamp} {
		if c, err := r.Cookie(name); err == nil && c.Value != "" {
			values[name] = c.Value
		}
	}
	return values
}

// WriteCookies persists rec in the visitor's browser for MaxAge.
func WriteCookies(w http.ResponseWriter, rec Record, secure bool) {
	maxAge := int(MaxAge / time.Second)
	http.SetCookie(w, newCookie(KeyStatus, string(rec.Status), maxAge, secure))
	http.SetCookie(w, newCookie(KeyTimestamp, rec.DecidedAt.UTC().Format(time.RFC3339), maxAge, secure))
}

// ClearCookies removes the consent cookies from the visitor's browser.
func ClearCookies(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, newCookie(KeyStatus, "", -1, secure))
	http.SetCookie(w, newCookie(KeyTimestamp, "", -1, secure))
}

func newCookie(name, value string, maxAge int, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
