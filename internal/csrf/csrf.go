// Package csrf protects the wizard's form posts with the double-submit
// cookie pattern: the same random token travels in a cookie and in a hidden
// form field, and a post is accepted only when both match.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
)

const (
	// CookieName is the name of the CSRF token cookie.
	CookieName = "csrf_token"

	// FormFieldName is the name of the hidden form field.
	FormFieldName = "csrf_token"

	// TokenLength is the number of random bytes in a token (256 bits).
	TokenLength = 32

	// CookieMaxAge is the cookie lifetime in seconds. A wizard step rarely
	// stays open longer than an hour.
	CookieMaxAge = 3600
)

// GenerateToken returns 32 random bytes, base64 URL-encoded (43 characters).
func GenerateToken() (string, error) {
	b := make([]byte, TokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidateToken compares the two tokens in constant time.
func ValidateToken(cookieToken, formToken string) bool {
	if cookieToken == "" || formToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(formToken)) == 1
}

// Protector issues and checks tokens for one deployment.
type Protector struct {
	isSecure bool
}

// New creates a Protector. isSecure marks the cookie Secure (HTTPS only).
func New(isSecure bool) *Protector {
	return &Protector{isSecure: isSecure}
}

// Token returns the request's existing token, or issues a new one and sets
// the cookie. Call it from GET handlers that render a form.
func (p *Protector) Token(w http.ResponseWriter, r *http.Request) (string, error) {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}

	token, err := GenerateToken()
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   CookieMaxAge,
		HttpOnly: true,
		Secure:   p.isSecure,
		SameSite: http.SameSiteStrictMode,
	})
	return token, nil
}

// Valid reports whether the posted form token matches the cookie.
// It calls r.FormValue, which parses the form if needed.
func (p *Protector) Valid(r *http.Request) bool {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	return ValidateToken(c.Value, r.FormValue(FormFieldName))
}
