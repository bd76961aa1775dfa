package csrf

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken()
	require.NoError(t, err)
	b, err := GenerateToken()
	require.NoError(t, err)

	assert.Len(t, a, 43)
	assert.NotEqual(t, a, b)
}

func TestValidateToken(t *testing.T) {
	assert.True(t, ValidateToken("abc", "abc"))
	assert.False(t, ValidateToken("abc", "abd"))
	assert.False(t, ValidateToken("", ""))
	assert.False(t, ValidateToken("abc", ""))
}

func TestProtector_TokenIssuesCookieOnce(t *testing.T) {
	p := New(true)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/booking/skip", nil)
	token, err := p.Token(rec, req)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, token, cookies[0].Value)
	assert.True(t, cookies[0].Secure)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)

	// A request that already carries the cookie keeps its token
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/booking/skip", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	again, err := p.Token(rec, req)
	require.NoError(t, err)

	assert.Equal(t, token, again)
	assert.Empty(t, rec.Result().Cookies())
}

func TestProtector_Valid(t *testing.T) {
	p := New(false)

	post := func(cookie, field string) *http.Request {
		form := url.Values{}
		if field != "" {
			form.Set(FormFieldName, field)
		}
		req := httptest.NewRequest("POST", "/booking/skip", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
		}
		return req
	}

	assert.True(t, p.Valid(post("tok", "tok")))
	assert.False(t, p.Valid(post("tok", "other")))
	assert.False(t, p.Valid(post("", "tok")))
	assert.False(t, p.Valid(post("tok", "")))
}
