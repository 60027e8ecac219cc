package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_SetSession(t *testing.T) {
	cfg := NewConfig("", "shop.example.com", true)
	assert.Equal(t, DefaultSessionName, cfg.Name)

	rec := httptest.NewRecorder()
	cfg.SetSession(rec, "abc")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, DefaultSessionName, c.Name)
	assert.Equal(t, "abc", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, int(SessionMaxAge.Seconds()), c.MaxAge)
}

func TestConfig_ClearSession(t *testing.T) {
	cfg := NewConfig("cart_sid", "", false)
	rec := httptest.NewRecorder()
	cfg.ClearSession(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "cart_sid", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestConfig_Session(t *testing.T) {
	cfg := NewConfig("cart_sid", "", false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, cfg.Session(req))

	req.AddCookie(&http.Cookie{Name: "cart_sid", Value: "xyz"})
	assert.Equal(t, "xyz", cfg.Session(req))
}

func TestGenerateSessionID(t *testing.T) {
	a, err := GenerateSessionID()
	require.NoError(t, err)
	b, err := GenerateSessionID()
	require.NoError(t, err)

	assert.Len(t, a, 43)
	assert.NotEqual(t, a, b)
}
