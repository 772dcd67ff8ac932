package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func runAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/my-bookings", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured any
	handler := RequesterAuth(testSecret)(func(c echo.Context) error {
		captured = c.Get("requester_id")
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, captured
}

func TestRequesterAuthValidToken(t *testing.T) {
	token := signedToken(t, testSecret, jwt.MapClaims{
		"sub": float64(42),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec, captured := runAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(42), captured)
}

func TestRequesterAuthStringSubject(t *testing.T) {
	token := signedToken(t, testSecret, jwt.MapClaims{
		"sub": "1007",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec, captured := runAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(1007), captured)
}

func TestRequesterAuthMissingHeader(t *testing.T) {
	rec, captured := runAuth(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, captured)
}

func TestRequesterAuthWrongSecret(t *testing.T) {
	token := signedToken(t, "some-other-secret", jwt.MapClaims{
		"sub": float64(42),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec, captured := runAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, captured)
}

func TestRequesterAuthExpiredToken(t *testing.T) {
	token := signedToken(t, testSecret, jwt.MapClaims{
		"sub": float64(42),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	rec, _ := runAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequesterAuthRejectsUnsignedToken(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": float64(42)})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	rec, _ := runAuth(t, "Bearer "+raw)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequesterAuthBadSubject(t *testing.T) {
	for _, sub := range []any{float64(0), "not-a-number", ""} {
		token := signedToken(t, testSecret, jwt.MapClaims{
			"sub": sub,
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		rec, _ := runAuth(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "sub=%v", sub)
	}
}

func TestCurrentRequester(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Equal(t, "anon", currentRequester(c))
	c.Set("requester_id", uint64(42))
	assert.Equal(t, "42", currentRequester(c))
}
