package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Ajeyanth/SafeServeBackend/internal/middleware"
	"github.com/Ajeyanth/SafeServeBackend/internal/model"
	"github.com/Ajeyanth/SafeServeBackend/internal/utils"
)

func runWith(t *testing.T, mw echo.MiddlewareFunc, prep func(c echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if prep != nil {
		prep(c)
	}
	h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	require.NoError(t, h(c))
	return rec
}

func TestJWTAuthAcceptsIssuedToken(t *testing.T) {
	tok, err := utils.NewAccessToken("secret", 7, model.RoleOwner, 5)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUser, gotRole any
	h := middleware.JWTAuth("secret")(func(c echo.Context) error {
		gotUser = c.Get("user_id")
		gotRole = c.Get("role")
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(7), gotUser, "numeric claims decode as float64")
	require.Equal(t, "OWNER", gotRole)
}

func TestJWTAuthRejects(t *testing.T) {
	rec := runWith(t, middleware.JWTAuth("secret"), nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := utils.NewAccessToken("other-secret", 7, model.RoleOwner, 5)
	require.NoError(t, err)
	rec = runWith(t, middleware.JWTAuth("secret"), func(c echo.Context) {
		c.Request().Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	ownerOnly := middleware.RequireRole(model.RoleOwner)

	rec := runWith(t, ownerOnly, func(c echo.Context) { c.Set("role", "OWNER") })
	require.Equal(t, http.StatusOK, rec.Code)

	rec = runWith(t, ownerOnly, func(c echo.Context) { c.Set("role", "CUSTOMER") })
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Unknown roles never pass, whatever the allow list says.
	rec = runWith(t, middleware.RequireRole(model.RoleOwner, model.RoleCustomer),
		func(c echo.Context) { c.Set("role", "ADMIN") })
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = runWith(t, ownerOnly, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
