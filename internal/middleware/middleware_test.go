package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"fruitapp/internal/auth"
	"fruitapp/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authRouter() *gin.Engine {
	r := gin.New()
	// nil collection: every case below must abort before touching it.
	r.GET("/protected", RequireAuth(nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doGet(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingHeader(t *testing.T) {
	w := doGet(authRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	for _, header := range []string{"Bearer", "Token abc", "Bearer a b"} {
		w := doGet(authRouter(), header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	w := doGet(authRouter(), "Bearer definitely.not.valid")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthNonHexSubject(t *testing.T) {
	token, err := auth.GenerateToken("not-an-object-id")
	assert.NoError(t, err)

	w := doGet(authRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func roleRouter(identity *models.User, required ...models.Role) *gin.Engine {
	r := gin.New()
	r.GET("/admin",
		func(c *gin.Context) {
			if identity != nil {
				c.Set(identityKey, identity)
			}
		},
		RequireRole(required...),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func TestRequireRoleForbidden(t *testing.T) {
	r := roleRouter(&models.User{Role: models.RoleUser}, models.RoleAdmin)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleAllowed(t *testing.T) {
	r := roleRouter(&models.User{Role: models.RoleAdmin}, models.RoleAdmin)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleNoIdentity(t *testing.T) {
	r := roleRouter(nil, models.RoleAdmin)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSHeadersOnNormalRequest(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
}
