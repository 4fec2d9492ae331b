package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nemukerja/internal/core/auth"
	"nemukerja/internal/domain"
	resp "nemukerja/internal/transport/http/response"
)

func newAuthTestRouter(t *testing.T, j *auth.JWTer, requireRole domain.Role) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", AuthJWT(j, requireRole), func(c *gin.Context) {
		a, ok := Actor(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, resp.OK(gin.H{"uid": a.UserID, "role": string(a.Role)}))
	})
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func respCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var body resp.Resp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestAuthJWT(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "test", TTL: time.Hour}

	t.Run("missing token", func(t *testing.T) {
		r := newAuthTestRouter(t, j, "")
		w := doGet(r, "")
		assert.Equal(t, resp.CodeUnauthorized, respCode(t, w))
	})

	t.Run("valid token passes", func(t *testing.T) {
		r := newAuthTestRouter(t, j, "")
		token, err := j.Issue("u1", "applicant")
		require.NoError(t, err)
		w := doGet(r, token)
		assert.Equal(t, resp.CodeOK, respCode(t, w))
	})

	t.Run("reset token is not an access token", func(t *testing.T) {
		r := newAuthTestRouter(t, j, "")
		token, err := j.IssueReset("u1")
		require.NoError(t, err)
		w := doGet(r, token)
		assert.Equal(t, resp.CodeUnauthorized, respCode(t, w))
	})

	t.Run("unknown role claim", func(t *testing.T) {
		r := newAuthTestRouter(t, j, "")
		token, err := j.Issue("u1", "superuser")
		require.NoError(t, err)
		w := doGet(r, token)
		assert.Equal(t, resp.CodeUnauthorized, respCode(t, w))
	})

	t.Run("role restriction", func(t *testing.T) {
		r := newAuthTestRouter(t, j, domain.RoleCompany)

		token, err := j.Issue("u1", "applicant")
		require.NoError(t, err)
		w := doGet(r, token)
		assert.Equal(t, resp.CodeForbidden, respCode(t, w))

		token, err = j.Issue("u2", "company")
		require.NoError(t, err)
		w = doGet(r, token)
		assert.Equal(t, resp.CodeOK, respCode(t, w))
	})
}
