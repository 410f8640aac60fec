package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/bridges/internal/app"
	"github.com/gogotex/bridges/internal/config"
	"github.com/gogotex/bridges/internal/identity"
	"github.com/gogotex/bridges/internal/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Store:     config.StoreConfig{Backend: "memory", Partition: "BRIDGES"},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit: config.RateLimitConfig{Enabled: true, RPS: 100, Burst: 100},
	}
	if mutate != nil {
		mutate(cfg)
	}
	res, err := app.Open(context.Background(), cfg, identity.ContextProvider{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Close(context.Background()) })

	s := &server{cfg: cfg, res: res}
	s.verifier, err = app.NewVerifier(context.Background(), cfg)
	require.NoError(t, err)
	r, err := s.router()
	require.NoError(t, err)
	return r
}

func do(r http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthAndReady(t *testing.T) {
	r := newTestServer(t, nil)

	w := do(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", w.Body.String())

	w = do(r, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ready"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestReadyWithoutVerifier(t *testing.T) {
	r := newTestServer(t, func(c *config.Config) { c.Auth.Required = true })
	w := do(r, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"auth":false`)
}

func TestGraphQLAnonymous(t *testing.T) {
	r := newTestServer(t, nil)
	w := do(r, http.MethodPost, "/graphql",
		`{"query":"mutation { bridges { createBridge(data: {title: \"Tower\"}) { title createdBy { id } } } }"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Tower"`)
	assert.Contains(t, w.Body.String(), `"createdBy":null`)
}

func TestGraphQLRequiresToken(t *testing.T) {
	r := newTestServer(t, func(c *config.Config) {
		c.Auth.Required = true
		c.JWT.Secret = "test-secret"
	})

	w := do(r, http.MethodPost, "/graphql", `{"query":"{ bridges { listBridges { data { id } } } }"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tok, err := tokens.GenerateAccessToken("test-secret", &identity.Identity{ID: "u1", DisplayName: "Ada"}, time.Hour)
	require.NoError(t, err)
	w = do(r, http.MethodPost, "/graphql",
		`{"query":"mutation { bridges { createBridge(data: {title: \"Rialto\"}) { createdBy { id type displayName } } } }"}`,
		http.Header{"Authorization": {"Bearer " + tok}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"createdBy":{"id":"u1","type":"user","displayName":"Ada"}`)
}

func TestPlaygroundIsPublic(t *testing.T) {
	r := newTestServer(t, func(c *config.Config) { c.Auth.Required = true })
	w := do(r, http.MethodGet, "/graphql/schema", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "type Bridge")
}

func TestCORSPreflight(t *testing.T) {
	r := newTestServer(t, nil)
	w := do(r, http.MethodOptions, "/graphql", "", http.Header{
		"Origin":                        {"https://example.com"},
		"Access-Control-Request-Method": {"POST"},
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
