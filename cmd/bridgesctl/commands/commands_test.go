package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gogotex/bridges/internal/oidc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("ID_STRATEGY", "objectid")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REDIS_HOST", "")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTokenIssue(t *testing.T) {
	setEnv(t)
	t.Setenv("JWT_SECRET", "cli-secret")

	out, err := run(t, "token", "issue", "--sub", "u1", "--name", "Ada", "--ttl", "5m")
	require.NoError(t, err)
	raw := strings.TrimSpace(out)
	require.NotEmpty(t, raw)

	ver, err := oidc.NewHMACVerifier("cli-secret")
	require.NoError(t, err)
	tok, err := ver.Verify(context.Background(), raw)
	require.NoError(t, err)
	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))
	assert.Equal(t, "u1", claims["sub"])
	assert.Equal(t, "Ada", claims["name"])
	assert.Equal(t, "user", claims["type"])
}

func TestTokenIssueErrors(t *testing.T) {
	setEnv(t)
	_, err := run(t, "token", "issue", "--sub", "u1")
	require.Error(t, err, "no secret configured")

	t.Setenv("JWT_SECRET", "cli-secret")
	_, err = run(t, "token", "issue")
	require.Error(t, err, "--sub is required")
}

func TestTokenRevoke(t *testing.T) {
	setEnv(t)
	mr := miniredis.RunT(t)
	host, port, _ := strings.Cut(mr.Addr(), ":")
	t.Setenv("REDIS_HOST", host)
	t.Setenv("REDIS_PORT", port)

	out, err := run(t, "token", "revoke", "--token", "abc.def.ghi", "--ttl", "1m")
	require.NoError(t, err)
	assert.Contains(t, out, "token revoked")
	assert.Len(t, mr.Keys(), 1)
}

func TestTokenRevokeWithoutRedis(t *testing.T) {
	setEnv(t)
	_, err := run(t, "token", "revoke", "--token", "abc")
	require.Error(t, err)
}

func TestExportEmptyStore(t *testing.T) {
	setEnv(t)
	out, err := run(t, "export")
	require.NoError(t, err)
	assert.Empty(t, out)

	path := filepath.Join(t.TempDir(), "dump.ndjson")
	_, err = run(t, "export", "--out", path, "--sort", "createdOn_DESC", "--page-size", "5")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestExportFlagErrors(t *testing.T) {
	setEnv(t)
	_, err := run(t, "export", "--sort", "title_ASC")
	require.Error(t, err)

	_, err = run(t, "export", "--out", "x.ndjson", "--upload")
	require.Error(t, err)
}
