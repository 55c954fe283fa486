package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Luyzz22/contract-analyzer-backend/pkg/auth"
)

const criticalEmployment = `{
	"job_title": "Softwareentwickler",
	"probation": {"duration_months": 8},
	"vacation": {"days_per_year": 15},
	"non_compete": {"post_employment": true, "missing_compensation": true},
	"working_conditions": {"overtime_included_in_salary": "ja"}
}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAssessCmd(t *testing.T) {
	dir := t.TempDir()
	critical := writeFile(t, dir, "critical.json", criticalEmployment)
	plain := writeFile(t, dir, "plain.json", `{"job_title": "Buchhalter"}`)

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "assess", "--type", "employment", critical, plain)
		require.NoError(t, err)

		var results []assessResult
		require.NoError(t, json.Unmarshal([]byte(out), &results))
		require.Len(t, results, 2)
		assert.Equal(t, "critical.json", results[0].File)
		assert.Equal(t, 100, results[0].Assessment.OverallRiskScore)
		assert.Equal(t, "plain.json", results[1].File)
	})

	t.Run("yaml uses api field names", func(t *testing.T) {
		out, err := execute(t, "assess", "-t", "employment", "-o", "yaml", critical)
		require.NoError(t, err)

		var doc []map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
		require.Len(t, doc, 1)
		assessment, ok := doc[0]["assessment"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "critical", assessment["overall_risk_level"])
	})

	t.Run("fail-on", func(t *testing.T) {
		_, err := execute(t, "assess", "-t", "employment", "--fail-on", "high", critical)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "critical.json")
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := execute(t, "assess", "-t", "lease", critical)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "assess", "-t", "employment", filepath.Join(dir, "nope.json"))
		require.Error(t, err)
	})

	t.Run("unsupported output is rejected before reading files", func(t *testing.T) {
		out, err := execute(t, "assess", "-t", "employment", "-o", "xml", critical, filepath.Join(dir, "nope.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unsupported output format "xml"`)
		assert.Empty(t, out)
	})
}

func TestTokenCmd(t *testing.T) {
	tenantID := uuid.New()
	out, err := execute(t, "token", "--tenant", tenantID.String(), "--roles", "viewer, analyst", "--secret", "cli-secret")
	require.NoError(t, err)

	svc, err := auth.NewJWTService(auth.JWTConfig{Secret: "cli-secret", Issuer: "contract-analyzer"})
	require.NoError(t, err)
	claims, err := svc.ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.ElementsMatch(t, []string{auth.RoleViewer, auth.RoleAnalyst}, claims.Roles)

	_, err = execute(t, "token", "--tenant", "not-a-uuid", "--secret", "x")
	require.Error(t, err)
}

func TestKeygenAndRS256Token(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "keygen", "--out", dir)
	require.NoError(t, err)

	out, err := execute(t, "token", "--tenant", uuid.NewString(), "--key", filepath.Join(dir, "jwt-private.pem"), "--secret", "")
	require.NoError(t, err)

	pub, err := auth.LoadKeyFromFile(filepath.Join(dir, "jwt-public.pem"))
	require.NoError(t, err)
	svc, err := auth.NewJWTService(auth.JWTConfig{PublicKeyPEM: pub, Issuer: "contract-analyzer"})
	require.NoError(t, err)
	_, err = svc.ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
}

func TestCertsCmd(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "certs", "--out", dir, "--host", "localhost")
	require.NoError(t, err)
	for _, name := range []string{"ca.pem", "server.pem", "server-key.pem"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestMigrateCmd_RejectsDirection(t *testing.T) {
	_, err := execute(t, "migrate", "sideways", "--database-url", "postgres://localhost/none")
	require.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	assert.Nil(t, splitList(""))
}
