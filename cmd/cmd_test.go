package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/sonar-libras/sonar/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestCLIFlow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out := mustRun(t, "whoami")
	assert.Contains(t, out, "Not logged in")

	out = mustRun(t, "register", "--name", "TechCo", "--email", "rh@techco.com",
		"--password", "senha123", "--confirm", "senha123", "--type", "empresa")
	assert.Contains(t, out, "Welcome, TechCo")

	_, err := run(t, "job", "create", "--title", "Dev Go", "--location", "Recife, PE",
		"--type", "CLT", "--mode", "Remoto", "--summary", "Vaga inclusiva", "--description", "Go e SQL")
	require.Error(t, err, "terms must be accepted")

	out = mustRun(t, "job", "create", "--title", "Dev Go", "--location", "Recife, PE",
		"--type", "CLT", "--mode", "Remoto", "--summary", "Vaga inclusiva", "--description", "Go e SQL",
		"--tags", "Go, SQL", "--accept-terms")
	m := regexp.MustCompile(`ID: (\S+)\)`).FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	jobID := m[1]

	_, err = run(t, "apply", jobID)
	require.Error(t, err, "companies cannot apply")

	mustRun(t, "logout")
	mustRun(t, "register", "--name", "Ana", "--email", "ana@x.com",
		"--password", "senha123", "--confirm", "senha123", "--type", "candidato")

	out = mustRun(t, "job", "list", "--query", "dev go")
	assert.Contains(t, out, "Dev Go")

	out = mustRun(t, "apply", jobID)
	assert.Contains(t, out, "Applied to Dev Go")
	out = mustRun(t, "apply", jobID)
	assert.Contains(t, out, "already applied")

	out = mustRun(t, "application", "list")
	assert.Contains(t, out, "Pendente")

	mustRun(t, "course", "enroll", "numeros-quantidades")
	mustRun(t, "course", "complete", "numeros-quantidades", "mod1")
	out = mustRun(t, "course", "progress", "numeros-quantidades")
	assert.Contains(t, out, "33%")

	mustRun(t, "login", "--email", "rh@techco.com", "--password", "senha123")
	out = mustRun(t, "job", "stats")
	assert.Regexp(t, `Applications received:\S*\s+1`, out)

	_, err = run(t, "login", "--email", "rh@techco.com", "--password", "wrong")
	require.Error(t, err)
	out = mustRun(t, "whoami")
	assert.Contains(t, out, "TechCo", "failed login keeps the session")

	mustRun(t, "login", "--email", "ana@x.com", "--password", "senha123")
	rootCmd.SetIn(strings.NewReader("/dev go\n1\na\nq\n"))
	defer rootCmd.SetIn(nil)
	out = mustRun(t, "tui")
	assert.Regexp(t, `Search:\S*\s+dev go`, out)
	assert.Contains(t, out, "1. Dev Go at TechCo")
	assert.Contains(t, out, "already applied")
}

func TestMissingRecordsAreNotFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := run(t, "job", "show", "missing")
	assert.ErrorIs(t, err, app.ErrNotFound)

	_, err = run(t, "course", "player", "missing")
	assert.ErrorIs(t, err, app.ErrNotFound)

	mustRun(t, "register", "--name", "Edu", "--email", "edu@x.com",
		"--password", "senha123", "--confirm", "senha123", "--type", "aluno")
	_, err = run(t, "course", "enroll", "missing")
	assert.ErrorIs(t, err, app.ErrNotFound)
}

func TestConfigSetValidatesValues(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	mustRun(t, "whoami")

	_, err := run(t, "config", "set", "--key", "node_id", "--value", "4096")
	assert.ErrorIs(t, err, app.ErrInvalidArgument)
	_, err = run(t, "config", "set", "--key", "seed_jobs", "--value", "maybe")
	assert.ErrorIs(t, err, app.ErrInvalidArgument)
	_, err = run(t, "config", "set", "--key", "color", "--value", "red")
	assert.ErrorIs(t, err, app.ErrInvalidArgument)
	mustRun(t, "whoami")

	// a config edited by hand to a value the app rejects can be repaired
	path := filepath.Join(home, ".sonar", "config.yaml")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(string(raw), "node_id: 1", "node_id: 4096", 1)), 0600))

	_, err = run(t, "whoami")
	require.Error(t, err)
	out := mustRun(t, "config", "set", "--key", "node_id", "--value", "5")
	assert.Contains(t, out, "Configuration updated: node_id")
	mustRun(t, "whoami")
}
