package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runInitIn(t *testing.T, dir string, extraArgs ...string) (string, error) {
	t.Helper()
	cmd := NewInitCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{dir}, extraArgs...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestInitCommand_CreatesConfig(t *testing.T) {
	dir := t.TempDir()

	out, err := runInitIn(t, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "kinotek.yaml")

	data, err := os.ReadFile(filepath.Join(dir, "kinotek.yaml"))
	require.NoError(t, err)

	var cfg map[string]any
	require.NoError(t, yaml.Unmarshal(data, &cfg))

	assert.Equal(t, "db.sqlite", cfg["source_path"])
	assert.Equal(t, 100, cfg["batch_size"])

	target, ok := cfg["target"].(map[string]any)
	require.True(t, ok, "target should be a mapping")
	assert.Equal(t, "postgres", target["type"])
	assert.Equal(t, "content", target["schema"])
	assert.Equal(t, "${DB_PASSWORD}", target["password"], "credentials stay as placeholders")
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kinotek.yaml")
	require.NoError(t, os.WriteFile(path, []byte("existing"), 0o600))

	_, err := runInitIn(t, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "existing", string(data))
}

func TestInitCommand_ForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kinotek.yaml")
	require.NoError(t, os.WriteFile(path, []byte("existing"), 0o600))

	_, err := runInitIn(t, dir, "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, "existing", string(data))
	assert.Contains(t, string(data), "source_path: db.sqlite")
}

func TestInitCommand_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deploy")

	_, err := runInitIn(t, dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "kinotek.yaml"))
	assert.NoError(t, err)
}
