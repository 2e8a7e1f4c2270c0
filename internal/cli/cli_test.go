package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-while/go-probview/internal/config"
	"github.com/go-while/go-probview/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	t.Setenv(config.EnvConfigFile, "")
	t.Setenv(config.EnvDBPath, "")
	t.Setenv(config.EnvProblemsDir, "")

	dir := t.TempDir()
	path := filepath.Join(dir, "probview.yaml")
	body := "corpus:\n" +
		"  problems_dir: " + filepath.Join(dir, "problems") + "\n" +
		"  languages_file: " + filepath.Join(dir, "tools", "config.json") + "\n" +
		"database:\n" +
		"  path: " + filepath.Join(dir, "data", "index.sq3") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return dir, path
}

func execute(t *testing.T, args ...string) {
	t.Helper()
	RootCmd.SetArgs(args)
	require.NoError(t, RootCmd.Execute())
}

func TestCommandsWorkflow(t *testing.T) {
	dir, cfg := writeTestConfig(t)

	execute(t, "--config", cfg, "add-language", "python", "py", "--boilerplate", `class Solution:\n    pass`, "--apply=false")
	execute(t, "--config", cfg, "create", "1", "Two Sum")

	folder := filepath.Join(dir, "problems", "0001_two-sum")
	solution, err := os.ReadFile(filepath.Join(folder, "python", "user_solution.py"))
	require.NoError(t, err)
	assert.Equal(t, "class Solution:\n    pass\n", string(solution))

	execute(t, "--config", cfg, "update", "1", "solved=true", "tags=array,hash-table", "bogus=1")

	data, err := os.ReadFile(filepath.Join(folder, "ui", "problem.json"))
	require.NoError(t, err)
	p, err := models.DecodeProblem(data)
	require.NoError(t, err)
	assert.True(t, p.Solved)
	assert.Equal(t, []string{"array", "hash-table"}, p.Tags)
	assert.Equal(t, []string{"python"}, p.Code.Languages())

	execute(t, "--config", cfg, "build")
	execute(t, "--config", cfg, "index")
	_, err = os.Stat(filepath.Join(dir, "data", "index.sq3"))
	assert.NoError(t, err)
}

func TestUnescapeNewlines(t *testing.T) {
	assert.Equal(t, "", unescapeNewlines(""))
	assert.Equal(t, "a\nb\n", unescapeNewlines(`a\nb`))
	assert.Equal(t, "a\n", unescapeNewlines("a\n"))
}
