package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLanguageCreatesConfig(t *testing.T) {
	root := t.TempDir()
	c := New(filepath.Join(root, "problems"), filepath.Join(root, "tools", "config.json"), "")

	lang, err := c.AddLanguage("TypeScript", ".TS", "")
	require.NoError(t, err)
	assert.Equal(t, "typescript", lang.Name)
	assert.Equal(t, "ts", lang.Ext)
	assert.Equal(t, "// Write your Typescript solution here\n", lang.Boilerplate)

	_, err = c.AddLanguage("go", "go", "package main\n")
	require.NoError(t, err)

	cfg, err := c.LoadLanguages()
	require.NoError(t, err)
	assert.Equal(t, []string{"typescript", "go"}, cfg.Languages.Names())
	assert.Equal(t, "problem-view", cfg.DefaultTemplate)

	_, err = c.AddLanguage("go", "go", "")
	assert.ErrorIs(t, err, ErrLanguageExists)
}

func TestLanguageSetKeepsFileOrder(t *testing.T) {
	c := newTestCorpus(t)
	cfg, err := c.LoadLanguages()
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "cpp"}, cfg.Languages.Names())

	require.NoError(t, c.SaveLanguages(cfg))
	again, err := c.LoadLanguages()
	require.NoError(t, err)
	assert.Equal(t, cfg.Languages, again.Languages)
}

func TestApplyLanguage(t *testing.T) {
	c := newTestCorpus(t)
	name, err := c.CreateProblem(Scaffold{Number: 1, Title: "Two Sum"})
	require.NoError(t, err)

	lang, err := c.AddLanguage("rust", "rs", "// rust\n")
	require.NoError(t, err)

	n, err := c.ApplyLanguage(lang)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.FileExists(t, c.ProblemPath(name, "rust", "user_solution.rs"))

	meta, err := c.ReadMeta(name)
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "cpp", "rust"}, meta.Languages)

	n, err = c.ApplyLanguage(lang)
	require.NoError(t, err)
	assert.Zero(t, n)

	rec, err := c.Aggregate(name)
	require.NoError(t, err)
	assert.Equal(t, "// rust\n", rec.Problem.SolutionText("rust", "user"))

	_, err = os.Stat(c.ProblemPath(name, "rust", "leetcode_solution.rs"))
	assert.NoError(t, err)
}
