package corpus

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-while/go-probview/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const languagesJSON = `{
    "languages": {
        "python": {"ext": "py", "boilerplate": "# Write your Python solution here\n"},
        "cpp": {"ext": "cpp", "boilerplate": "// Write your Cpp solution here\n"}
    },
    "default_template": "problem-view"
}`

func newTestCorpus(t *testing.T) *Corpus {
	t.Helper()
	root := t.TempDir()
	c := New(filepath.Join(root, "problems"), filepath.Join(root, "tools", "config.json"), "")
	require.NoError(t, os.MkdirAll(filepath.Dir(c.LanguagesFile), 0o755))
	require.NoError(t, os.WriteFile(c.LanguagesFile, []byte(languagesJSON), 0o644))
	c.Now = func() time.Time { return time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC) }
	return c
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "two-sum", NormalizeTitle("Two Sum"))
	assert.Equal(t, "0001_two-sum", FolderName(1, "Two Sum"))
	assert.Equal(t, "0042_trapping-rain-water", FolderName(42, " Trapping Rain Water "))
}

func TestCreateProblem(t *testing.T) {
	c := newTestCorpus(t)
	name, err := c.CreateProblem(Scaffold{Number: 1, Title: "Two Sum"})
	require.NoError(t, err)
	assert.Equal(t, "0001_two-sum", name)

	for _, f := range []string{"README.md", "meta.json", "python/user_solution.py", "python/leetcode_solution.py", "cpp/user_solution.cpp", "ui/problem.json"} {
		assert.FileExists(t, c.ProblemPath(name, filepath.FromSlash(f)))
	}

	meta, err := c.ReadMeta(name)
	require.NoError(t, err)
	assert.Equal(t, "two-sum", meta.Slug)
	assert.Equal(t, "problem-view", meta.Template)
	assert.Equal(t, []string{"python", "cpp"}, meta.Languages)
	assert.Equal(t, "2025-01-10T09:30:00", meta.CreatedAt)
	assert.Equal(t, models.DifficultyEasy, meta.Difficulty)

	raw, err := os.ReadFile(c.ProblemPath(name, "meta.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n    \"problem_number\": 1,")

	rec, err := c.ReadRecord(name)
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "cpp"}, rec.Problem.Code.Languages())
	assert.Equal(t, "# Write your Python solution here\n", rec.Problem.SolutionText("python", models.VariantUser))
	assert.Empty(t, rec.Problem.Statement, "scaffold placeholder is not a statement")
}

func TestCreateProblemKeepsExistingFiles(t *testing.T) {
	c := newTestCorpus(t)
	name, err := c.CreateProblem(Scaffold{Number: 1, Title: "Two Sum"})
	require.NoError(t, err)

	user := c.ProblemPath(name, "python", "user_solution.py")
	require.NoError(t, os.WriteFile(user, []byte("def solve(): return 42\n"), 0o644))

	_, err = c.CreateProblem(Scaffold{Number: 1, Title: "Two Sum", Difficulty: models.DifficultyHard})
	require.NoError(t, err)
	got, err := os.ReadFile(user)
	require.NoError(t, err)
	assert.Equal(t, "def solve(): return 42\n", string(got))

	meta, err := c.ReadMeta(name)
	require.NoError(t, err)
	assert.Equal(t, models.DifficultyEasy, meta.Difficulty)
}

func TestCreateProblemNeedsLanguages(t *testing.T) {
	c := New(t.TempDir(), filepath.Join(t.TempDir(), "missing.json"), "")
	_, err := c.CreateProblem(Scaffold{Number: 1, Title: "Two Sum"})
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFindProblem(t *testing.T) {
	c := newTestCorpus(t)
	_, err := c.CreateProblem(Scaffold{Number: 12, Title: "Integer to Roman"})
	require.NoError(t, err)

	name, err := c.FindProblem(12)
	require.NoError(t, err)
	assert.Equal(t, "0012_integer-to-roman", name)

	_, err = c.FindProblem(1)
	assert.ErrorIs(t, err, ErrProblemNotFound)
}

func TestUpdateProgress(t *testing.T) {
	c := newTestCorpus(t)
	name, err := c.CreateProblem(Scaffold{Number: 1, Title: "Two Sum"})
	require.NoError(t, err)

	updates, err := ParseUpdates([]string{
		"solved=true",
		"tags=array, hash-table",
		"links.leetcode=https://leetcode.com/problems/two-sum/",
		"difficulty=Medium",
		"mood=great",
	})
	require.NoError(t, err)

	rec, skipped, err := c.UpdateProgress(1, updates)
	require.NoError(t, err)
	assert.Equal(t, []string{"mood"}, skipped)
	assert.True(t, rec.Problem.Solved)
	assert.Equal(t, []string{"array", "hash-table"}, rec.Problem.Tags)
	assert.Equal(t, models.DifficultyMedium, rec.Problem.Difficulty)
	assert.True(t, rec.Changed)

	meta, err := c.ReadMeta(name)
	require.NoError(t, err)
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", meta.Links.LeetCode)

	bad, err := ParseUpdates([]string{"solved=maybe"})
	require.NoError(t, err)
	_, _, err = c.UpdateProgress(1, bad)
	assert.Error(t, err)

	_, err = ParseUpdates([]string{"solved"})
	assert.Error(t, err)
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, true, ParseValue("TRUE"))
	assert.Equal(t, false, ParseValue("false"))
	assert.Equal(t, []string{"a", "b"}, ParseValue("a, b"))
	assert.Equal(t, "Medium", ParseValue("Medium"))
}

func TestAggregateSkipsUnchanged(t *testing.T) {
	c := newTestCorpus(t)
	name, err := c.CreateProblem(Scaffold{Number: 1, Title: "Two Sum"})
	require.NoError(t, err)

	rec, err := c.Aggregate(name)
	require.NoError(t, err)
	assert.False(t, rec.Changed)

	require.NoError(t, os.WriteFile(c.ProblemPath(name, "cpp", "leetcode_solution.cpp"), []byte("class Solution {};\r\n"), 0o644))
	rec, err = c.Aggregate(name)
	require.NoError(t, err)
	assert.True(t, rec.Changed)
	assert.Equal(t, "class Solution {};\n", rec.Problem.SolutionText("cpp", models.VariantReference))

	data, err := os.ReadFile(rec.Path)
	require.NoError(t, err)
	assert.Equal(t, rec.Checksum, Checksum(data))
}

func TestAggregateKeepsCodeOrderAndUnconfigured(t *testing.T) {
	c := newTestCorpus(t)
	name, err := c.CreateProblem(Scaffold{Number: 2, Title: "Add Two Numbers"})
	require.NoError(t, err)

	meta, err := c.ReadMeta(name)
	require.NoError(t, err)
	meta.Languages = []string{"cpp", "haskell", "python"}
	require.NoError(t, c.WriteMeta(name, meta))

	rec, err := c.Aggregate(name)
	require.NoError(t, err)
	assert.Equal(t, []string{"cpp", "python"}, rec.Problem.Code.Languages())
	assert.Equal(t, "cpp", rec.Problem.DefaultLanguage())

	var raw map[string]any
	data, err := os.ReadFile(rec.Path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "timeComplexity")
	assert.Equal(t, []any{}, raw["examples"])
}

func TestAggregateWithoutMeta(t *testing.T) {
	c := newTestCorpus(t)
	require.NoError(t, os.MkdirAll(c.ProblemPath("0003_empty"), 0o755))
	_, err := c.Aggregate("0003_empty")
	assert.ErrorIs(t, err, ErrNoMeta)
}

func TestAggregateAll(t *testing.T) {
	c := newTestCorpus(t)
	_, err := c.CreateProblem(Scaffold{Number: 1, Title: "Two Sum"})
	require.NoError(t, err)
	_, err = c.CreateProblem(Scaffold{Number: 2, Title: "Add Two Numbers"})
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(c.ProblemPath("0003_broken"), 0o755))

	records, failed, err := c.AggregateAll()
	require.NoError(t, err)
	assert.Len(t, records, 2)
	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed["0003_broken"], ErrNoMeta)
}
