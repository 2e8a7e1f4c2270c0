package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoSumRecord = `{
  "problem_number": 1,
  "title": "Two Sum",
  "slug": "two-sum",
  "template": "problem-view",
  "languages": ["python", "cpp", "java"],
  "created_at": "2025-01-10T09:30:00",
  "solved": true,
  "notes_complete": false,
  "tags": ["array", "hash-table"],
  "difficulty": "Easy",
  "links": {"leetcode": "https://leetcode.com/problems/two-sum/", "github": "", "discussion": ""},
  "statement": "Find two numbers that add up to target.",
  "examples": [{"input": "nums = [2,7,11,15], target = 9", "output": "[0,1]"}],
  "code": {
    "python": {"user_solution": "def two_sum(): pass", "leetcode_solution": "class Solution: pass"},
    "cpp": {"user_solution": "int main() {}", "leetcode_solution": ""}
  }
}`

func TestDecodeProblem(t *testing.T) {
	p, err := DecodeProblem([]byte(twoSumRecord))
	require.NoError(t, err)

	assert.Equal(t, 1, p.Number)
	assert.Equal(t, "Two Sum", p.Title)
	assert.Equal(t, "0001", p.PaddedNumber())
	assert.Equal(t, []string{"array", "hash-table"}, p.Tags)
	assert.Equal(t, []string{"python", "cpp"}, p.Code.Languages())
	assert.Equal(t, "python", p.DefaultLanguage())
	assert.Equal(t, 2025, p.Created().Year())
	require.Len(t, p.Examples, 1)
	assert.Empty(t, p.Examples[0].Explanation)
}

func TestDecodeProblemMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"problem_number": `},
		{"missing number", `{"title":"x","slug":"x","created_at":"2025-01-10T09:30:00"}`},
		{"missing title", `{"problem_number":1,"slug":"x","created_at":"2025-01-10T09:30:00"}`},
		{"bad date", `{"problem_number":1,"title":"x","slug":"x","created_at":"yesterday"}`},
		{"code not object", `{"problem_number":1,"title":"x","slug":"x","created_at":"2025-01-10T09:30:00","code":[]}`},
		{"unlisted language", `{"problem_number":1,"title":"x","slug":"x","created_at":"2025-01-10T09:30:00","languages":["go"],"code":{"rust":{}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeProblem([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestCreatedAtAcceptsRFC3339(t *testing.T) {
	p, err := DecodeProblem([]byte(`{"problem_number":7,"title":"x","slug":"x","created_at":"2024-03-05T10:00:00Z"}`))
	require.NoError(t, err)
	assert.Equal(t, 5, p.Created().Day())
}

func TestSolutionsKeepOrder(t *testing.T) {
	var s Solutions
	require.NoError(t, json.Unmarshal([]byte(`{"java":{"user_solution":"a"},"cpp":{"user_solution":"b"},"java":{"user_solution":"c"}}`), &s))
	assert.Equal(t, []string{"java", "cpp"}, s.Languages())
	set, ok := s.Get("java")
	require.True(t, ok)
	assert.Equal(t, "c", set.UserSolution)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"java":{"user_solution":"c","leetcode_solution":""},"cpp":{"user_solution":"b","leetcode_solution":""}}`, string(out))
}

func TestSolutionTextPlaceholder(t *testing.T) {
	p := &Problem{}
	assert.Equal(t, DefaultLanguage, p.DefaultLanguage())
	assert.Equal(t, SolutionPlaceholder, p.SolutionText("python", VariantUser))

	p.Code = Solutions{{Language: "cpp", SolutionSet: SolutionSet{UserSolution: "x"}}}
	assert.Equal(t, "x", p.SolutionText("cpp", VariantUser))
	assert.Equal(t, SolutionPlaceholder, p.SolutionText("cpp", VariantReference))
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, SeveritySevere, DifficultyHard.Severity())
	assert.Equal(t, SeverityModerate, DifficultyMedium.Severity())
	assert.Equal(t, SeverityMild, DifficultyEasy.Severity())
	assert.Equal(t, SeverityMild, Difficulty("Impossible").Severity())
	assert.Equal(t, SeverityMild, Difficulty("").Severity())
}

func TestParseVariant(t *testing.T) {
	v, ok := ParseVariant("leetcode")
	assert.True(t, ok)
	assert.Equal(t, VariantReference, v)

	v, ok = ParseVariant("mine")
	assert.False(t, ok)
	assert.Equal(t, VariantUser, v)
}
