package corpus

import (
	"testing"

	"github.com/go-while/go-probview/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestParseReadme(t *testing.T) {
	text := "# 1. Two Sum\n\n" +
		"## Problem Description\n\nGiven an array of integers nums and an integer target,\nreturn indices of the two numbers.\n\n" +
		"## Examples\n\n" +
		"**Input:** nums = [2,7,11,15], target = 9\n**Output:** [0,1]\n**Explanation:** nums[0] + nums[1] == 9\n\n" +
		"- Input: nums = [3,3], target = 6\n- Output: [0,1]\n\n" +
		"## Approach\n\nOne pass with a hash map.\n\n" +
		"## Complexity\n\n- **Time:** O(n)\n- **Space:** `O(n)`\n\n" +
		"## Notes\n\nWatch out for duplicates.\n"

	s := ParseReadme(text)
	assert.Equal(t, "Given an array of integers nums and an integer target,\nreturn indices of the two numbers.", s.Statement)
	assert.Equal(t, "One pass with a hash map.", s.Approach)
	assert.Equal(t, "O(n)", s.TimeComplexity)
	assert.Equal(t, "O(n)", s.SpaceComplexity)
	assert.Equal(t, "Watch out for duplicates.", s.Notes)
	assert.Equal(t, []models.Example{
		{Input: "nums = [2,7,11,15], target = 9", Output: "[0,1]", Explanation: "nums[0] + nums[1] == 9"},
		{Input: "nums = [3,3], target = 6", Output: "[0,1]"},
	}, s.Examples)
}

func TestParseReadmePlaceholders(t *testing.T) {
	s := ParseReadme(readmeSkeleton(Scaffold{Number: 1, Title: "Two Sum"}))
	assert.Empty(t, s.Statement)
	assert.Empty(t, s.Approach)
	assert.Empty(t, s.TimeComplexity)
	assert.Empty(t, s.SpaceComplexity)
	assert.Empty(t, s.Examples)

	s = ParseReadme(readmeSkeleton(Scaffold{Number: 1, Title: "Two Sum", Statement: "Find the pair."}))
	assert.Equal(t, "Find the pair.", s.Statement)
}

func TestParseReadmeIgnoresHeadingsInCode(t *testing.T) {
	text := "## Problem Description\n\nReturn the sum.\n\n" +
		"```markdown\n## Approach\nnot a section\n```\n\n" +
		"> ## Notes\n> quoted\n\n" +
		"## Approach\n\nAdd them up.\n"

	s := ParseReadme(text)
	assert.Equal(t, "Return the sum.\n\n```markdown\n## Approach\nnot a section\n```\n\n> ## Notes\n> quoted", s.Statement)
	assert.Equal(t, "Add them up.", s.Approach)
	assert.Empty(t, s.Notes)
}

func TestParseReadmeLabelMarkup(t *testing.T) {
	text := "Approach\n--------\n\nTwo pointers.\n\n" +
		"## Examples\n\n" +
		"* **Input**: `s = \"abba\"`\n* __Output:__ `true`\n* *Explanation:* reads the same **both** ways\n\n" +
		"## Complexity\n\n1. ***Time:*** O(n)\n2. Space: O(1)\n"

	s := ParseReadme(text)
	assert.Equal(t, "Two pointers.", s.Approach)
	assert.Equal(t, []models.Example{
		{Input: `s = "abba"`, Output: "true", Explanation: "reads the same both ways"},
	}, s.Examples)
	assert.Equal(t, "O(n)", s.TimeComplexity)
	assert.Equal(t, "O(1)", s.SpaceComplexity)
}
