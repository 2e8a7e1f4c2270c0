package render

import (
	"net/url"
	"testing"
	"time"

	"github.com/go-while/go-probview/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func sampleProblem(t *testing.T) *models.Problem {
	t.Helper()
	p, err := models.DecodeProblem([]byte(`{
		"problem_number": 1,
		"title": "Two Sum",
		"slug": "two-sum",
		"languages": ["python", "cpp"],
		"created_at": "2025-01-10T09:30:00",
		"solved": true,
		"tags": ["hash-table", "array"],
		"difficulty": "Medium",
		"links": {"leetcode": "https://leetcode.com/problems/two-sum/", "github": "", "discussion": ""},
		"code": {
			"python": {"user_solution": "py user", "leetcode_solution": "py ref"},
			"cpp": {"user_solution": "cpp user", "leetcode_solution": ""}
		}
	}`))
	require.NoError(t, err)
	return p
}

func TestBuildDefaults(t *testing.T) {
	v := Build("0001_two-sum", sampleProblem(t), Selection{}, language.AmericanEnglish)

	assert.Equal(t, "0001", v.Number)
	assert.Equal(t, "Two Sum", v.Title)
	assert.Equal(t, models.SeverityModerate, v.Severity)
	assert.Equal(t, []string{"hash-table", "array"}, v.Tags)
	assert.Equal(t, "Solved", v.Status)
	assert.Equal(t, "January 10, 2025", v.Created)
	assert.Equal(t, "python", v.Selected.Language)
	assert.Equal(t, models.VariantUser, v.Selected.Variant)
	assert.Equal(t, "py user", v.Solution)
	assert.Equal(t, "PYTHON, CPP", v.LanguageList)
	assert.Equal(t, FallbackStatement, v.Statement)
	assert.Equal(t, FallbackApproach, v.Approach)
	assert.Equal(t, FallbackComplexity, v.TimeComplexity)
	assert.Equal(t, FallbackNotes, v.Notes)
	require.Len(t, v.LanguageButtons, 2)
	assert.True(t, v.LanguageButtons[0].Active)
}

func TestBuildEmptyCode(t *testing.T) {
	p, err := models.DecodeProblem([]byte(`{"problem_number":3,"title":"Empty","slug":"empty","created_at":"2025-01-10T09:30:00","code":{}}`))
	require.NoError(t, err)

	v := Build("0003_empty", p, Selection{Language: "rust", Variant: "leetcode"}, language.AmericanEnglish)
	assert.Equal(t, models.SolutionPlaceholder, v.Solution)
	assert.Equal(t, models.DefaultLanguage, v.Selected.Language)
	assert.False(t, v.HasCodeLanguages)
	assert.Equal(t, "In Progress", v.Status)
	assert.Equal(t, FallbackDifficulty, v.Difficulty)
	assert.Equal(t, FallbackLanguages, v.LanguageList)
}

func TestBuildUnknownDifficultyIsMild(t *testing.T) {
	p := sampleProblem(t)
	p.Difficulty = "Legendary"
	assert.Equal(t, models.SeverityMild, Build("x", p, Selection{}, language.English).Severity)
}

func TestQuickLinksOnlyNonEmpty(t *testing.T) {
	v := Build("0001_two-sum", sampleProblem(t), Selection{}, language.English)
	require.Len(t, v.QuickLinks, 1)
	assert.Equal(t, "View on LeetCode", v.QuickLinks[0].Label)
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", v.LeetCodeURL)

	all := QuickLinks(models.Links{LeetCode: "l", GitHub: "g", Discussion: "d"})
	require.Len(t, all, 3)
	assert.Equal(t, []string{"g", "l", "d"}, []string{all[0].URL, all[1].URL, all[2].URL})
}

func TestLanguageSwitchRoundTrip(t *testing.T) {
	p := sampleProblem(t)
	a := Build("0001_two-sum", p, Selection{Language: "python"}, language.English)
	b := Build("0001_two-sum", p, Selection{Language: "cpp"}, language.English)
	again := Build("0001_two-sum", p, Selection{Language: "python"}, language.English)

	assert.NotEqual(t, a.Solution, b.Solution)
	assert.Equal(t, a.Solution, again.Solution)
	assert.Equal(t, a, again)

	b.Solution, b.Selected, b.LanguageButtons, b.VariantButtons = a.Solution, a.Selected, a.LanguageButtons, a.VariantButtons
	assert.Equal(t, a, b, "only selection state differs between languages")
}

func TestVariantFallback(t *testing.T) {
	p := sampleProblem(t)
	assert.Equal(t, "py ref", Build("s", p, Selection{Language: "python", Variant: models.VariantReference}, language.English).Solution)
	assert.Equal(t, models.SolutionPlaceholder, Build("s", p, Selection{Language: "cpp", Variant: models.VariantReference}, language.English).Solution)
	assert.Equal(t, "cpp user", Build("s", p, Selection{Language: "cpp", Variant: "bogus"}, language.English).Solution)
}

func TestParseSelection(t *testing.T) {
	q, err := url.ParseQuery("lang=cpp&variant=leetcode")
	require.NoError(t, err)
	assert.Equal(t, Selection{Language: "cpp", Variant: models.VariantReference}, ParseSelection(q))
	assert.Equal(t, "/view/0001_two-sum?lang=cpp&variant=leetcode", SelectionURL("0001_two-sum", ParseSelection(q)))
}

func TestLocale(t *testing.T) {
	day := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		header string
		want   string
	}{
		{"", "March 4, 2025"},
		{"en-GB,en;q=0.9", "March 4, 2025"},
		{"de-DE,de;q=0.9", "4. März 2025"},
		{"fr", "4 mars 2025"},
		{"es-MX", "4 de marzo de 2025"},
		{"ja", "March 4, 2025"},
		{"de-AT", "4. März 2025"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLongDate(day, NegotiateLocale(tt.header)))
		})
	}
	assert.Equal(t, "4 mars 2025", FormatLongDate(day, language.MustParse("fr-CA")))
	assert.Empty(t, FormatLongDate(time.Time{}, language.German))
}
