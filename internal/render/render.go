// Package render turns a problem record into the view model of a problem page.
package render

import (
	"net/url"
	"strings"

	"github.com/go-while/go-probview/internal/models"
	"golang.org/x/text/language"
)

// Fallback texts for absent record fields
const (
	FallbackStatement  = "Problem statement not available."
	FallbackApproach   = "No approach documented yet."
	FallbackComplexity = "N/A"
	FallbackDifficulty = "N/A"
	FallbackLanguages  = "N/A"
	FallbackNotes      = "Add your implementation notes, edge cases, and insights here."
)

// Selection is the transient viewer choice of language and solution variant
type Selection struct {
	Language string
	Variant  models.Variant
}

// ParseSelection reads the selection from query values. Missing values stay empty.
func ParseSelection(q url.Values) Selection {
	return Selection{
		Language: q.Get("lang"),
		Variant:  models.Variant(q.Get("variant")),
	}
}

// Link is a rendered anchor
type Link struct {
	Label string
	URL   string
}

// Button is a selection control pointing at the same page with another selection
type Button struct {
	Label  string
	URL    string
	Active bool
}

// View is the read-only model of a problem page
type View struct {
	Slug          string
	Number        string
	Title         string
	Severity      models.Severity
	Difficulty    string
	Tags          []string
	Solved        bool
	NotesComplete bool
	Status        string
	Created       string

	Statement       string
	Approach        string
	TimeComplexity  string
	SpaceComplexity string
	Notes           string
	Examples        []models.Example

	Selected         Selection
	LanguageButtons  []Button
	VariantButtons   []Button
	Solution         string
	LanguageList     string
	LeetCodeURL      string
	QuickLinks       []Link
	HasCodeLanguages bool
}

// Normalize resolves a selection against a record. Unknown languages and
// variants fall back to the first code language and the user variant.
func Normalize(p *models.Problem, sel Selection) Selection {
	out := Selection{Language: p.DefaultLanguage(), Variant: models.VariantUser}
	if sel.Language != "" {
		if _, ok := p.Code.Get(sel.Language); ok {
			out.Language = sel.Language
		}
	}
	if v, ok := models.ParseVariant(string(sel.Variant)); ok {
		out.Variant = v
	}
	return out
}

// Build creates the view of p for the routing slug. It does not modify p.
func Build(slug string, p *models.Problem, sel Selection, loc language.Tag) *View {
	sel = Normalize(p, sel)
	v := &View{
		Slug:            slug,
		Number:          p.PaddedNumber(),
		Title:           p.Title,
		Severity:        p.Difficulty.Severity(),
		Difficulty:      orDefault(string(p.Difficulty), FallbackDifficulty),
		Tags:            p.Tags,
		Solved:          p.Solved,
		NotesComplete:   p.NotesComplete,
		Status:          "In Progress",
		Created:         FormatLongDate(p.Created(), loc),
		Statement:       orDefault(p.Statement, FallbackStatement),
		Approach:        orDefault(p.Approach, FallbackApproach),
		TimeComplexity:  orDefault(p.TimeComplexity, FallbackComplexity),
		SpaceComplexity: orDefault(p.SpaceComplexity, FallbackComplexity),
		Notes:           orDefault(p.Notes, FallbackNotes),
		Examples:        p.Examples,
		Selected:        sel,
		Solution:        p.SolutionText(sel.Language, sel.Variant),
		LeetCodeURL:     p.Links.LeetCode,
	}
	if p.Solved {
		v.Status = "Solved"
	}

	langs := p.Code.Languages()
	v.HasCodeLanguages = len(langs) > 0
	upper := make([]string, 0, len(langs))
	for _, lang := range langs {
		upper = append(upper, strings.ToUpper(lang))
		v.LanguageButtons = append(v.LanguageButtons, Button{
			Label:  strings.ToUpper(lang),
			URL:    SelectionURL(slug, Selection{Language: lang, Variant: sel.Variant}),
			Active: lang == sel.Language,
		})
	}
	v.LanguageList = orDefault(strings.Join(upper, ", "), FallbackLanguages)

	for _, variant := range []struct {
		label string
		value models.Variant
	}{
		{"Your Solution", models.VariantUser},
		{"LeetCode Solution", models.VariantReference},
	} {
		v.VariantButtons = append(v.VariantButtons, Button{
			Label:  variant.label,
			URL:    SelectionURL(slug, Selection{Language: sel.Language, Variant: variant.value}),
			Active: variant.value == sel.Variant,
		})
	}

	v.QuickLinks = QuickLinks(p.Links)
	return v
}

// QuickLinks returns the non-empty external links in display order.
func QuickLinks(l models.Links) []Link {
	var out []Link
	for _, link := range []Link{
		{Label: "Edit on GitHub", URL: l.GitHub},
		{Label: "View on LeetCode", URL: l.LeetCode},
		{Label: "View Discussion", URL: l.Discussion},
	} {
		if strings.TrimSpace(link.URL) != "" {
			out = append(out, link)
		}
	}
	return out
}

// SelectionURL is the page address carrying sel in its query.
func SelectionURL(slug string, sel Selection) string {
	q := url.Values{}
	q.Set("lang", sel.Language)
	q.Set("variant", string(sel.Variant))
	return "/view/" + url.PathEscape(slug) + "?" + q.Encode()
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
