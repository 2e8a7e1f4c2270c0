// Package models defines core data structures for go-probview
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformed is returned for problem records that fail to parse or validate.
var ErrMalformed = errors.New("malformed problem data")

const (
	// CreatedAtLayout is the timestamp format written by the authoring tools.
	CreatedAtLayout = "2006-01-02T15:04:05"

	// DefaultLanguage is selected when a record carries no solutions at all.
	DefaultLanguage = "python"

	// SolutionPlaceholder replaces empty or missing solution text at render time.
	SolutionPlaceholder = "// Your code solution will appear here.\n// Edit the corresponding file and run the update script."
)

// Difficulty as published by the source platform
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Severity is the visual classification derived from a Difficulty
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Severity maps Hard and Medium to their own classes; everything else is mild.
func (d Difficulty) Severity() Severity {
	switch d {
	case DifficultyHard:
		return SeveritySevere
	case DifficultyMedium:
		return SeverityModerate
	default:
		return SeverityMild
	}
}

// Variant selects which solution of a language is displayed
type Variant string

const (
	VariantUser      Variant = "user"
	VariantReference Variant = "leetcode"
)

// ParseVariant returns the variant for s and false if s is not a known variant.
func ParseVariant(s string) (Variant, bool) {
	switch Variant(s) {
	case VariantUser, VariantReference:
		return Variant(s), true
	}
	return VariantUser, false
}

// Links are optional external references of a problem
type Links struct {
	LeetCode   string `json:"leetcode"`
	GitHub     string `json:"github"`
	Discussion string `json:"discussion"`
}

// Example is one worked input/output pair
type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

// SolutionSet holds both solution texts of one language
type SolutionSet struct {
	UserSolution     string `json:"user_solution"`
	LeetCodeSolution string `json:"leetcode_solution"`
}

// Text returns the code for the variant, unknown variants read the user solution.
func (s SolutionSet) Text(v Variant) string {
	if v == VariantReference {
		return s.LeetCodeSolution
	}
	return s.UserSolution
}

// LanguageSolution is one entry of the ordered code mapping
type LanguageSolution struct {
	Language string
	SolutionSet
}

// Solutions is the code mapping of a record. It is a JSON object on the wire;
// key order is kept because the first key is the default selection.
type Solutions []LanguageSolution

// Languages returns the keys in record order.
func (s Solutions) Languages() []string {
	out := make([]string, 0, len(s))
	for _, ls := range s {
		out = append(out, ls.Language)
	}
	return out
}

// Get returns the solution set of lang.
func (s Solutions) Get(lang string) (SolutionSet, bool) {
	for _, ls := range s {
		if ls.Language == lang {
			return ls.SolutionSet, true
		}
	}
	return SolutionSet{}, false
}

// MarshalJSON writes the mapping as an object in slice order.
func (s Solutions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ls := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalPlain(ls.Language)
		if err != nil {
			return nil, err
		}
		val, err := marshalPlain(ls.SolutionSet)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalPlain encodes v without escaping <, > and & since solution code is full of them
func marshalPlain(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON reads an object keeping its key order. A repeated key keeps
// its first position and takes the last value.
func (s *Solutions) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("code: expected object, got %v", tok)
	}

	var out Solutions
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		lang, ok := tok.(string)
		if !ok {
			return fmt.Errorf("code: expected language key, got %v", tok)
		}
		var set SolutionSet
		if err := dec.Decode(&set); err != nil {
			return fmt.Errorf("code[%s]: %w", lang, err)
		}
		if i, seen := index[lang]; seen {
			out[i].SolutionSet = set
			continue
		}
		index[lang] = len(out)
		out = append(out, LanguageSolution{Language: lang, SolutionSet: set})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

// Meta is the authored metadata of a problem (meta.json)
type Meta struct {
	Number        int        `json:"problem_number"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Template      string     `json:"template"`
	Languages     []string   `json:"languages"`
	CreatedAt     string     `json:"created_at"`
	Solved        bool       `json:"solved"`
	NotesComplete bool       `json:"notes_complete"`
	Tags          []string   `json:"tags"`
	Difficulty    Difficulty `json:"difficulty"`
	Links         Links      `json:"links"`
}

// Problem is the aggregated, read-only record a page is rendered from
type Problem struct {
	Meta
	Statement       string    `json:"statement"`
	Approach        string    `json:"approach"`
	TimeComplexity  string    `json:"timeComplexity"`
	SpaceComplexity string    `json:"spaceComplexity"`
	Notes           string    `json:"notes"`
	Examples        []Example `json:"examples"`
	Code            Solutions `json:"code"`

	created time.Time
}

// ParseCreatedAt accepts the authoring layout and RFC3339.
func ParseCreatedAt(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(CreatedAtLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// DecodeProblem parses and validates a record. Every failure wraps ErrMalformed.
func DecodeProblem(data []byte) (*Problem, error) {
	p := &Problem{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks required fields and the languages invariant.
func (p *Problem) Validate() error {
	if p.Number <= 0 {
		return fmt.Errorf("%w: missing problem_number", ErrMalformed)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrMalformed)
	}
	if strings.TrimSpace(p.Slug) == "" {
		return fmt.Errorf("%w: missing slug", ErrMalformed)
	}
	created, err := ParseCreatedAt(p.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: created_at %q: %v", ErrMalformed, p.CreatedAt, err)
	}
	p.created = created

	advertised := make(map[string]bool, len(p.Languages))
	for _, lang := range p.Languages {
		advertised[lang] = true
	}
	for _, ls := range p.Code {
		if !advertised[ls.Language] {
			return fmt.Errorf("%w: code language %q not listed in languages", ErrMalformed, ls.Language)
		}
	}
	return nil
}

// Created returns the parsed creation time, zero before Validate ran.
func (p *Problem) Created() time.Time {
	return p.created
}

// PaddedNumber renders the number as the four digit prefix used in folder names.
func (p *Problem) PaddedNumber() string {
	return fmt.Sprintf("%04d", p.Number)
}

// DefaultLanguage is the first language of the code mapping.
func (p *Problem) DefaultLanguage() string {
	if len(p.Code) > 0 {
		return p.Code[0].Language
	}
	return DefaultLanguage
}

// SolutionText returns the code for lang and variant or the placeholder when there is none.
func (p *Problem) SolutionText(lang string, v Variant) string {
	set, ok := p.Code.Get(lang)
	if !ok {
		return SolutionPlaceholder
	}
	if text := set.Text(v); text != "" {
		return text
	}
	return SolutionPlaceholder
}

// ProblemEntry is one row of the problem index
type ProblemEntry struct {
	Slug          string     `json:"slug" db:"slug"` // routing slug, the problem folder name
	Number        int        `json:"problem_number" db:"problem_number"`
	Title         string     `json:"title" db:"title"`
	Difficulty    Difficulty `json:"difficulty" db:"difficulty"`
	Solved        bool       `json:"solved" db:"solved"`
	NotesComplete bool       `json:"notes_complete" db:"notes_complete"`
	Tags          []string   `json:"tags" db:"tags"`
	Languages     []string   `json:"languages" db:"languages"`
	RecordPath    string     `json:"-" db:"record_path"`
	Checksum      string     `json:"checksum" db:"checksum"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	IndexedAt     time.Time  `json:"indexed_at" db:"indexed_at"`
}

// NewProblemEntry builds the index row of a validated record.
func NewProblemEntry(slug, recordPath, checksum string, p *Problem) *ProblemEntry {
	return &ProblemEntry{
		Slug:          slug,
		Number:        p.Number,
		Title:         p.Title,
		Difficulty:    p.Difficulty,
		Solved:        p.Solved,
		NotesComplete: p.NotesComplete,
		Tags:          append([]string(nil), p.Tags...),
		Languages:     p.Code.Languages(),
		RecordPath:    recordPath,
		Checksum:      checksum,
		CreatedAt:     p.Created(),
		IndexedAt:     time.Now().UTC(),
	}
}

// Severity of the indexed difficulty
func (e *ProblemEntry) Severity() Severity {
	return e.Difficulty.Severity()
}

// IndexRun records one pass of the corpus indexer
type IndexRun struct {
	ID         string    `json:"id" db:"id"`
	StartedAt  time.Time `json:"started_at" db:"started_at"`
	FinishedAt time.Time `json:"finished_at" db:"finished_at"`
	Indexed    int       `json:"indexed" db:"indexed"`
	Failed     int       `json:"failed" db:"failed"`
	Pruned     int       `json:"pruned" db:"pruned"`
}

// ProblemStats summarizes the index
type ProblemStats struct {
	Total        int            `json:"total"`
	Solved       int            `json:"solved"`
	NotesDone    int            `json:"notes_complete"`
	ByDifficulty map[string]int `json:"by_difficulty"`
}
