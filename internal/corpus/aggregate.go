package corpus

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/go-while/go-probview/internal/models"
	"golang.org/x/crypto/blake2b"
)

// Record is the outcome of aggregating one problem folder
type Record struct {
	Slug     string // folder name, the routing slug
	Path     string
	Problem  *models.Problem
	Checksum string
	Changed  bool // ui/problem.json was (re)written
}

// Checksum is the hex blake2b-256 digest of data
func Checksum(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Aggregate builds the record of one problem folder and writes ui/problem.json
// when its content changed.
func (c *Corpus) Aggregate(name string) (*Record, error) {
	cfg, err := c.LoadLanguages()
	if err != nil {
		return nil, err
	}
	return c.AggregateWith(name, cfg)
}

// AggregateAll aggregates every folder. Failures are collected per folder and
// do not stop the pass.
func (c *Corpus) AggregateAll() ([]*Record, map[string]error, error) {
	cfg, err := c.LoadLanguages()
	if err != nil {
		return nil, nil, err
	}
	names, err := c.Scan()
	if err != nil {
		return nil, nil, err
	}
	var records []*Record
	failed := make(map[string]error)
	for _, name := range names {
		rec, err := c.AggregateWith(name, cfg)
		if err != nil {
			failed[name] = err
			continue
		}
		records = append(records, rec)
	}
	return records, failed, nil
}

// BuildProblem assembles the record of a folder without writing anything.
func (c *Corpus) BuildProblem(name string, cfg *LanguageConfig) (*models.Problem, error) {
	meta, err := c.ReadMeta(name)
	if err != nil {
		return nil, err
	}

	var sections ReadmeSections
	readme, err := os.ReadFile(c.ProblemPath(name, ReadmeFile))
	switch {
	case err == nil:
		sections = ParseReadme(models.DecodeSourceText(readme))
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	p := &models.Problem{
		Meta:            *meta,
		Statement:       sections.Statement,
		Approach:        sections.Approach,
		TimeComplexity:  sections.TimeComplexity,
		SpaceComplexity: sections.SpaceComplexity,
		Notes:           sections.Notes,
		Examples:        sections.Examples,
		Code:            models.Solutions{},
	}
	if p.Template == "" {
		p.Template = cfg.DefaultTemplate
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Languages == nil {
		p.Languages = []string{}
	}
	if p.Examples == nil {
		p.Examples = []models.Example{}
	}

	for _, langName := range meta.Languages {
		lang, ok := cfg.Languages.Get(langName)
		if !ok {
			log.Printf("[CORPUS]: %s: language %q not configured, skipping", name, langName)
			continue
		}
		if _, dup := p.Code.Get(langName); dup {
			continue
		}
		var set models.SolutionSet
		if set.UserSolution, err = readSolution(c.ProblemPath(name, lang.Name, "user_solution."+lang.Ext)); err != nil {
			return nil, err
		}
		if set.LeetCodeSolution, err = readSolution(c.ProblemPath(name, lang.Name, "leetcode_solution."+lang.Ext)); err != nil {
			return nil, err
		}
		p.Code = append(p.Code, models.LanguageSolution{Language: lang.Name, SolutionSet: set})
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return p, nil
}

// AggregateWith is Aggregate with an already loaded language configuration.
func (c *Corpus) AggregateWith(name string, cfg *LanguageConfig) (*Record, error) {
	p, err := c.BuildProblem(name, cfg)
	if err != nil {
		return nil, err
	}
	data, err := marshalJSON(p, "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: encode record: %w", name, err)
	}

	rec := &Record{
		Slug:     name,
		Path:     c.RecordPath(name),
		Problem:  p,
		Checksum: Checksum(data),
	}
	existing, err := os.ReadFile(rec.Path)
	if err == nil && Checksum(existing) == rec.Checksum {
		return rec, nil
	}
	if err := writeFileAtomic(rec.Path, data); err != nil {
		return nil, fmt.Errorf("%s: write record: %w", name, err)
	}
	rec.Changed = true
	log.Printf("[CORPUS]: rebuilt %s", filepath.Join(name, UIDir, RecordName))
	return rec, nil
}

// ReadRecord decodes an existing ui/problem.json of a folder.
func (c *Corpus) ReadRecord(name string) (*Record, error) {
	path := c.RecordPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := models.DecodeProblem(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Record{Slug: name, Path: path, Problem: p, Checksum: Checksum(data)}, nil
}

// readSolution returns the decoded file content, a missing file reads as empty
func readSolution(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return models.DecodeSourceText(data), nil
}
