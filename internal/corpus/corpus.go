// Package corpus manages the on-disk problem folders and aggregates them into problem records.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-while/go-probview/internal/models"
)

var (
	// ErrProblemNotFound is returned when no folder matches a problem number.
	ErrProblemNotFound = errors.New("problem folder not found")

	// ErrNoMeta is returned for folders without meta.json.
	ErrNoMeta = errors.New("meta.json not found")
)

const (
	MetaFile   = "meta.json"
	ReadmeFile = "README.md"
	UIDir      = "ui"
	RecordName = "problem.json"
)

// solution file base names, in the order they are scaffolded
var solutionKinds = []string{"user_solution", "leetcode_solution"}

// Corpus is a problems directory plus the language configuration used to author it
type Corpus struct {
	Dir             string
	LanguagesFile   string
	DefaultTemplate string

	// Now stamps created_at on new problems
	Now func() time.Time
}

// New returns a Corpus rooted at dir.
func New(dir, languagesFile, defaultTemplate string) *Corpus {
	if defaultTemplate == "" {
		defaultTemplate = "problem-view"
	}
	return &Corpus{
		Dir:             dir,
		LanguagesFile:   languagesFile,
		DefaultTemplate: defaultTemplate,
		Now:             time.Now,
	}
}

// NormalizeTitle turns a title into the kebab slug used in folder names.
func NormalizeTitle(title string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "-"))
}

// FolderName is the routing slug of a problem: four digit number, underscore, kebab title.
func FolderName(number int, title string) string {
	return fmt.Sprintf("%04d_%s", number, NormalizeTitle(title))
}

// ProblemPath joins name below the problems directory
func (c *Corpus) ProblemPath(name string, elem ...string) string {
	return filepath.Join(append([]string{c.Dir, name}, elem...)...)
}

// RecordPath is where the aggregated record of a problem folder lives
func (c *Corpus) RecordPath(name string) string {
	return c.ProblemPath(name, UIDir, RecordName)
}

// Scan lists problem folders in name order. A missing problems directory is empty.
func (c *Corpus) Scan() ([]string, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan %s: %w", c.Dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// FindProblem returns the folder name starting with the padded number.
func (c *Corpus) FindProblem(number int) (string, error) {
	names, err := c.Scan()
	if err != nil {
		return "", err
	}
	prefix := fmt.Sprintf("%04d_", number)
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %d in %s", ErrProblemNotFound, number, c.Dir)
}

// ReadMeta loads meta.json of a problem folder
func (c *Corpus) ReadMeta(name string) (*models.Meta, error) {
	data, err := os.ReadFile(c.ProblemPath(name, MetaFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoMeta, name)
		}
		return nil, err
	}
	meta := &models.Meta{}
	if err := unmarshalJSON(data, meta); err != nil {
		return nil, fmt.Errorf("%s/%s: %w", name, MetaFile, err)
	}
	return meta, nil
}

// WriteMeta stores meta.json with four space indentation
func (c *Corpus) WriteMeta(name string, meta *models.Meta) error {
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	if meta.Languages == nil {
		meta.Languages = []string{}
	}
	return writeJSON(c.ProblemPath(name, MetaFile), meta, "    ")
}

// writeFileIfMissing creates path with content unless it exists and reports whether it wrote.
func writeFileIfMissing(path, content string) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return false, err
	}
	return true, f.Close()
}

// writeFileAtomic replaces path through a temp file in the same directory
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
