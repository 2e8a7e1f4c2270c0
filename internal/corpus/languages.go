package corpus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// ErrLanguageExists is returned when adding a language that is already configured.
var ErrLanguageExists = errors.New("language already configured")

// Language is one configured solution language
type Language struct {
	Name        string `json:"-"`
	Ext         string `json:"ext"`
	Boilerplate string `json:"boilerplate"`
}

// LanguageSet keeps configured languages in file order. New problems list
// their languages in this order, so the first one is the default on the page.
type LanguageSet []Language

// LanguageConfig is the authoring configuration (tools/config.json)
type LanguageConfig struct {
	Languages       LanguageSet `json:"languages"`
	DefaultTemplate string      `json:"default_template"`
}

// Get returns the language called name
func (s LanguageSet) Get(name string) (Language, bool) {
	for _, l := range s {
		if l.Name == name {
			return l, true
		}
	}
	return Language{}, false
}

// Names returns the language names in order
func (s LanguageSet) Names() []string {
	out := make([]string, 0, len(s))
	for _, l := range s {
		out = append(out, l.Name)
	}
	return out
}

func (s LanguageSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, l := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(l.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(l)
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

func (s *LanguageSet) UnmarshalJSON(data []byte) error {
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
		return fmt.Errorf("languages: expected object, got %v", tok)
	}
	var out LanguageSet
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("languages: expected name, got %v", tok)
		}
		var l Language
		if err := dec.Decode(&l); err != nil {
			return fmt.Errorf("languages[%s]: %w", name, err)
		}
		l.Name = name
		out = append(out, l)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

// DefaultBoilerplate is the solution stub used when none is given.
func DefaultBoilerplate(name string) string {
	r := []rune(strings.ToLower(name))
	if len(r) > 0 {
		r[0] = unicode.ToUpper(r[0])
	}
	return fmt.Sprintf("// Write your %s solution here\n", string(r))
}

// LoadLanguages reads the language configuration. A missing file is an error wrapping fs.ErrNotExist.
func (c *Corpus) LoadLanguages() (*LanguageConfig, error) {
	data, err := os.ReadFile(c.LanguagesFile)
	if err != nil {
		return nil, fmt.Errorf("language config %s: %w", c.LanguagesFile, err)
	}
	cfg := &LanguageConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("language config %s: %w", c.LanguagesFile, err)
	}
	if cfg.DefaultTemplate == "" {
		cfg.DefaultTemplate = c.DefaultTemplate
	}
	return cfg, nil
}

// loadOrInitLanguages returns an empty configuration when none exists yet
func (c *Corpus) loadOrInitLanguages() (*LanguageConfig, error) {
	cfg, err := c.LoadLanguages()
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("[CORPUS]: language config %s not found, creating a new one", c.LanguagesFile)
		return &LanguageConfig{DefaultTemplate: c.DefaultTemplate}, nil
	}
	return cfg, err
}

// SaveLanguages writes the configuration with four space indentation
func (c *Corpus) SaveLanguages(cfg *LanguageConfig) error {
	if err := os.MkdirAll(filepath.Dir(c.LanguagesFile), 0o755); err != nil {
		return err
	}
	if cfg.Languages == nil {
		cfg.Languages = LanguageSet{}
	}
	return writeJSON(c.LanguagesFile, cfg, "    ")
}

// AddLanguage appends a language to the configuration. Name and extension are lowercased.
func (c *Corpus) AddLanguage(name, ext, boilerplate string) (Language, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	if name == "" || ext == "" {
		return Language{}, fmt.Errorf("language name and extension are required")
	}
	if strings.TrimSpace(boilerplate) == "" {
		boilerplate = DefaultBoilerplate(name)
	}
	cfg, err := c.loadOrInitLanguages()
	if err != nil {
		return Language{}, err
	}
	if _, ok := cfg.Languages.Get(name); ok {
		return Language{}, fmt.Errorf("%w: %s", ErrLanguageExists, name)
	}
	lang := Language{Name: name, Ext: ext, Boilerplate: boilerplate}
	cfg.Languages = append(cfg.Languages, lang)
	if err := c.SaveLanguages(cfg); err != nil {
		return Language{}, err
	}
	log.Printf("[CORPUS]: added language %s (.%s)", name, ext)
	return lang, nil
}

// ApplyLanguage scaffolds lang into every existing problem folder and lists it
// in their meta.json. Existing files are kept. Returns the number of folders touched.
func (c *Corpus) ApplyLanguage(lang Language) (int, error) {
	names, err := c.Scan()
	if err != nil {
		return 0, err
	}
	touched := 0
	for _, name := range names {
		changed, err := c.scaffoldLanguage(name, lang)
		if err != nil {
			return touched, err
		}
		meta, err := c.ReadMeta(name)
		if err == nil && !contains(meta.Languages, lang.Name) {
			meta.Languages = append(meta.Languages, lang.Name)
			if err := c.WriteMeta(name, meta); err != nil {
				return touched, err
			}
			changed = true
		} else if err != nil && !errors.Is(err, ErrNoMeta) {
			return touched, err
		}
		if changed {
			touched++
		}
	}
	return touched, nil
}

// scaffoldLanguage creates the solution files of lang in one problem folder
func (c *Corpus) scaffoldLanguage(name string, lang Language) (bool, error) {
	dir := c.ProblemPath(name, lang.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, err
	}
	created := false
	for _, kind := range solutionKinds {
		path := filepath.Join(dir, kind+"."+lang.Ext)
		wrote, err := writeFileIfMissing(path, lang.Boilerplate)
		if err != nil {
			return created, fmt.Errorf("create %s: %w", path, err)
		}
		if wrote {
			log.Printf("[CORPUS]: created %s", path)
			created = true
		}
	}
	return created, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
