package corpus

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-while/go-probview/internal/models"
)

// Scaffold describes a new problem folder
type Scaffold struct {
	Number   int
	Title    string
	Template string

	// optional details, usually fetched from LeetCode
	Difficulty  models.Difficulty
	Tags        []string
	Statement   string
	LeetCodeURL string
}

// CreateProblem scaffolds README.md, one folder per configured language with
// both solution files, meta.json and the aggregated record. Files that already
// exist are never overwritten. Returns the folder name.
func (c *Corpus) CreateProblem(s Scaffold) (string, error) {
	if s.Number <= 0 {
		return "", fmt.Errorf("invalid problem number %d", s.Number)
	}
	if strings.TrimSpace(s.Title) == "" {
		return "", fmt.Errorf("problem title is required")
	}
	cfg, err := c.LoadLanguages()
	if err != nil {
		return "", fmt.Errorf("%w (add a language first)", err)
	}
	if s.Template == "" {
		s.Template = cfg.DefaultTemplate
	}
	if s.Difficulty == "" {
		s.Difficulty = models.DifficultyEasy
	}

	name := FolderName(s.Number, s.Title)
	if err := os.MkdirAll(c.ProblemPath(name), 0o755); err != nil {
		return "", err
	}
	log.Printf("[CORPUS]: creating problem folder %s", c.ProblemPath(name))

	if wrote, err := writeFileIfMissing(c.ProblemPath(name, ReadmeFile), readmeSkeleton(s)); err != nil {
		return "", fmt.Errorf("create %s: %w", ReadmeFile, err)
	} else if wrote {
		log.Printf("[CORPUS]: created %s", ReadmeFile)
	}

	for _, lang := range cfg.Languages {
		if _, err := c.scaffoldLanguage(name, lang); err != nil {
			return "", err
		}
	}

	if _, err := os.Stat(c.ProblemPath(name, MetaFile)); os.IsNotExist(err) {
		meta := &models.Meta{
			Number:     s.Number,
			Title:      strings.TrimSpace(s.Title),
			Slug:       NormalizeTitle(s.Title),
			Template:   s.Template,
			Languages:  cfg.Languages.Names(),
			CreatedAt:  c.Now().Format(models.CreatedAtLayout),
			Tags:       append([]string{}, s.Tags...),
			Difficulty: s.Difficulty,
			Links:      models.Links{LeetCode: s.LeetCodeURL},
		}
		if err := c.WriteMeta(name, meta); err != nil {
			return "", fmt.Errorf("create %s: %w", MetaFile, err)
		}
		log.Printf("[CORPUS]: created metadata file %s", c.ProblemPath(name, MetaFile))
	} else if err != nil {
		return "", err
	}

	if _, err := c.AggregateWith(name, cfg); err != nil {
		return name, fmt.Errorf("aggregate %s: %w", name, err)
	}
	log.Printf("[CORPUS]: problem setup complete for #%d - %s", s.Number, s.Title)
	return name, nil
}

func readmeSkeleton(s Scaffold) string {
	statement := strings.TrimSpace(s.Statement)
	if statement == "" {
		statement = placeholderStatement
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %d. %s\n\n", s.Number, strings.TrimSpace(s.Title))
	fmt.Fprintf(&b, "## Problem Description\n\n%s\n\n", statement)
	fmt.Fprintf(&b, "## Approach\n\n%s\n\n", placeholderApproach)
	fmt.Fprintf(&b, "## Complexity\n\n- **Time:** %s\n- **Space:** %s\n", placeholderComplexity, placeholderComplexity)
	return b.String()
}
