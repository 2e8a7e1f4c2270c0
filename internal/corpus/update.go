package corpus

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/go-while/go-probview/internal/models"
)

// Update is one key=value change of meta.json
type Update struct {
	Key   string
	Raw   string
	Value any // bool, []string or string, see ParseValue
}

// ParseValue converts a command line value: true/false become bools, values
// with a comma become a trimmed list and everything else stays a string.
func ParseValue(s string) any {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.TrimSpace(p))
		}
		return out
	}
	return s
}

// ParseUpdates parses key=value arguments in order.
func ParseUpdates(args []string) ([]Update, error) {
	out := make([]Update, 0, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument format '%s'. Must be 'key=value'", arg)
		}
		out = append(out, Update{Key: key, Raw: raw, Value: ParseValue(raw)})
	}
	return out, nil
}

// UpdateProgress applies updates to the meta.json of problem number and
// rebuilds its record. Unknown keys are skipped with a warning and returned.
func (c *Corpus) UpdateProgress(number int, updates []Update) (*Record, []string, error) {
	name, err := c.FindProblem(number)
	if err != nil {
		return nil, nil, err
	}
	meta, err := c.ReadMeta(name)
	if err != nil {
		return nil, nil, err
	}

	var skipped []string
	for _, u := range updates {
		known, err := applyUpdate(meta, u)
		if err != nil {
			return nil, nil, fmt.Errorf("update '%s': %w", u.Key, err)
		}
		if !known {
			log.Printf("[CORPUS]: warning: key '%s' not found in meta.json, skipping", u.Key)
			skipped = append(skipped, u.Key)
			continue
		}
		log.Printf("[CORPUS]: updated '%s' to '%s'", u.Key, u.Raw)
	}

	if err := c.WriteMeta(name, meta); err != nil {
		return nil, skipped, err
	}
	rec, err := c.Aggregate(name)
	if err != nil {
		return nil, skipped, err
	}
	log.Printf("[CORPUS]: updated problem #%d: %s", meta.Number, meta.Title)
	return rec, skipped, nil
}

// applyUpdate sets one meta field and reports whether the key exists
func applyUpdate(m *models.Meta, u Update) (bool, error) {
	switch u.Key {
	case "problem_number":
		n, err := strconv.Atoi(strings.TrimSpace(u.Raw))
		if err != nil || n <= 0 {
			return true, fmt.Errorf("expects a positive number, got '%s'", u.Raw)
		}
		m.Number = n
	case "title":
		m.Title = u.Raw
	case "slug":
		m.Slug = u.Raw
	case "template":
		m.Template = u.Raw
	case "created_at":
		if _, err := models.ParseCreatedAt(u.Raw); err != nil {
			return true, err
		}
		m.CreatedAt = u.Raw
	case "difficulty":
		m.Difficulty = models.Difficulty(u.Raw)
	case "solved":
		b, err := boolValue(u)
		if err != nil {
			return true, err
		}
		m.Solved = b
	case "notes_complete":
		b, err := boolValue(u)
		if err != nil {
			return true, err
		}
		m.NotesComplete = b
	case "tags":
		m.Tags = listValue(u)
	case "languages":
		m.Languages = listValue(u)
	case "links.leetcode":
		m.Links.LeetCode = u.Raw
	case "links.github":
		m.Links.GitHub = u.Raw
	case "links.discussion":
		m.Links.Discussion = u.Raw
	default:
		return false, nil
	}
	return true, nil
}

func boolValue(u Update) (bool, error) {
	b, ok := u.Value.(bool)
	if !ok {
		return false, fmt.Errorf("expects true or false, got '%s'", u.Raw)
	}
	return b, nil
}

func listValue(u Update) []string {
	switch v := u.Value.(type) {
	case []string:
		out := v[:0:0]
		for _, s := range v {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		s := strings.TrimSpace(u.Raw)
		if s == "" {
			return []string{}
		}
		return []string{s}
	}
}
