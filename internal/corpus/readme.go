package corpus

import (
	"bytes"
	"strings"

	"github.com/go-while/go-probview/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// text the scaffolded README starts with, treated as absent when aggregating
const (
	placeholderStatement  = "(Add the problem statement here.)"
	placeholderApproach   = "(Describe your thought process.)"
	placeholderComplexity = "O(...)"
)

var readmeParser = goldmark.New().Parser()

// ReadmeSections are the documentation parts of a problem README
type ReadmeSections struct {
	Statement       string
	Approach        string
	TimeComplexity  string
	SpaceComplexity string
	Notes           string
	Examples        []models.Example
}

// readmeSection is one level two section: its markdown body as written and
// the plain text lines of its paragraphs and list items.
type readmeSection struct {
	body  string
	lines []string
}

// ParseReadme splits a README into its level two sections. Unknown sections
// are ignored and scaffold placeholders count as empty. Headings inside code
// blocks or quotes do not start a section.
func ParseReadme(readme string) ReadmeSections {
	sections := splitSections([]byte(readme))

	out := ReadmeSections{
		Statement: cleanSection(sections["statement"].body, placeholderStatement),
		Approach:  cleanSection(sections["approach"].body, placeholderApproach),
		Notes:     cleanSection(sections["notes"].body, ""),
		Examples:  parseExamples(sections["examples"].lines),
	}
	out.TimeComplexity, out.SpaceComplexity = parseComplexity(sections["complexity"].lines)
	return out
}

// splitSections walks the top level blocks of the document. Level one and two
// headings close the running section; deeper headings belong to it.
func splitSections(src []byte) map[string]*readmeSection {
	doc := readmeParser.Parse(text.NewReader(src))
	sections := make(map[string]*readmeSection)

	var cur *readmeSection
	bodyStart := 0
	closeSection := func(end int) {
		if cur != nil && end >= bodyStart {
			cur.body += string(src[bodyStart:end])
		}
		cur = nil
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level <= 2 {
			start, end, ok := headingBounds(h, src)
			if !ok {
				continue
			}
			closeSection(start)
			if h.Level == 2 {
				if key := sectionKey(inlineText(h, src)); key != "" {
					if sections[key] == nil {
						sections[key] = &readmeSection{}
					}
					cur = sections[key]
					bodyStart = end
				}
			}
			continue
		}
		if cur != nil {
			cur.lines = append(cur.lines, blockLines(n, src)...)
		}
	}
	closeSection(len(src))

	for _, key := range []string{"statement", "approach", "complexity", "notes", "examples"} {
		if sections[key] == nil {
			sections[key] = &readmeSection{}
		}
	}
	return sections
}

// headingBounds returns the offset of the first line of h and the offset just
// after its last line, including a setext underline.
func headingBounds(h *ast.Heading, src []byte) (int, int, bool) {
	segs := h.Lines()
	if segs.Len() == 0 {
		return 0, 0, false
	}
	start := bytes.LastIndexByte(src[:segs.At(0).Start], '\n') + 1
	last := segs.At(segs.Len() - 1)
	end := lineEnd(src, max(last.Start, last.Stop-1))
	if !bytes.HasPrefix(bytes.TrimLeft(src[start:], " "), []byte("#")) {
		end = lineEnd(src, end)
	}
	return start, end, true
}

// lineEnd returns the offset after the newline that ends the line at pos
func lineEnd(src []byte, pos int) int {
	if pos >= len(src) {
		return len(src)
	}
	if i := bytes.IndexByte(src[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(src)
}

// blockLines collects the plain text lines of every paragraph below n
func blockLines(n ast.Node, src []byte) []string {
	var lines []string
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node.Kind() {
		case ast.KindParagraph, ast.KindTextBlock:
			for _, line := range strings.Split(inlineText(node, src), "\n") {
				if line = strings.TrimSpace(line); line != "" {
					lines = append(lines, line)
				}
			}
			return ast.WalkSkipChildren, nil
		case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return lines
}

// inlineText renders the inline children of n without markup. Line breaks
// inside a paragraph are kept as newlines.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	var walk func(ast.Node)
	walk = func(parent ast.Node) {
		for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				b.Write(t.Segment.Value(src))
				if t.SoftLineBreak() || t.HardLineBreak() {
					b.WriteByte('\n')
				}
			case *ast.String:
				b.Write(t.Value)
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

func sectionKey(heading string) string {
	switch strings.ToLower(strings.TrimRight(strings.TrimSpace(heading), ":")) {
	case "problem description", "problem statement", "description", "problem":
		return "statement"
	case "approach", "solution approach":
		return "approach"
	case "complexity", "complexity analysis":
		return "complexity"
	case "notes", "implementation notes":
		return "notes"
	case "examples", "example":
		return "examples"
	}
	return ""
}

func cleanSection(body, placeholder string) string {
	body = strings.TrimSpace(strings.ReplaceAll(body, "\r\n", "\n"))
	if placeholder != "" && body == placeholder {
		return ""
	}
	return body
}

// cutLabel reports the value after label when line starts with "label:" in any case
func cutLabel(line, label string) (string, bool) {
	prefix := label + ":"
	if len(line) < len(prefix) || !strings.EqualFold(line[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(line[len(prefix):]), true
}

func parseComplexity(lines []string) (time, space string) {
	for _, line := range lines {
		if v, ok := cutLabel(line, "time"); ok && v != placeholderComplexity {
			time = v
		}
		if v, ok := cutLabel(line, "space"); ok && v != placeholderComplexity {
			space = v
		}
	}
	return time, space
}

func parseExamples(lines []string) []models.Example {
	var out []models.Example
	var cur *models.Example
	flush := func() {
		if cur != nil && (cur.Input != "" || cur.Output != "") {
			out = append(out, *cur)
		}
		cur = nil
	}
	for _, line := range lines {
		if v, ok := cutLabel(line, "input"); ok {
			flush()
			cur = &models.Example{Input: v}
			continue
		}
		if cur == nil {
			continue
		}
		if v, ok := cutLabel(line, "output"); ok {
			cur.Output = v
		} else if v, ok := cutLabel(line, "explanation"); ok {
			cur.Explanation = v
		}
	}
	flush()
	return out
}
