package leetcode

import (
	"strings"

	"golang.org/x/net/html"
)

// HTMLToText flattens problem statement markup into plain text. Block
// elements end a line, list items get a dash and runs of blank lines collapse.
func HTMLToText(input string) string {
	if input == "" {
		return ""
	}
	node, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return input
	}
	var builder strings.Builder
	extractText(node, &builder, false)
	return collapseBlankLines(builder.String())
}

func extractText(node *html.Node, builder *strings.Builder, pre bool) {
	switch node.Type {
	case html.TextNode:
		text := node.Data
		if !pre {
			text = strings.ReplaceAll(text, "\u00a0", " ")
		}
		builder.WriteString(text)
	case html.ElementNode:
		switch node.Data {
		case "br":
			builder.WriteRune('\n')
		case "p", "div", "pre", "ul", "ol":
			builder.WriteRune('\n')
		case "li":
			builder.WriteString("\n- ")
		case "sup":
			builder.WriteRune('^')
		}
		if node.Data == "pre" {
			pre = true
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		extractText(child, builder, pre)
	}

	if node.Type == html.ElementNode {
		switch node.Data {
		case "p", "div", "pre", "ul", "ol":
			builder.WriteRune('\n')
		}
	}
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) == "" {
			blank++
			if blank > 1 {
				continue
			}
			line = ""
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
