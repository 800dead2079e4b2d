// Package markdown renders the constrained Markdown dialect produced by the
// generation boundary into HTML fragments. Supported: # ## ### headings,
// unordered list items ("- " or "* "), **bold** and *italic* emphasis.
package markdown

import (
	"regexp"
	"strings"
)

var (
	boldRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.*?)\*`)
)

// Render converts Markdown text into an HTML fragment. It is a pure function:
// same input, same output, no side effects. Lines are processed one at a time
// with a single piece of state, whether an unordered list is currently open.
func Render(md string) string {
	if md == "" {
		return ""
	}

	var sb strings.Builder
	inList := false

	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimSpace(line)

		isListItem := strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ")

		if !isListItem && inList {
			sb.WriteString("</ul>")
			inList = false
		}
		if isListItem && !inList {
			sb.WriteString("<ul>")
			inList = true
		}

		switch {
		case strings.HasPrefix(line, "### "), line == "###":
			sb.WriteString("<h3>" + strings.TrimPrefix(line[3:], " ") + "</h3>")
		case strings.HasPrefix(line, "## "), line == "##":
			sb.WriteString("<h2>" + strings.TrimPrefix(line[2:], " ") + "</h2>")
		case strings.HasPrefix(line, "# "), line == "#":
			sb.WriteString("<h1>" + strings.TrimPrefix(line[1:], " ") + "</h1>")
		case isListItem:
			sb.WriteString("<li>" + emphasize(line[2:]) + "</li>")
		case line != "":
			sb.WriteString("<p>" + emphasize(line) + "</p>")
		}
	}

	if inList {
		sb.WriteString("</ul>")
	}

	return sb.String()
}

// emphasize applies inline emphasis substitution. Bold runs first so that
// double markers are consumed before the single-marker pass sees them.
func emphasize(s string) string {
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")
	return s
}
