// Package export builds printable standalone documents from generated
// Markdown and renders them to PDF with headless Chrome.
package export

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/andrei/cv-tailor/internal/markdown"
	"github.com/andrei/cv-tailor/internal/types"
)

// DocKind selects which generated document to export.
type DocKind string

const (
	// DocResume is the tailored resume
	DocResume DocKind = "resume"
	// DocCoverLetter is the tailored cover letter
	DocCoverLetter DocKind = "coverLetter"
)

// ParseDocKind validates a document kind from a request path.
func ParseDocKind(s string) (DocKind, error) {
	switch DocKind(s) {
	case DocResume, DocCoverLetter:
		return DocKind(s), nil
	default:
		return "", fmt.Errorf("unknown document %q", s)
	}
}

// Title returns the document heading shown in the printable page.
func (d DocKind) Title() string {
	if d == DocCoverLetter {
		return "Сопроводительное письмо"
	}
	return "Резюме"
}

// Pick returns the Markdown source of this document from a generation.
func (d DocKind) Pick(output types.GenerationOutput) string {
	if d == DocCoverLetter {
		return output.CoverLetter
	}
	return output.Resume
}

var printableTemplate = template.Must(template.New("printable").Parse(`<!DOCTYPE html>
<html lang="ru">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  @page {
    size: A4;
    margin: 2cm;
  }
  body {
    font-family: Georgia, 'Times New Roman', serif;
    font-size: 12pt;
    line-height: 1.5;
    color: #1a1a1a;
    max-width: 17cm;
    margin: 0 auto;
  }
  h1, h2, h3 {
    font-family: 'Helvetica Neue', Arial, sans-serif;
    color: #111;
  }
  h1 { font-size: 20pt; margin-bottom: 0.3em; }
  h2 { font-size: 15pt; margin-top: 1.2em; border-bottom: 1px solid #ccc; padding-bottom: 0.15em; }
  h3 { font-size: 12.5pt; margin-top: 1em; }
  ul { padding-left: 1.3em; }
  li { margin-bottom: 0.25em; }
  p { margin: 0.5em 0; }
  @media print {
    body { max-width: none; margin: 0; }
  }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// PrintableHTML wraps a generated Markdown document in a standalone page
// with print styling. The Markdown is converted to HTML first.
func PrintableHTML(kind DocKind, markdownSource string) (string, error) {
	body := markdown.Render(markdownSource)

	var sb strings.Builder
	err := printableTemplate.Execute(&sb, struct {
		Title string
		Body  template.HTML
	}{
		Title: kind.Title(),
		Body:  template.HTML(body),
	})
	if err != nil {
		return "", fmt.Errorf("render printable page: %w", err)
	}
	return sb.String(), nil
}
