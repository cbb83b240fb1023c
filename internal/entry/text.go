package entry

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// whitespaceRegex matches one or more whitespace characters
var whitespaceRegex = regexp.MustCompile(`\s+`)

// markdown is a shared goldmark instance used for plain-text extraction.
// Parsing is stateless, so a single instance is safe for concurrent use.
var markdown = goldmark.New()

// Normalize normalizes a tag-like string (mood, location):
// 1. Trim leading/trailing whitespace
// 2. Lowercase
// 3. Collapse internal whitespace to single spaces
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return s
}

// PlainText extracts the plain text of a markdown document by walking the
// goldmark AST and collecting text segments. Markup (headings markers,
// emphasis, links) is dropped; code block contents are kept.
func PlainText(md string) string {
	src := []byte(md)
	root := markdown.Parser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			// Separate block-level nodes so adjacent paragraphs don't merge words.
			if n.Type() == ast.TypeBlock && b.Len() > 0 {
				b.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}

		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.CodeBlock:
			writeLines(&b, src, t)
		case *ast.FencedCodeBlock:
			writeLines(&b, src, t)
		case *ast.AutoLink:
			b.Write(t.URL(src))
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(b.String(), " "))
}

// writeLines appends the raw source lines of a block node.
func writeLines(b *strings.Builder, src []byte, n ast.Node) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
}

// CountWords returns the number of whitespace-separated words.
func CountWords(plain string) int {
	return len(strings.Fields(plain))
}

// CountChars returns the character count as runes (not bytes).
// This correctly handles multi-byte UTF-8 characters.
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}

// Preview truncates plain text to at most maxRunes runes, appending an
// ellipsis when truncated. Never splits a rune.
func Preview(plain string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(plain)
	if len(runes) <= maxRunes {
		return plain
	}
	return string(runes[:maxRunes]) + "..."
}
