package aggregate

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdownFrontmatter = regexp.MustCompile(`(?s)^---\r?\n.*?\r?\n---\r?\n`)

var markdownParser = goldmark.New().Parser()

// NormalizeMarkdown keeps the text content of a Markdown or MDX document
// (prose, code spans and code blocks) and then applies Normalize. Raw HTML
// and YAML frontmatter are dropped.
func NormalizeMarkdown(raw string) string {
	src := []byte(markdownFrontmatter.ReplaceAllString(raw, ""))
	doc := markdownParser.Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.Write(seg.Value(src))
			}
		case *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return Normalize(b.String())
}
