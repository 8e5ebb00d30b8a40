package extract

import (
	"context"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var (
	markdownParser = goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))
	htmlPolicy     = bluemonday.UGCPolicy()
	htmlConverter  = md.NewConverter("", true, nil)
)

func extractMarkdown(ctx context.Context, data []byte, mimeType, filename string) (string, error) {
	return markdownToText(data), nil
}

// extractHTML sanitizes the page, converts it to Markdown, then flattens the
// Markdown to text.
func extractHTML(ctx context.Context, data []byte, mimeType, filename string) (string, error) {
	sanitized := htmlPolicy.Sanitize(string(data))
	markdown, err := htmlConverter.ConvertString(sanitized)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML: %w", err)
	}
	return markdownToText([]byte(markdown)), nil
}

// markdownToText walks the Markdown AST and keeps the text, one block per
// line. Table cells are joined with " | ".
func markdownToText(src []byte) string {
	doc := markdownParser.Parser().Parse(text.NewReader(src))

	var sb strings.Builder
	newline := func() {
		if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteByte('\n')
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.Blockquote:
			newline()
			if !entering {
				sb.WriteByte('\n')
			}
		case *ast.ListItem, *ast.TextBlock:
			newline()
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if entering {
				newline()
				lines := node.Lines()
				for i := 0; i < lines.Len(); i++ {
					line := lines.At(i)
					sb.Write(line.Value(src))
				}
				newline()
			}
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if entering {
				sb.Write(node.Segment.Value(src))
				if node.SoftLineBreak() || node.HardLineBreak() {
					sb.WriteByte('\n')
				}
			}
		case *ast.String:
			if entering {
				sb.Write(node.Value)
			}
		case *ast.AutoLink:
			if entering {
				sb.Write(node.URL(src))
			}
		case *extast.TableRow, *extast.TableHeader:
			if entering {
				newline()
			} else {
				sb.WriteByte('\n')
			}
		case *extast.TableCell:
			if entering && n.PreviousSibling() != nil {
				sb.WriteString(" | ")
			}
		}
		return ast.WalkContinue, nil
	})

	return sb.String()
}
