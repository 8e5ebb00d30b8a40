package indexer

import (
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

const (
	minChunkSize = 50
	maxChunkSize = 700 // runes; roughly 450 tokens for a 512-token embedding model
)

// GoldmarkChunker splits document text into heading-scoped chunks. Plain
// text parses as a single run of paragraphs.
type GoldmarkChunker struct {
	parser goldmark.Markdown
}

// NewGoldmarkChunker creates a new goldmark chunker.
func NewGoldmarkChunker() *GoldmarkChunker {
	return &GoldmarkChunker{
		parser: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Chunk returns the chunks of content. Every heading path starts with title.
func (c *GoldmarkChunker) Chunk(content, title string) []Chunk {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	src := []byte(content)
	doc := c.parser.Parser().Parse(text.NewReader(src))
	return c.applySizeConstraints(c.buildChunks(doc, src, title))
}

// buildChunks starts a new chunk at every heading and collects block text
// under it.
func (c *GoldmarkChunker) buildChunks(doc ast.Node, src []byte, title string) []Chunk {
	var chunks []Chunk
	var stack []headingInfo
	current := &Chunk{HeadingPath: title}

	flush := func() {
		if strings.TrimSpace(current.Text) != "" {
			current.Text = strings.TrimSpace(current.Text)
			chunks = append(chunks, *current)
		}
	}
	newline := func() {
		if current.Text != "" && !strings.HasSuffix(current.Text, "\n") {
			current.Text += "\n"
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			flush()
			for len(stack) > 0 && stack[len(stack)-1].level >= node.Level {
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, headingInfo{level: node.Level, text: nodeText(node, src)})
			current = &Chunk{HeadingPath: buildHeadingPath(title, stack)}
			return ast.WalkSkipChildren, nil

		case *ast.Text:
			current.Text += string(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				current.Text += "\n"
			}

		case *ast.String:
			current.Text += string(node.Value)

		case *ast.FencedCodeBlock, *ast.CodeBlock:
			newline()
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				current.Text += string(line.Value(src))
			}
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph, *ast.List, *ast.ListItem:
			newline()

		default:
			kind := n.Kind().String()
			if kind == "TableRow" || kind == "TableHeader" {
				newline()
				current.Text += tableRowText(n, src) + "\n"
				return ast.WalkSkipChildren, nil
			}
		}
		return ast.WalkContinue, nil
	})

	flush()
	return chunks
}

type headingInfo struct {
	level int
	text  string
}

// buildHeadingPath formats "Title > Heading > Subheading".
func buildHeadingPath(title string, stack []headingInfo) string {
	parts := make([]string, 0, len(stack)+1)
	if title != "" {
		parts = append(parts, title)
	}
	for _, h := range stack {
		parts = append(parts, h.text)
	}
	return strings.Join(parts, " > ")
}

func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(src))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// tableRowText joins the cells of a table row with " | ".
func tableRowText(row ast.Node, src []byte) string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		cells = append(cells, nodeText(cell, src))
	}
	return strings.Join(cells, " | ")
}

// applySizeConstraints merges chunks under minChunkSize into their
// successor and splits chunks over maxChunkSize. Sizes are in runes.
func (c *GoldmarkChunker) applySizeConstraints(chunks []Chunk) []Chunk {
	var result []Chunk
	for i := 0; i < len(chunks); i++ {
		current := chunks[i]
		for utf8.RuneCountInString(current.Text) < minChunkSize && i+1 < len(chunks) {
			merged := current.Text + "\n\n" + chunks[i+1].Text
			if utf8.RuneCountInString(merged) > maxChunkSize {
				break
			}
			current.Text = merged
			i++
		}
		result = append(result, splitChunk(current)...)
	}

	for i := range result {
		result[i].Index = i
	}
	return result
}

// splitChunk breaks an oversized chunk at the last paragraph, line or
// sentence boundary inside each window, or hard-splits when there is none.
func splitChunk(chunk Chunk) []Chunk {
	runes := []rune(chunk.Text)
	if len(runes) <= maxChunkSize {
		return []Chunk{chunk}
	}

	var splits []Chunk
	for start := 0; start < len(runes); {
		end := start + maxChunkSize
		if end >= len(runes) {
			splits = append(splits, Chunk{HeadingPath: chunk.HeadingPath, Text: strings.TrimSpace(string(runes[start:]))})
			break
		}

		window := runes[start:end]
		cut := len(window)
		if i := lastIndexRunes(window, "\n\n"); i > 0 {
			cut = i + 2
		} else if i := lastIndexRunes(window, "\n"); i > 0 {
			cut = i + 1
		} else if i := lastIndexRunes(window, ". "); i > 0 {
			cut = i + 2
		}

		if piece := strings.TrimSpace(string(window[:cut])); piece != "" {
			splits = append(splits, Chunk{HeadingPath: chunk.HeadingPath, Text: piece})
		}
		start += cut
	}
	return splits
}

// lastIndexRunes is strings.LastIndex measured in runes.
func lastIndexRunes(window []rune, sep string) int {
	s := string(window)
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return -1
	}
	return utf8.RuneCountInString(s[:i])
}
