// Package mdtext flattens Markdown commentary into plain text lines.
//
// AI-generated commentary usually arrives as Markdown (headings, bold runs,
// bullet lists). The PDF body renderer only draws plain wrapped text, so the
// markup is removed while keeping the visible structure: source line breaks
// inside a paragraph stay line breaks, "- " / "1. " prefixes mark list items,
// and a blank line separates top-level blocks.
package mdtext

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var parser = goldmark.DefaultParser()

// Flatten returns the plain-text rendering of markdown src.
func Flatten(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	source := []byte(CleanFences(src))
	doc := parser.Parse(text.NewReader(source))

	f := &flattener{src: source}
	_ = ast.Walk(doc, f.visit)
	f.flush()
	return strings.TrimRight(strings.Join(f.lines, "\n"), "\n ")
}

// CleanFences strips an outer ```markdown (or ```md) fence that chat models
// like to wrap whole answers in. Untagged and other-language fences are
// content and are returned unchanged.
func CleanFences(input string) string {
	cleaned := strings.TrimSpace(input)
	if !strings.HasPrefix(cleaned, "```") || !strings.HasSuffix(cleaned, "```") {
		return input
	}
	nl := strings.IndexByte(cleaned, '\n')
	if nl < 0 {
		return input
	}
	switch strings.ToLower(strings.TrimSpace(cleaned[3:nl])) {
	case "markdown", "md":
	default:
		return input
	}
	cleaned = strings.TrimSuffix(cleaned[nl+1:], "```")
	return strings.TrimSpace(cleaned)
}

type listState struct {
	ordered bool
	next    int
}

type flattener struct {
	src    []byte
	lines  []string
	line   strings.Builder
	open   bool
	prefix string // pending list marker for the next line
	indent string // continuation indent inside a list item
	lists  []listState
}

func (f *flattener) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Document:
		return ast.WalkContinue, nil

	case *ast.List:
		if entering {
			f.lists = append(f.lists, listState{ordered: node.IsOrdered(), next: node.Start})
		} else {
			f.lists = f.lists[:len(f.lists)-1]
			f.blockEnd(n)
		}

	case *ast.ListItem:
		if entering {
			f.flush()
			depth := len(f.lists)
			pad := strings.Repeat("  ", max(depth-1, 0))
			marker := "- "
			if depth > 0 && f.lists[depth-1].ordered {
				marker = strconv.Itoa(f.lists[depth-1].next) + ". "
				f.lists[depth-1].next++
			}
			f.prefix = pad + marker
			f.indent = pad + strings.Repeat(" ", len(marker))
		} else {
			f.flush()
			f.prefix, f.indent = "", ""
		}

	case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
		if entering {
			f.flush()
		} else {
			f.flush()
			f.blockEnd(n)
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			f.flush()
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				f.write(strings.TrimRight(string(seg.Value(f.src)), "\r\n"))
				f.flush()
			}
			f.blockEnd(n)
		}
		return ast.WalkSkipChildren, nil

	case *ast.ThematicBreak:
		if entering {
			f.flush()
			f.blockEnd(n)
		}

	case *ast.HTMLBlock, *ast.RawHTML:
		return ast.WalkSkipChildren, nil

	case *ast.AutoLink:
		if entering {
			f.write(string(node.Label(f.src)))
		}
		return ast.WalkSkipChildren, nil

	case *ast.Text:
		if entering {
			f.write(string(node.Segment.Value(f.src)))
			if node.HardLineBreak() || node.SoftLineBreak() {
				f.flush()
			}
		}

	case *ast.String:
		if entering {
			f.write(string(node.Value))
		}
	}
	return ast.WalkContinue, nil
}

func (f *flattener) write(s string) {
	if !f.open {
		switch {
		case f.prefix != "":
			f.line.WriteString(f.prefix)
			f.prefix = ""
		case f.indent != "":
			f.line.WriteString(f.indent)
		}
		f.open = true
	}
	f.line.WriteString(s)
}

func (f *flattener) flush() {
	if !f.open {
		return
	}
	f.lines = append(f.lines, strings.TrimRight(f.line.String(), " "))
	f.line.Reset()
	f.open = false
}

// blockEnd separates top-level blocks with one blank line.
func (f *flattener) blockEnd(n ast.Node) {
	if n.Parent() == nil || n.Parent().Kind() != ast.KindDocument {
		return
	}
	if len(f.lines) > 0 && f.lines[len(f.lines)-1] != "" {
		f.lines = append(f.lines, "")
	}
}
