package goldmark

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yasmin-chat/yasmin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ansiRenderer walks the goldmark AST and writes ANSI-styled lines.
// Flowing blocks (paragraphs, headings, list items) pick their alignment
// per block from the first strong directional character of their plain
// text, so an Arabic reply hugs the right edge while an embedded English
// paragraph stays left. Code is always left-to-right and never reflowed.
type ansiRenderer struct {
	width int

	bold      lipgloss.Style
	italic    lipgloss.Style
	accent    lipgloss.Style
	muted     lipgloss.Style
	code      lipgloss.Style
	underline lipgloss.Style
}

func newRenderer(theme yasmin.Theme, width int) *ansiRenderer {
	return &ansiRenderer{
		width:     width,
		bold:      lipgloss.NewStyle().Bold(true),
		italic:    lipgloss.NewStyle().Italic(true),
		accent:    lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		muted:     lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		code:      lipgloss.NewStyle().Background(ansiColor(theme.CodeBg)),
		underline: lipgloss.NewStyle().Underline(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *ansiRenderer) render(source []byte) string {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	r.renderChildren(doc, source, &buf)
	return strings.TrimRight(buf.String(), "\n")
}

func (r *ansiRenderer) renderChildren(node ast.Node, source []byte, buf *bytes.Buffer) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderBlock(c, source, buf)
	}
}

func (r *ansiRenderer) renderBlock(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Paragraph:
		buf.WriteString(r.flow(r.collectInline(n, source), plainText(n, source)))
		r.blockGap(n, buf)

	case *ast.Heading:
		styled := r.accent.Render(r.collectInline(n, source))
		buf.WriteString(r.flow(styled, plainText(n, source)))
		r.blockGap(n, buf)

	case *ast.FencedCodeBlock:
		if lang := string(n.Language(source)); lang != "" {
			buf.WriteString(r.muted.Render(lang))
			buf.WriteString("\n")
		}
		r.renderCodeLines(n.Lines(), source, buf)
		if n.NextSibling() != nil {
			buf.WriteString("\n")
		}

	case *ast.CodeBlock:
		r.renderCodeLines(n.Lines(), source, buf)
		if n.NextSibling() != nil {
			buf.WriteString("\n")
		}

	case *ast.List:
		r.renderList(n, source, buf, 0)
		if n.NextSibling() != nil {
			buf.WriteString("\n")
		}

	case *ast.ThematicBreak:
		buf.WriteString(r.muted.Render(strings.Repeat("─", r.width)))
		buf.WriteString("\n")
		if n.NextSibling() != nil {
			buf.WriteString("\n")
		}

	case *ast.HTMLBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}

	default:
		// Blockquotes and other unrecognized blocks: recurse into children.
		// Blockquotes are intentionally not styled, the service's replies
		// rarely contain them.
		r.renderChildren(node, source, buf)
	}
}

// flow word-wraps styled inline text to the full width. plain is the
// unstyled text the direction is read from; ANSI escapes contain Latin
// letters and would defeat first-strong detection.
func (r *ansiRenderer) flow(styled, plain string) string {
	st := lipgloss.NewStyle().Width(r.width)
	if yasmin.IsRTL(plain) {
		st = st.Align(lipgloss.Right)
	}
	return st.Render(styled)
}

// blockGap closes a flowing block: one newline, plus a blank separator
// line when another block follows.
func (r *ansiRenderer) blockGap(node ast.Node, buf *bytes.Buffer) {
	buf.WriteString("\n")
	if node.NextSibling() != nil {
		buf.WriteString("\n")
	}
}

// renderCodeLines writes code block content with a muted gutter and the
// theme's code background. Code is never reflowed or realigned.
func (r *ansiRenderer) renderCodeLines(lines *text.Segments, source []byte, buf *bytes.Buffer) {
	gutter := r.muted.Render("│") + " "
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		content := strings.TrimRight(string(seg.Value(source)), "\n")
		buf.WriteString(gutter + r.code.Render(content))
		buf.WriteString("\n")
	}
}

func (r *ansiRenderer) renderList(node *ast.List, source []byte, buf *bytes.Buffer, depth int) {
	ordered := node.IsOrdered()
	start := node.Start
	itemNum := 0

	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		indent := strings.Repeat("  ", depth)
		var marker string
		if ordered {
			itemNum++
			marker = fmt.Sprintf("%d. ", start+itemNum-1)
		} else {
			marker = "- "
		}

		var styled, plain strings.Builder
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch in := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				styled.WriteString(r.collectInline(in, source))
				plain.WriteString(plainText(in, source))
			case *ast.List:
				if styled.Len() > 0 {
					r.writeListItem(buf, indent, marker, styled.String(), plain.String())
					styled.Reset()
					plain.Reset()
				}
				r.renderList(in, source, buf, depth+1)
				marker = strings.Repeat(" ", len(marker))
			default:
				var inner bytes.Buffer
				r.renderBlock(ic, source, &inner)
				styled.WriteString(inner.String())
			}
		}

		if styled.Len() > 0 {
			r.writeListItem(buf, indent, marker, styled.String(), plain.String())
		}
	}
}

// writeListItem writes one item: the marker column, then the wrapped
// content with continuation lines indented past the marker. An RTL item
// keeps the marker column but pushes its text to the right edge, so an
// Arabic list reads down the right side the way the paragraphs around it
// do.
func (r *ansiRenderer) writeListItem(buf *bytes.Buffer, indent, marker, content, plain string) {
	prefix := indent + marker
	itemWidth := r.width - len(prefix)
	if itemWidth < 10 {
		itemWidth = 10
	}
	st := lipgloss.NewStyle().Width(itemWidth)
	if yasmin.IsRTL(plain) {
		st = st.Align(lipgloss.Right)
	}
	continuation := strings.Repeat(" ", len(prefix))
	for i, line := range strings.Split(st.Render(content), "\n") {
		if i == 0 {
			buf.WriteString(prefix + line + "\n")
		} else {
			buf.WriteString(continuation + line + "\n")
		}
	}
}

// plainText collects the raw text of a node's inline content, without
// styling. Used for direction detection.
func plainText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				walk(c)
			}
		}
	}
	walk(node)
	return buf.String()
}

// collectInline recursively collects styled inline text from a node's children.
func (r *ansiRenderer) collectInline(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderInline(c, source, &buf)
	}
	return buf.String()
}

func (r *ansiRenderer) renderInline(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		if n.SoftLineBreak() {
			buf.WriteByte(' ')
		}
		if n.HardLineBreak() {
			buf.WriteByte('\n')
		}

	case *ast.String:
		buf.Write(n.Value)

	case *ast.Emphasis:
		inner := r.collectInline(n, source)
		switch n.Level {
		case 1:
			buf.WriteString(r.italic.Render(inner))
		default:
			// Level 2 = bold. Goldmark represents ***bold italic*** as
			// nested Emphasis nodes, so level 3+ is not reachable.
			buf.WriteString(r.bold.Render(inner))
		}

	case *ast.CodeSpan:
		inner := r.collectInline(n, source)
		buf.WriteString(r.code.Render(r.bold.Render(inner)))

	case *ast.Link:
		inner := r.collectInline(n, source)
		url := string(n.Destination)
		buf.WriteString(r.underline.Render(inner))
		buf.WriteString(" ")
		buf.WriteString(r.muted.Render("(" + url + ")"))

	case *ast.AutoLink:
		url := string(n.URL(source))
		buf.WriteString(r.underline.Render(url))

	case *ast.Image:
		alt := r.collectInline(n, source)
		url := string(n.Destination)
		buf.WriteString(r.underline.Render(alt))
		buf.WriteString(" ")
		buf.WriteString(r.muted.Render("(" + url + ")"))

	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			buf.Write(seg.Value(source))
		}

	default:
		// Recurse for any unrecognized inline.
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.renderInline(c, source, buf)
		}
	}
}
