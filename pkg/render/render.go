// Package render turns the HTML documents shown by the panel into text a
// terminal can display.
package render

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/glamour"
	gansi "github.com/charmbracelet/glamour/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// maxWidth caps the word wrap width of rendered documents.
const maxWidth = 120

// Terminal renders an HTML document for a terminal of the given width using
// the given Glamour style.
func Terminal(doc string, width int, style gansi.StyleConfig) (string, error) {
	md, err := Markdown(doc)
	if err != nil {
		return "", err
	}

	if width <= 0 || width > maxWidth {
		width = maxWidth
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	out, err := tr.Render(md)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	return out, nil
}

// Highlight returns the HTML source of doc with syntax highlighting. Plain
// ASCII terminals get doc back untouched.
func Highlight(doc string, profile termenv.Profile, style gansi.StyleConfig) (string, error) {
	if profile == termenv.Ascii || doc == "" {
		return doc, nil
	}

	zero := uint(0)
	lang := ""
	lexer := lexers.Match("index.html")
	if lexer != nil && lexer.Config() != nil {
		lang = lexer.Config().Name
	}
	formatter := &gansi.CodeBlockElement{
		Code:     doc,
		Language: lang,
	}
	style.CodeBlock.Margin = &zero
	rctx := gansi.NewRenderContext(gansi.Options{
		Styles:       style,
		ColorProfile: profile,
	})

	var b strings.Builder
	if err := formatter.Render(&b, rctx); err != nil {
		return "", fmt.Errorf("highlight html: %w", err)
	}
	return b.String(), nil
}

// Markdown converts an HTML document, or fragment, into Markdown.
func Markdown(doc string) (string, error) {
	nodes, err := html.ParseFragment(strings.NewReader(doc), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	w := &writer{}
	for _, n := range nodes {
		w.block(n)
	}

	return w.String(), nil
}

type writer struct {
	b     strings.Builder
	lists []list
	quote int
}

type list struct {
	ordered bool
	n       int
}

func (w *writer) String() string {
	return strings.TrimSpace(w.b.String()) + "\n"
}

// paragraph ends the current block.
func (w *writer) paragraph() {
	s := w.b.String()
	if s == "" || strings.HasSuffix(s, "\n\n") {
		return
	}
	if strings.HasSuffix(s, "\n") {
		w.b.WriteString(w.prefix() + "\n")
		return
	}
	w.b.WriteString("\n" + w.prefix() + "\n")
}

func (w *writer) prefix() string {
	return strings.Repeat("> ", w.quote)
}

func (w *writer) atLineStart() bool {
	s := w.b.String()
	return s == "" || strings.HasSuffix(s, "\n")
}

func (w *writer) startLine() {
	s := w.b.String()
	if s != "" && !strings.HasSuffix(s, "\n") {
		w.b.WriteString("\n")
	}
	w.b.WriteString(w.prefix())
}

func (w *writer) children(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		fn(c)
	}
}

// block writes a block level node.
func (w *writer) block(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return
		}
		if w.atLineStart() {
			w.b.WriteString(w.prefix() + strings.TrimLeft(collapse(n.Data), " "))
			return
		}
		w.inline(n)
		return
	case html.ElementNode:
	default:
		w.children(n, w.block)
		return
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Head, atom.Title:
	case atom.P, atom.Div, atom.Section, atom.Article:
		w.paragraph()
		w.startLine()
		w.children(n, w.inline)
		w.paragraph()
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		w.paragraph()
		w.startLine()
		level := int(n.Data[1] - '0')
		w.b.WriteString(strings.Repeat("#", level) + " ")
		w.children(n, w.inline)
		w.paragraph()
	case atom.Blockquote:
		w.paragraph()
		w.quote++
		w.children(n, w.block)
		w.quote--
		w.paragraph()
	case atom.Pre:
		w.paragraph()
		w.b.WriteString("```\n" + strings.TrimRight(text(n), "\n") + "\n```")
		w.paragraph()
	case atom.Ul, atom.Ol:
		w.paragraph()
		w.lists = append(w.lists, list{ordered: n.DataAtom == atom.Ol})
		w.children(n, w.block)
		w.lists = w.lists[:len(w.lists)-1]
		w.paragraph()
	case atom.Li:
		w.item(n)
	case atom.Dl:
		w.paragraph()
		w.children(n, w.block)
		w.paragraph()
	case atom.Dt:
		w.startLine()
		w.b.WriteString("**")
		w.children(n, w.inline)
		w.b.WriteString("**")
	case atom.Dd:
		w.startLine()
		w.b.WriteString(": ")
		w.children(n, w.inline)
	case atom.Hr:
		w.paragraph()
		w.b.WriteString("---")
		w.paragraph()
	default:
		w.inline(n)
	}
}

func (w *writer) item(n *html.Node) {
	depth := len(w.lists)
	marker := "-"
	if depth > 0 {
		l := &w.lists[depth-1]
		l.n++
		if l.ordered {
			marker = fmt.Sprintf("%d.", l.n)
		}
	}
	w.startLine()
	if depth > 1 {
		w.b.WriteString(strings.Repeat("  ", depth-1))
	}
	w.b.WriteString(marker + " ")
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Ul || c.DataAtom == atom.Ol) {
			w.lists = append(w.lists, list{ordered: c.DataAtom == atom.Ol})
			w.children(c, w.block)
			w.lists = w.lists[:len(w.lists)-1]
			continue
		}
		w.inline(c)
	}
}

// inline writes a phrasing node.
func (w *writer) inline(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.b.WriteString(collapse(n.Data))
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.B, atom.Strong:
		w.wrap(n, "**")
	case atom.I, atom.Em, atom.Cite:
		w.wrap(n, "*")
	case atom.Mark:
		w.wrap(n, "==")
	case atom.Code:
		w.b.WriteString("`" + text(n) + "`")
	case atom.Br:
		w.b.WriteString("  \n" + w.prefix())
	case atom.A:
		href := attr(n, "href")
		if href == "" {
			w.children(n, w.inline)
			return
		}
		w.b.WriteString("[")
		w.children(n, w.inline)
		w.b.WriteString("](" + href + ")")
	case atom.Script, atom.Style:
	default:
		if isBlock(n) {
			w.block(n)
			return
		}
		w.children(n, w.inline)
	}
}

func (w *writer) wrap(n *html.Node, marker string) {
	w.b.WriteString(marker)
	w.children(n, w.inline)
	w.b.WriteString(marker)
}

func isBlock(n *html.Node) bool {
	switch n.DataAtom {
	case atom.P, atom.Div, atom.Section, atom.Article, atom.Blockquote,
		atom.Pre, atom.Ul, atom.Ol, atom.Li, atom.Dl, atom.Dt, atom.Dd,
		atom.Hr, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// text returns the text content of n.
func text(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(text(c))
	}
	return b.String()
}

// collapse collapses runs of whitespace into a single space.
func collapse(s string) string {
	if s == "" {
		return s
	}
	lead := isSpace(s[0])
	trail := isSpace(s[len(s)-1])
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return " "
	}
	if lead {
		s = " " + s
	}
	if trail {
		s += " "
	}
	return s
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}
