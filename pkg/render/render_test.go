package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/glamour"
	"github.com/matryer/is"
	"github.com/muesli/termenv"
)

func TestMarkdown(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "paragraphs",
			in:   "<p>one</p>\n\n<p>two</p>",
			want: "one\n\ntwo\n",
		},
		{
			name: "inline",
			in:   "<p><b>bold</b> and <i>italic</i> and <mark>marked</mark> and <code>x := 1</code></p>",
			want: "**bold** and *italic* and ==marked== and `x := 1`\n",
		},
		{
			name: "whitespace",
			in:   "<p>Lorem   ipsum\n\tdolor</p>",
			want: "Lorem ipsum dolor\n",
		},
		{
			name: "heading",
			in:   "<h2>Quid est?</h2><p>Sit amet.</p>",
			want: "## Quid est?\n\nSit amet.\n",
		},
		{
			name: "link",
			in:   `<p>See <a href="http://loripsum.net/">loripsum</a>.</p>`,
			want: "See [loripsum](http://loripsum.net/).\n",
		},
		{
			name: "unordered list",
			in:   "<ul>\n<li>a</li>\n<li>b</li>\n</ul>",
			want: "- a\n- b\n",
		},
		{
			name: "ordered list",
			in:   "<ol><li>a</li><li>b</li></ol>",
			want: "1. a\n2. b\n",
		},
		{
			name: "blockquote",
			in:   "<blockquote cite=\"http://loripsum.net\">Quae cum dixisset.</blockquote>",
			want: "> Quae cum dixisset.\n",
		},
		{
			name: "pre",
			in:   "<pre>a\n  b</pre>",
			want: "```\na\n  b\n```\n",
		},
		{
			name: "definition list",
			in:   "<dl><dt>Term</dt><dd>Meaning</dd></dl>",
			want: "**Term**\n: Meaning\n",
		},
		{
			name: "script dropped",
			in:   "<p>hi</p><script>alert(1)</script>",
			want: "hi\n",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			is := is.New(t)
			got, err := Markdown(c.in)
			is.NoErr(err)
			is.Equal(got, c.want)
		})
	}
}

func TestTerminal(t *testing.T) {
	is := is.New(t)
	out, err := Terminal("<h1>Title</h1><p>Lorem ipsum dolor sit amet.</p>", 40, glamour.ASCIIStyleConfig)
	is.NoErr(err)
	is.True(strings.Contains(out, "Title"))
	is.True(strings.Contains(out, "Lorem ipsum dolor sit amet."))
	is.True(!strings.Contains(out, "<p>"))
}

func TestHighlight(t *testing.T) {
	is := is.New(t)
	doc := "<p>hello <b>world</b></p>"

	out, err := Highlight(doc, termenv.Ascii, glamour.ASCIIStyleConfig)
	is.NoErr(err)
	is.Equal(out, doc)

	out, err = Highlight(doc, termenv.TrueColor, glamour.DarkStyleConfig)
	is.NoErr(err)
	is.True(out != doc)
	is.True(strings.Contains(out, "\x1b["))
	is.True(strings.Contains(out, "hello"))
}
