package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/kamjin3086/html-content-processor/pkg/urlutil"
)

var (
	wsRun     = regexp.MustCompile(`\s+`)
	langClass = regexp.MustCompile(`language-([\w#+.-]+)`)
)

// Serializer renders a DOM subtree into Markdown in a single recursive pass,
// dispatched by lowercase tag name.
type Serializer struct {
	opts *Options
}

// NewSerializer creates a Serializer. A nil opts uses DefaultOptions.
func NewSerializer(opts *Options) *Serializer {
	if opts == nil {
		opts = DefaultOptions()
	}
	copied := *opts
	return &Serializer{opts: &copied}
}

// SerializeHTML parses raw HTML and renders its body. Script, style, iframe,
// noscript, and svg elements plus comments are stripped from the working
// copy before traversal, whether or not the content filter already ran.
func (s *Serializer) SerializeHTML(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return fmt.Sprintf("[markdown: parse failed: %v]", err)
	}
	sanitize(doc)
	return s.Serialize(doc.Find("body").First())
}

// renderState carries flags down the recursion.
type renderState struct {
	// skipLists suppresses nested ul/ol while a flattened list iteration is
	// already emitting every descendant li.
	skipLists bool
}

// Serialize renders the given element(s) as Markdown. Rendering panics are
// downgraded to an inline diagnostic string instead of propagating; partial
// output is preferred over total failure.
func (s *Serializer) Serialize(sel *goquery.Selection) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("[markdown: render failed: %v]", r)
		}
	}()

	var sb strings.Builder
	sel.Each(func(_ int, n *goquery.Selection) {
		s.renderNode(&sb, n, renderState{})
	})
	return cleanOutput(sb.String())
}

func (s *Serializer) renderChildren(sb *strings.Builder, sel *goquery.Selection, st renderState) {
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		s.renderNode(sb, c, st)
	})
}

func (s *Serializer) renderNode(sb *strings.Builder, sel *goquery.Selection, st renderState) {
	if len(sel.Nodes) == 0 {
		return
	}
	switch sel.Nodes[0].Type {
	case html.TextNode:
		// Whitespace runs collapse to a single space; trimming happens only
		// at block boundaries.
		text := wsRun.ReplaceAllString(sel.Nodes[0].Data, " ")
		if text != "" {
			sb.WriteString(text)
		}
	case html.ElementNode:
		s.renderElement(sb, sel, goquery.NodeName(sel), st)
	}
}

func (s *Serializer) renderElement(sb *strings.Builder, sel *goquery.Selection, tag string, st renderState) {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		// Headings use flattened text, not recursive inline rendering.
		text := collapse(strings.TrimSpace(sel.Text()))
		if text == "" {
			return
		}
		level := int(tag[1] - '0')
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("#", level))
		sb.WriteString(" ")
		sb.WriteString(text)
		sb.WriteString("\n\n")

	case "p":
		inner := strings.TrimSpace(s.renderToString(sel, st))
		if inner == "" {
			return
		}
		sb.WriteString(inner)
		if s.opts.SingleLineBreak {
			sb.WriteString("\n")
		} else {
			sb.WriteString("\n\n")
		}

	case "br":
		sb.WriteString("\n")

	case "hr":
		sb.WriteString("\n---\n\n")

	case "ul":
		if st.skipLists {
			return
		}
		sel.Find("li").Each(func(_ int, li *goquery.Selection) {
			item := strings.TrimSpace(s.renderToString(li, renderState{skipLists: true}))
			sb.WriteString("* ")
			sb.WriteString(item)
			sb.WriteString("\n")
		})
		sb.WriteString("\n")

	case "ol":
		if st.skipLists {
			return
		}
		// One running counter across every descendant li, regardless of
		// nesting depth.
		counter := 0
		sel.Find("li").Each(func(_ int, li *goquery.Selection) {
			counter++
			item := strings.TrimSpace(s.renderToString(li, renderState{skipLists: true}))
			fmt.Fprintf(sb, "%d. %s\n", counter, item)
		})
		sb.WriteString("\n")

	case "li":
		// Reached only outside list dispatch (orphan li).
		sb.WriteString("* ")
		sb.WriteString(strings.TrimSpace(s.renderToString(sel, st)))
		sb.WriteString("\n")

	case "blockquote":
		inner := strings.TrimSpace(s.renderToString(sel, st))
		if inner == "" {
			return
		}
		sb.WriteString("\n")
		for _, line := range strings.Split(inner, "\n") {
			sb.WriteString("> ")
			sb.WriteString(strings.TrimSpace(line))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")

	case "pre":
		s.renderPre(sb, sel)

	case "code":
		if goquery.NodeName(sel.Parent()) == "pre" {
			// Handled by pre to avoid double fencing.
			s.renderChildren(sb, sel, st)
			return
		}
		sb.WriteString("`")
		sb.WriteString(collapse(sel.Text()))
		sb.WriteString("`")

	case "a":
		s.renderLink(sb, sel, st)

	case "img":
		s.renderImage(sb, sel)

	case "strong", "b":
		s.renderEmphasis(sb, sel, st, "**")

	case "em", "i":
		s.renderEmphasis(sb, sel, st, "_")

	case "table":
		s.renderTable(sb, sel)

	case "sup":
		s.renderSupSub(sb, sel, "^")

	case "sub":
		s.renderSupSub(sb, sel, "~")

	case "script", "style", "iframe", "noscript", "svg":
		// Stripped by the pre-pass; guard direct Serialize calls too.

	default:
		// div, span, article, section and anything unrecognized: children
		// concatenated, no wrapping added.
		s.renderChildren(sb, sel, st)
	}
}

func (s *Serializer) renderPre(sb *strings.Builder, sel *goquery.Selection) {
	var text, lang string
	code := sel.Find("code").First()
	if code.Length() > 0 {
		text = code.Text()
		if m := langClass.FindStringSubmatch(code.AttrOr("class", "")); m != nil {
			lang = m[1]
		}
	} else {
		text = sel.Text()
	}
	text = strings.Trim(text, "\n")

	if s.opts.MarkCode {
		sb.WriteString("\n[code]\n")
		sb.WriteString(text)
		sb.WriteString("\n[/code]\n\n")
		return
	}
	sb.WriteString("\n```")
	sb.WriteString(lang)
	sb.WriteString("\n")
	sb.WriteString(text)
	sb.WriteString("\n```\n\n")
}

func (s *Serializer) renderLink(sb *strings.Builder, sel *goquery.Selection, st renderState) {
	text := strings.TrimSpace(collapse(s.renderToString(sel, st)))
	href := sel.AttrOr("href", "")

	if s.opts.IgnoreLinks || href == "" {
		sb.WriteString(text)
		return
	}
	if s.opts.SkipInternalLinks && strings.HasPrefix(href, "#") {
		sb.WriteString(text)
		return
	}

	resolved := urlutil.Resolve(s.opts.BaseURL, href)
	if text == "" {
		sb.WriteString("<")
		sb.WriteString(resolved)
		sb.WriteString(">")
		return
	}
	if title := sel.AttrOr("title", ""); title != "" {
		fmt.Fprintf(sb, "[%s](%s %q)", text, resolved, title)
		return
	}
	fmt.Fprintf(sb, "[%s](%s)", text, resolved)
}

func (s *Serializer) renderImage(sb *strings.Builder, sel *goquery.Selection) {
	if s.opts.IgnoreImages {
		return
	}
	src := sel.AttrOr("src", "")
	if src == "" {
		return
	}
	resolved := urlutil.Resolve(s.opts.BaseURL, src)
	alt := strings.TrimSpace(sel.AttrOr("alt", ""))
	if title := sel.AttrOr("title", ""); title != "" {
		fmt.Fprintf(sb, "![%s](%s %q)", alt, resolved, title)
		return
	}
	fmt.Fprintf(sb, "![%s](%s)", alt, resolved)
}

func (s *Serializer) renderEmphasis(sb *strings.Builder, sel *goquery.Selection, st renderState, mark string) {
	inner := s.renderToString(sel, st)
	if s.opts.IgnoreEmphasis {
		sb.WriteString(inner)
		return
	}
	trimmed := strings.TrimSpace(inner)
	if trimmed == "" {
		sb.WriteString(inner)
		return
	}
	sb.WriteString(mark)
	sb.WriteString(trimmed)
	sb.WriteString(mark)
}

func (s *Serializer) renderSupSub(sb *strings.Builder, sel *goquery.Selection, mark string) {
	text := collapse(strings.TrimSpace(sel.Text()))
	if !s.opts.IncludeSupSub {
		sb.WriteString(text)
		return
	}
	sb.WriteString(mark)
	sb.WriteString(text)
	sb.WriteString(mark)
}

// renderTable emits the first row as a header followed by a separator row
// matching its column count; every cell is pipe-escaped.
func (s *Serializer) renderTable(sb *strings.Builder, sel *goquery.Selection) {
	rows := sel.Find("tr")
	if rows.Length() == 0 {
		return
	}
	sb.WriteString("\n")
	rows.Each(func(i int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th,td").Each(func(_ int, c *goquery.Selection) {
			cell := collapse(strings.TrimSpace(c.Text()))
			cells = append(cells, strings.ReplaceAll(cell, "|", `\|`))
		})
		if len(cells) == 0 {
			return
		}
		sb.WriteString("| ")
		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString(" |\n")
		if i == 0 {
			sb.WriteString("|")
			sb.WriteString(strings.Repeat("---|", len(cells)))
			sb.WriteString("\n")
		}
	})
	sb.WriteString("\n")
}

func (s *Serializer) renderToString(sel *goquery.Selection, st renderState) string {
	var sb strings.Builder
	s.renderChildren(&sb, sel, st)
	return sb.String()
}

// sanitize strips non-content elements and comments from the working copy.
func sanitize(doc *goquery.Document) {
	doc.Find("script,style,iframe,noscript,svg").Remove()
	for _, n := range doc.Nodes {
		stripComments(n)
	}
}

func stripComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			stripComments(c)
		}
		c = next
	}
}

func collapse(s string) string {
	return wsRun.ReplaceAllString(s, " ")
}

// cleanOutput trims trailing whitespace per line, limits blank-line runs to
// one, and trims the result.
func cleanOutput(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" {
			blanks++
			if blanks <= 1 {
				out = append(out, "")
			}
			continue
		}
		blanks = 0
		out = append(out, trimmed)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
