package markdown

import (
	"strings"
	"testing"
)

func TestRewriteCitations(t *testing.T) {
	t.Run("single link", func(t *testing.T) {
		annotated, refs := RewriteCitations("see [docs](https://example.com/docs)", "")
		if !strings.Contains(annotated, "docs[1]") {
			t.Errorf("expected marker docs[1], got %q", annotated)
		}
		if strings.Contains(annotated, "](") {
			t.Errorf("inline link should be replaced, got %q", annotated)
		}
		if !strings.Contains(refs, "## References") {
			t.Errorf("expected references heading, got %q", refs)
		}
		if !strings.Contains(refs, "[1] https://example.com/docs") {
			t.Errorf("expected reference line, got %q", refs)
		}
	})

	t.Run("ids increase in first-appearance order", func(t *testing.T) {
		md := "[a](https://a.com) then [b](https://b.com) then [c](https://c.com)"
		annotated, refs := RewriteCitations(md, "")
		for _, want := range []string{"a[1]", "b[2]", "c[3]"} {
			if !strings.Contains(annotated, want) {
				t.Errorf("expected %q in %q", want, annotated)
			}
		}
		lines := strings.Split(refs, "\n")
		var entries []string
		for _, l := range lines {
			if strings.HasPrefix(l, "[") {
				entries = append(entries, l)
			}
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 reference entries, got %d: %q", len(entries), refs)
		}
		for i, prefix := range []string{"[1] https://a.com", "[2] https://b.com", "[3] https://c.com"} {
			if !strings.HasPrefix(entries[i], prefix) {
				t.Errorf("entry %d = %q, want prefix %q", i, entries[i], prefix)
			}
		}
	})

	t.Run("repeat URLs reuse the first id", func(t *testing.T) {
		md := "[first](https://same.com) and [second](https://same.com)"
		annotated, refs := RewriteCitations(md, "")
		if !strings.Contains(annotated, "first[1]") || !strings.Contains(annotated, "second[1]") {
			t.Errorf("both occurrences should use id 1, got %q", annotated)
		}
		if strings.Count(refs, "https://same.com") != 1 {
			t.Errorf("URL should appear once in references, got %q", refs)
		}
	})

	t.Run("relative URLs resolve against base", func(t *testing.T) {
		_, refs := RewriteCitations("[guide](/docs/guide)", "https://example.com/page")
		if !strings.Contains(refs, "[1] https://example.com/docs/guide") {
			t.Errorf("expected resolved URL in references, got %q", refs)
		}
	})

	t.Run("protocol-relative URLs pass through", func(t *testing.T) {
		_, refs := RewriteCitations("[cdn](//cdn.example.com/x)", "https://example.com")
		if !strings.Contains(refs, "[1] //cdn.example.com/x") {
			t.Errorf("expected unchanged protocol-relative URL, got %q", refs)
		}
	})

	t.Run("images annotated with bracket form", func(t *testing.T) {
		annotated, refs := RewriteCitations("![diagram](https://example.com/d.png)", "")
		if !strings.Contains(annotated, "![diagram[1]]") {
			t.Errorf("expected ![diagram[1]], got %q", annotated)
		}
		if !strings.Contains(refs, "[1] https://example.com/d.png") {
			t.Errorf("expected image reference, got %q", refs)
		}
	})

	t.Run("title builds the description", func(t *testing.T) {
		_, refs := RewriteCitations(`[Example](https://example.com "Example Site")`, "")
		if !strings.Contains(refs, "https://example.com: Example Site - Example") {
			t.Errorf("expected title and text joined, got %q", refs)
		}
	})

	t.Run("identical title and text not duplicated", func(t *testing.T) {
		_, refs := RewriteCitations(`[Example](https://example.com "Example")`, "")
		if !strings.Contains(refs, "https://example.com: Example") {
			t.Errorf("expected single description, got %q", refs)
		}
		if strings.Contains(refs, "Example - Example") {
			t.Errorf("description should not repeat, got %q", refs)
		}
	})

	t.Run("empty text displays resolved URL", func(t *testing.T) {
		annotated, _ := RewriteCitations("[](https://example.com)", "")
		if !strings.Contains(annotated, "https://example.com[1]") {
			t.Errorf("expected URL as display text, got %q", annotated)
		}
	})

	t.Run("no links returns input unchanged", func(t *testing.T) {
		md := "plain text without any links"
		annotated, refs := RewriteCitations(md, "https://example.com")
		if annotated != md {
			t.Errorf("expected unchanged markdown, got %q", annotated)
		}
		if refs != "" {
			t.Errorf("expected empty references, got %q", refs)
		}
	})

	t.Run("markers survive alongside other text", func(t *testing.T) {
		md := "Intro [one](https://a.com) middle ![img](https://b.com/i.png) end"
		annotated, _ := RewriteCitations(md, "")
		for _, want := range []string{"Intro ", "one[1]", "middle ", "![img[2]]", " end"} {
			if !strings.Contains(annotated, want) {
				t.Errorf("expected %q in %q", want, annotated)
			}
		}
	})
}
