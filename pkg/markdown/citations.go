package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kamjin3086/html-content-processor/pkg/urlutil"
)

// LinkReference is one entry in the numbered reference list. IDs are
// 1-based, assigned in first-appearance order, and unique per rewrite call;
// repeat links to the same resolved URL reuse the first id.
type LinkReference struct {
	ID          int    `json:"id"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// linkSpan matches inline Markdown links and images:
// [text](url) / [text](url "title") / ![alt](url "title").
var linkSpan = regexp.MustCompile(`(!?)\[([^\[\]]*)\]\(([^()\s]+)(?:\s+"([^"]*)")?\)`)

// RewriteCitations replaces inline links and images with numbered citation
// markers and returns the annotated markdown plus a references block.
//
// When the input contains no links, the markdown is returned unchanged with
// an empty references block. Failures never propagate: the raw markdown is
// preserved and the references block carries an error note instead.
func RewriteCitations(md, baseURL string) (annotated, references string) {
	defer func() {
		if r := recover(); r != nil {
			annotated = md
			references = fmt.Sprintf("## References\n\ncitation rewrite failed: %v", r)
		}
	}()

	var refs []*LinkReference
	byURL := make(map[string]*LinkReference)

	annotated = linkSpan.ReplaceAllStringFunc(md, func(span string) string {
		m := linkSpan.FindStringSubmatch(span)
		if m == nil {
			return span
		}
		isImage := m[1] == "!"
		text, rawURL, title := m[2], m[3], m[4]

		resolved := rawURL
		if !urlutil.IsAbsolute(rawURL) {
			resolved = urlutil.Resolve(baseURL, rawURL)
		}

		ref, ok := byURL[resolved]
		if !ok {
			ref = &LinkReference{
				ID:          len(refs) + 1,
				URL:         resolved,
				Description: describe(title, text),
			}
			refs = append(refs, ref)
			byURL[resolved] = ref
		}

		display := text
		if display == "" {
			display = resolved
		}
		if isImage {
			return fmt.Sprintf("![%s[%d]]", display, ref.ID)
		}
		return fmt.Sprintf("%s[%d]", display, ref.ID)
	})

	if len(refs) == 0 {
		return md, ""
	}
	return annotated, formatReferences(refs)
}

// describe builds a reference description from the title and the link text,
// joined with " - " when both are present and different.
func describe(title, text string) string {
	title = strings.TrimSpace(title)
	text = strings.TrimSpace(text)

	var parts []string
	if title != "" {
		parts = append(parts, title)
	}
	if text != "" && text != title {
		parts = append(parts, text)
	}
	return strings.Join(parts, " - ")
}

func formatReferences(refs []*LinkReference) string {
	var sb strings.Builder
	sb.WriteString("## References\n\n")
	for _, r := range refs {
		fmt.Fprintf(&sb, "[%d] %s", r.ID, r.URL)
		if r.Description != "" {
			sb.WriteString(": ")
			sb.WriteString(r.Description)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
