package pipeline

import (
	"time"

	"github.com/kamjin3086/html-content-processor/pkg/pagetype"
)

// Metadata summarizes one conversion.
type Metadata struct {
	WordCount      int           `json:"word_count"`
	LinkCount      int           `json:"link_count"`
	ImageCount     int           `json:"image_count"`
	HeadingCount   int           `json:"heading_count"`
	SourceLength   int           `json:"source_length"`
	ProcessingTime time.Duration `json:"processing_time_ms"`

	// PageType is set when auto-detection ran.
	PageType pagetype.Type `json:"page_type,omitempty"`
}

// Result is the output of one Generate call.
type Result struct {
	// RawMarkdown is the serialization of the unfiltered document.
	RawMarkdown string `json:"raw_markdown"`

	// FilteredHTML is the concatenation of fragments surviving the content
	// filter. Empty when filtering failed (see Warnings).
	FilteredHTML string `json:"filtered_html"`

	// FilteredMarkdown is the serialization of FilteredHTML.
	FilteredMarkdown string `json:"filtered_markdown"`

	// AnnotatedMarkdown carries numbered citation markers in place of
	// inline links. Empty unless citations were enabled.
	AnnotatedMarkdown string `json:"annotated_markdown,omitempty"`

	// ReferencesMarkdown is the "## References" block matching
	// AnnotatedMarkdown. Empty when the document has no links.
	ReferencesMarkdown string `json:"references_markdown,omitempty"`

	Metadata Metadata `json:"metadata"`

	// Warnings records non-fatal degradations (filter fallback, etc.).
	Warnings []string `json:"warnings,omitempty"`
}
