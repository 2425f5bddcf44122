// Package markdown renders parsed HTML into Markdown text and rewrites
// inline links into numbered citation references.
package markdown

// Options configures the serializer.
type Options struct {
	// BaseURL is used to resolve relative link and image URLs.
	BaseURL string `json:"base_url"`

	// BodyWidth is the wrap width; 0 disables wrapping. Reserved: output is
	// never wrapped, matching the layout-aware-wrapping non-goal.
	BodyWidth int `json:"body_width"`

	// IgnoreEmphasis renders strong/em content as plain text.
	IgnoreEmphasis bool `json:"ignore_emphasis"`

	// IgnoreLinks renders anchors as their text only.
	IgnoreLinks bool `json:"ignore_links"`

	// IgnoreImages drops images from the output.
	IgnoreImages bool `json:"ignore_images"`

	// ProtectLinks is reserved.
	ProtectLinks bool `json:"protect_links"`

	// SingleLineBreak separates paragraphs with one newline instead of a
	// blank line.
	SingleLineBreak bool `json:"single_line_break"`

	// MarkCode wraps code blocks in [code]...[/code] instead of fences.
	MarkCode bool `json:"mark_code"`

	// EscapeSnob is reserved.
	EscapeSnob bool `json:"escape_snob"`

	// SkipInternalLinks renders empty and fragment-only ("#...") links as
	// plain text.
	SkipInternalLinks bool `json:"skip_internal_links"`

	// IncludeSupSub renders sup/sub as ^text^ / ~text~ instead of plain text.
	IncludeSupSub bool `json:"include_sup_sub"`
}

// DefaultOptions returns the serializer defaults: links, images, and
// emphasis all rendered, fragment-only links skipped.
func DefaultOptions() *Options {
	return &Options{
		SkipInternalLinks: true,
	}
}
