// Package filter prunes low-value subtrees from parsed HTML documents.
// It scores each block-level element by text density, tag importance,
// class/id signals, link density, and content length, then removes
// everything below a configurable threshold.
package filter

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Strategy selects how the removal threshold is applied.
type Strategy string

const (
	// StrategyFixed compares each composite score against the base
	// threshold as-is.
	StrategyFixed Strategy = "fixed"

	// StrategyDynamic relaxes the threshold for elements with important
	// tags or high text density before comparing.
	StrategyDynamic Strategy = "dynamic"
)

// Options configures a Filter instance. Options are immutable once a Filter
// is constructed; build a new Filter to change policy.
type Options struct {
	// Threshold is the base removal threshold. Elements scoring below it
	// are detached.
	Threshold float64 `json:"threshold" validate:"gte=0,lte=1"`

	// Strategy selects fixed or dynamic threshold application.
	Strategy Strategy `json:"strategy" validate:"oneof=fixed dynamic"`

	// MinWords is the minimum word count for the empty-node prune. Childless
	// non-essential elements below it are detached after their children
	// have been processed.
	MinWords int `json:"min_words" validate:"gte=0"`

	// KeepSelectors are CSS selectors always preserved during the noise
	// sweep, in addition to the built-in main-content recognition.
	KeepSelectors []string `json:"keep_selectors"`

	// RemoveSelectors are CSS selectors always removed before scoring,
	// in addition to the built-in excluded-tag set.
	RemoveSelectors []string `json:"remove_selectors"`
}

// DefaultOptions returns the fixed-threshold policy that works for most
// article-like pages.
func DefaultOptions() *Options {
	return &Options{
		Threshold: 0.3,
		Strategy:  StrategyFixed,
		MinWords:  3,
	}
}

// PresetLenient returns a permissive policy for sparse pages (documentation,
// reference material) where short blocks are still meaningful.
func PresetLenient() *Options {
	return &Options{
		Threshold: 0.15,
		Strategy:  StrategyFixed,
		MinWords:  1,
	}
}

// PresetStrict returns an aggressive policy for link-heavy pages. The
// dynamic strategy still relaxes the threshold for important containers.
func PresetStrict() *Options {
	return &Options{
		Threshold: 0.45,
		Strategy:  StrategyDynamic,
		MinWords:  5,
	}
}

// Merge layers other on top of o and returns the combined options.
// Non-zero values from other win; selector lists are appended, deduplicated.
// Neither receiver nor argument is modified.
func (o *Options) Merge(other *Options) *Options {
	merged := *o
	if other == nil {
		return &merged
	}
	if other.Threshold > 0 {
		merged.Threshold = other.Threshold
	}
	if other.Strategy != "" {
		merged.Strategy = other.Strategy
	}
	if other.MinWords > 0 {
		merged.MinWords = other.MinWords
	}
	merged.KeepSelectors = appendUnique(merged.KeepSelectors, other.KeepSelectors)
	merged.RemoveSelectors = appendUnique(merged.RemoveSelectors, other.RemoveSelectors)
	return &merged
}

func appendUnique(dst, src []string) []string {
	if len(src) == 0 {
		return dst
	}
	seen := make(map[string]bool, len(dst))
	out := make([]string, 0, len(dst)+len(src))
	for _, s := range dst {
		if !seen[s] {
			out = append(out, s)
			seen[s] = true
		}
	}
	for _, s := range src {
		if !seen[s] {
			out = append(out, s)
			seen[s] = true
		}
	}
	return out
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the options are within their allowed ranges.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid filter options: %w", err)
	}
	return nil
}
