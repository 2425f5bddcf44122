package filter

import (
	"fmt"
	"strings"
	"time"
)

// Stats captures what a filter pass did to the document.
type Stats struct {
	InputBytes  int `json:"input_bytes"`
	OutputBytes int `json:"output_bytes"`

	// ElementsRemoved counts removals by tag name.
	ElementsRemoved map[string]int `json:"elements_removed"`

	// Removal causes.
	ExcludedTagRemovals int `json:"excluded_tag_removals"`
	NoiseRemovals       int `json:"noise_removals"`
	ScoreRemovals       int `json:"score_removals"`
	EmptyRemovals       int `json:"empty_removals"`

	// Timing.
	ParseDuration time.Duration `json:"parse_duration_ms"`
	PruneDuration time.Duration `json:"prune_duration_ms"`
	TotalDuration time.Duration `json:"total_duration_ms"`
}

// NewStats creates a Stats with initialized maps.
func NewStats() *Stats {
	return &Stats{ElementsRemoved: make(map[string]int)}
}

// RecordRemoval records that an element with the given tag was removed.
func (s *Stats) RecordRemoval(tag string) {
	s.ElementsRemoved[strings.ToLower(tag)]++
}

// TotalElementsRemoved returns the sum across all tags.
func (s *Stats) TotalElementsRemoved() int {
	total := 0
	for _, n := range s.ElementsRemoved {
		total += n
	}
	return total
}

// ReductionPercent returns the size reduction achieved by the pass.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// String returns a human-readable summary.
func (s *Stats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Size: %d -> %d bytes (%.1f%% reduction)\n",
		s.InputBytes, s.OutputBytes, s.ReductionPercent())
	fmt.Fprintf(&sb, "Removals: excluded=%d noise=%d score=%d empty=%d\n",
		s.ExcludedTagRemovals, s.NoiseRemovals, s.ScoreRemovals, s.EmptyRemovals)
	if len(s.ElementsRemoved) > 0 {
		parts := make([]string, 0, len(s.ElementsRemoved))
		for tag, n := range s.ElementsRemoved {
			parts = append(parts, fmt.Sprintf("%s=%d", tag, n))
		}
		sb.WriteString("By tag: ")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Timing: parse=%v, prune=%v, total=%v\n",
		s.ParseDuration.Round(time.Millisecond),
		s.PruneDuration.Round(time.Millisecond),
		s.TotalDuration.Round(time.Millisecond))
	return sb.String()
}

// Result contains the output of a filter pass.
type Result struct {
	// Fragments are the surviving top-level elements in document order.
	Fragments []string `json:"fragments"`

	// HTML is the concatenation of Fragments.
	HTML string `json:"html"`

	// Stats describes what the pass removed.
	Stats *Stats `json:"stats"`

	// Err is set when the pass failed (parse errors). Fragments are empty
	// in that case; callers decide whether to fall back to the raw input.
	Err error `json:"-"`
}
