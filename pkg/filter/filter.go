package filter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrFilter identifies failures raised by a filter pass. Parse errors are
// wrapped with it; callers decide whether to fall back to the raw input.
var ErrFilter = errors.New("content filter failed")

// Composite score weights. They sum to 1.0, so the weighted sum is already
// normalized.
const (
	wDensity     = 0.35
	wTagWeight   = 0.25
	wClassID     = 0.15
	wLinkDensity = 0.15
	wLength      = 0.10
)

// Filter prunes low-value subtrees from HTML documents. A Filter is
// immutable after construction; its options cannot be changed.
//
// Filtering mutates the parsed document destructively, but each call parses
// its own document, so a Filter is safe to reuse across inputs.
type Filter struct {
	opts *Options
}

// New creates a Filter with the given options. A nil opts uses
// DefaultOptions.
func New(opts *Options) *Filter {
	if opts == nil {
		opts = DefaultOptions()
	}
	copied := *opts
	return &Filter{opts: &copied}
}

// Options returns a copy of the filter's policy.
func (f *Filter) Options() Options {
	return *f.opts
}

// Filter returns the surviving top-level fragments of the document in
// document order.
func (f *Filter) Filter(rawHTML string) ([]string, error) {
	res := f.FilterWithStats(rawHTML)
	if res.Err != nil {
		return nil, res.Err
	}
	return res.Fragments, nil
}

// FilterString returns the concatenation of the surviving fragments.
func (f *Filter) FilterString(rawHTML string) (string, error) {
	res := f.FilterWithStats(rawHTML)
	if res.Err != nil {
		return "", res.Err
	}
	return res.HTML, nil
}

// FilterWithStats runs a full pass and returns fragments plus metrics.
func (f *Filter) FilterWithStats(rawHTML string) *Result {
	start := time.Now()
	res := &Result{Stats: NewStats()}
	res.Stats.InputBytes = len(rawHTML)

	if strings.TrimSpace(rawHTML) == "" {
		res.Fragments = []string{}
		res.Stats.TotalDuration = time.Since(start)
		return res
	}

	parseStart := time.Now()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	res.Stats.ParseDuration = time.Since(parseStart)
	if err != nil {
		res.Err = fmt.Errorf("%w: parse: %v", ErrFilter, err)
		res.Stats.TotalDuration = time.Since(start)
		return res
	}

	pruneStart := time.Now()
	for _, n := range doc.Nodes {
		stripComments(n)
	}
	f.removeExcluded(doc, res.Stats)
	f.removeNoise(doc, res.Stats)
	f.removeBySelectors(doc, res.Stats)

	body := doc.Find("body").First()
	body.Children().Each(func(_ int, c *goquery.Selection) {
		f.prune(c, res.Stats)
	})
	res.Stats.PruneDuration = time.Since(pruneStart)

	res.Fragments = collectFragments(body)
	res.HTML = strings.Join(res.Fragments, "")
	res.Stats.OutputBytes = len(res.HTML)
	res.Stats.TotalDuration = time.Since(start)
	return res
}

// stripComments removes comment nodes from the whole tree.
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

// removeExcluded removes the static excluded-tag set, sparing recognized
// main-content containers.
func (f *Filter) removeExcluded(doc *goquery.Document, st *Stats) {
	for _, tag := range excludedTags {
		doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
			if f.isProtected(s) {
				return
			}
			st.ExcludedTagRemovals++
			st.RecordRemoval(tag)
			s.Remove()
		})
	}
}

// removeNoise removes elements whose class/id match the noise pattern,
// sparing recognized main-content containers.
func (f *Filter) removeNoise(doc *goquery.Document, st *Stats) {
	doc.Find("[class],[id]").Each(func(_ int, s *goquery.Selection) {
		if !noisePattern.MatchString(classID(s)) {
			return
		}
		if f.isProtected(s) {
			return
		}
		st.NoiseRemovals++
		st.RecordRemoval(goquery.NodeName(s))
		s.Remove()
	})
}

// removeBySelectors removes caller-supplied selectors. Only explicit keep
// selectors override these.
func (f *Filter) removeBySelectors(doc *goquery.Document, st *Stats) {
	for _, sel := range f.opts.RemoveSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if f.matchesKeep(s) {
				return
			}
			st.RecordRemoval(goquery.NodeName(s))
			s.Remove()
		})
	}
}

// isProtected reports whether the element is a main-content container or
// matches a caller keep selector.
func (f *Filter) isProtected(s *goquery.Selection) bool {
	if mainContentTags[goquery.NodeName(s)] {
		return true
	}
	if contentPattern.MatchString(classID(s)) {
		return true
	}
	return f.matchesKeep(s)
}

func (f *Filter) matchesKeep(s *goquery.Selection) bool {
	for _, sel := range f.opts.KeepSelectors {
		if s.Is(sel) {
			return true
		}
	}
	return false
}

func classID(s *goquery.Selection) string {
	class, _ := s.Attr("class")
	id, _ := s.Attr("id")
	return class + " " + id
}

// prune recursively applies the scoring decision to an element. If the
// element is removed, its subtree is not descended into; otherwise each
// child is pruned independently, and an element left empty by child removal
// is detached afterwards.
func (f *Filter) prune(s *goquery.Selection, st *Stats) {
	tag := goquery.NodeName(s)

	if candidateTags[tag] {
		m := f.measure(s)
		if m.score() < f.threshold(m) {
			st.ScoreRemovals++
			st.RecordRemoval(tag)
			s.Remove()
			return
		}
	}

	s.Children().Each(func(_ int, c *goquery.Selection) {
		f.prune(c, st)
	})

	if f.prunableEmpty(s, tag) {
		st.EmptyRemovals++
		st.RecordRemoval(tag)
		s.Remove()
	}
}

// prunableEmpty reports whether a node that has finished child processing
// should be detached: no element children, not essential, and effectively
// empty (no text, or fewer words than the policy minimum).
func (f *Filter) prunableEmpty(s *goquery.Selection, tag string) bool {
	if essentialTags[tag] {
		return false
	}
	if s.Children().Length() > 0 {
		return false
	}
	text := strings.TrimSpace(s.Text())
	if text == "" {
		return true
	}
	return len(strings.Fields(text)) < f.opts.MinWords
}

// threshold returns the effective removal threshold for an element. The
// dynamic strategy relaxes it for important tags and dense text.
func (f *Filter) threshold(m metrics) float64 {
	t := f.opts.Threshold
	if f.opts.Strategy == StrategyDynamic {
		if m.tagWeight > 1 {
			t *= 0.8
		}
		if m.density() > 0.4 {
			t *= 0.9
		}
	}
	return t
}

// collectFragments gathers body's surviving direct children that still carry
// text, in document order.
func collectFragments(body *goquery.Selection) []string {
	fragments := []string{}
	body.Children().Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.Text()) == "" {
			return
		}
		out, err := goquery.OuterHtml(s)
		if err != nil {
			return
		}
		fragments = append(fragments, out)
	})
	return fragments
}
