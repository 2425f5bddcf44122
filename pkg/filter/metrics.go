package filter

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// metrics holds the per-node measurements behind a keep/remove decision.
// It is created during traversal and discarded immediately after.
type metrics struct {
	tag         string
	textLen     int
	markupLen   int
	linkTextLen int
	tagWeight   float64
	noisy       bool // class/id matched the noise pattern
}

// measure computes the scoring inputs for an element.
func (f *Filter) measure(s *goquery.Selection) metrics {
	tag := goquery.NodeName(s)

	weight, ok := tagWeights[tag]
	if !ok {
		weight = defaultTagWeight
	}

	markup, err := goquery.OuterHtml(s)
	if err != nil {
		markup = ""
	}

	return metrics{
		tag:         tag,
		textLen:     len(strings.TrimSpace(s.Text())),
		markupLen:   len(markup),
		linkTextLen: len(strings.TrimSpace(s.Find("a").Text())),
		tagWeight:   weight,
		noisy:       noisePattern.MatchString(classID(s)),
	}
}

func (m metrics) density() float64 {
	if m.markupLen == 0 {
		return 0
	}
	return float64(m.textLen) / float64(m.markupLen)
}

func (m metrics) linkDensity() float64 {
	if m.textLen == 0 {
		return 0
	}
	return float64(m.linkTextLen) / float64(m.textLen)
}

func (m metrics) lengthScore() float64 {
	ls := float64(m.textLen) / 100
	if ls > 1 {
		ls = 1
	}
	return ls
}

func (m metrics) classIDPenalty() float64 {
	if m.noisy {
		return -0.5
	}
	return 0
}

// score combines the measurements into the composite score. The weights sum
// to 1.0, keeping typical scores roughly within [-1, 1].
func (m metrics) score() float64 {
	sum := wDensity*m.density() +
		wTagWeight*m.tagWeight +
		wClassID*m.classIDPenalty() -
		wLinkDensity*m.linkDensity() +
		wLength*m.lengthScore()
	total := wDensity + wTagWeight + wClassID + wLinkDensity + wLength
	return sum / total
}
