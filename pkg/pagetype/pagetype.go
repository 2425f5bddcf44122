// Package pagetype classifies pages with cheap, rule-based signals and maps
// each page type to filter parameters. It never calls the network: all
// signals come from the HTML itself and the page URL.
package pagetype

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kamjin3086/html-content-processor/pkg/filter"
)

// Type is a coarse page classification.
type Type string

const (
	TypeArticle       Type = "article"
	TypeDocumentation Type = "documentation"
	TypeIndex         Type = "index"
	TypeProduct       Type = "product"
	TypeUnknown       Type = "unknown"
)

// Detection is the classifier output. FilterOptions carries the policy the
// content filter should use for this page type.
type Detection struct {
	Type          Type            `json:"type"`
	Confidence    float64         `json:"confidence"`
	FilterOptions *filter.Options `json:"filter_options"`
	Reasons       []string        `json:"reasons"`
}

// Detector classifies pages against a rule set.
type Detector struct {
	rules Rules
}

// New creates a Detector. A nil rules uses DefaultRules.
func New(rules *Rules) *Detector {
	r := DefaultRules()
	if rules != nil {
		r = *rules
	}
	return &Detector{rules: r}
}

// Detect classifies raw HTML. pageURL may be empty; when present, URL path
// tokens contribute to the decision.
func (d *Detector) Detect(rawHTML, pageURL string) Detection {
	scores := map[Type]float64{}
	var reasons []string

	add := func(t Type, weight float64, reason string) {
		scores[t] += weight
		reasons = append(reasons, reason)
	}

	if pageURL != "" {
		if u, err := url.Parse(pageURL); err == nil {
			d.scoreURL(u, add)
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err == nil {
		d.scoreDocument(doc, add)
	}

	best, bestScore := TypeUnknown, 0.0
	for t, s := range scores {
		if s > bestScore {
			best, bestScore = t, s
		}
	}
	if bestScore < d.rules.MinScore {
		best = TypeUnknown
	}

	confidence := bestScore
	if confidence > 1 {
		confidence = 1
	}

	return Detection{
		Type:          best,
		Confidence:    confidence,
		FilterOptions: optionsFor(best),
		Reasons:       reasons,
	}
}

func (d *Detector) scoreURL(u *url.URL, add func(Type, float64, string)) {
	host := strings.ToLower(u.Host)
	path := strings.ToLower(u.Path)

	for _, token := range []string{"/blog/", "/news/", "/article", "/post/", "/story/"} {
		if strings.Contains(path, token) {
			add(TypeArticle, 0.3, fmt.Sprintf("url path contains %q", token))
			break
		}
	}
	if strings.HasPrefix(host, "docs.") || strings.Contains(path, "/docs/") ||
		strings.Contains(path, "/documentation/") || strings.Contains(path, "/api/") {
		add(TypeDocumentation, 0.4, "documentation url pattern")
	}
	if strings.Contains(path, "/product") || strings.Contains(path, "/shop/") ||
		strings.Contains(path, "/item/") {
		add(TypeProduct, 0.3, "commerce url pattern")
	}
	if path == "" || path == "/" {
		add(TypeIndex, 0.2, "site root url")
	}
}

func (d *Detector) scoreDocument(doc *goquery.Document, add func(Type, float64, string)) {
	if ogType, ok := doc.Find(`meta[property="og:type"]`).Attr("content"); ok {
		switch strings.ToLower(strings.TrimSpace(ogType)) {
		case "article":
			add(TypeArticle, 0.5, "og:type is article")
		case "product":
			add(TypeProduct, 0.5, "og:type is product")
		case "website":
			add(TypeIndex, 0.1, "og:type is website")
		}
	}

	if n := doc.Find("article").Length(); n > 0 {
		add(TypeArticle, 0.3, fmt.Sprintf("%d article element(s)", n))
	}
	if doc.Find(`[itemtype*="Product"]`).Length() > 0 {
		add(TypeProduct, 0.4, "schema.org Product markup")
	}

	if n := doc.Find("pre code").Length(); n >= d.rules.MinCodeBlocks {
		add(TypeDocumentation, 0.3, fmt.Sprintf("%d code blocks", n))
	}

	body := doc.Find("body")
	text := strings.TrimSpace(body.Text())
	linkText := strings.TrimSpace(body.Find("a").Text())
	if len(text) > 0 {
		density := float64(len(linkText)) / float64(len(text))
		if density > d.rules.IndexLinkDensity {
			add(TypeIndex, 0.4, fmt.Sprintf("body link density %.2f", density))
		} else if len(text) >= d.rules.MinArticleTextLen {
			add(TypeArticle, 0.2, "substantial body text")
		}
	}
}

// optionsFor maps a page type to the filter policy that suits it.
func optionsFor(t Type) *filter.Options {
	switch t {
	case TypeDocumentation:
		// Reference pages are sparse; keep short blocks.
		return filter.PresetLenient()
	case TypeIndex, TypeProduct:
		// Link- and widget-heavy pages benefit from aggressive pruning.
		return filter.PresetStrict()
	default:
		return filter.DefaultOptions()
	}
}
