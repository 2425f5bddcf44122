package filter

import "regexp"

// tagWeights maps tag names to importance weights used by the composite score.
// Tags absent from the table fall back to defaultTagWeight.
var tagWeights = map[string]float64{
	"article":    2.0,
	"main":       2.0,
	"section":    1.5,
	"h1":         1.5,
	"h2":         1.4,
	"h3":         1.3,
	"h4":         1.2,
	"h5":         1.2,
	"h6":         1.2,
	"p":          1.2,
	"blockquote": 1.3,
	"pre":        1.3,
	"code":       1.2,
	"table":      1.3,
	"figure":     1.0,
	"ul":         1.0,
	"ol":         1.0,
	"dl":         1.0,
	"li":         0.9,
	"div":        0.8,
	"img":        0.8,
	"span":       0.5,
	"a":          0.3,
}

// defaultTagWeight is applied to tags missing from tagWeights.
const defaultTagWeight = 0.6

// excludedTags are removed wholesale before scoring. They never carry
// extractable prose.
var excludedTags = []string{
	"script", "style", "noscript", "iframe", "svg", "canvas",
	"nav", "footer", "header", "aside",
	"form", "input", "button", "select", "textarea", "label", "fieldset",
	"object", "embed", "applet", "link", "meta",
}

// candidateTags are the block-level elements subject to composite scoring.
// Inline elements survive or fall with their nearest scored ancestor.
var candidateTags = map[string]bool{
	"div": true, "p": true, "section": true, "article": true, "main": true,
	"aside": true, "blockquote": true, "pre": true, "figure": true,
	"ul": true, "ol": true, "dl": true, "table": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// essentialTags are exempt from the empty-node prune regardless of text
// content (structural or self-closing elements).
var essentialTags = map[string]bool{
	"img": true, "br": true, "hr": true,
	"td": true, "th": true, "tr": true, "thead": true, "tbody": true,
	"video": true, "audio": true, "source": true,
}

// mainContentTags are always preserved during the noise-pattern sweep.
var mainContentTags = map[string]bool{
	"main": true, "article": true, "section": true,
}

// noisePattern flags class/id strings that indicate boilerplate.
var noisePattern = regexp.MustCompile(`(?i)\b(nav|navbar|menu|sidebar|footer|header|banner|breadcrumbs?|ads?|advert(isement)?|sponsor(ed)?|promo(tion)?|social|share|sharing|comments?|widget|popup|modal|overlay|cookie|consent|gdpr|subscribe|newsletter|related|recommend(ed)?|pagination|paginator|tracking|masthead)\b`)

// contentPattern flags class/id strings that indicate a main-content
// container. Matching elements are preserved during the noise sweep.
var contentPattern = regexp.MustCompile(`(?i)\b(content|article|post|main|body|text|story|entry|blog)\b`)
