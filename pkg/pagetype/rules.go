package pagetype

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules are the tunable thresholds behind Detect. They ship with defaults
// and can be overridden from a YAML file.
type Rules struct {
	// MinScore is the minimum accumulated score before a type is reported;
	// below it the page stays unknown.
	MinScore float64 `yaml:"min_score"`

	// IndexLinkDensity is the body link-text ratio above which a page is
	// treated as an index/listing page.
	IndexLinkDensity float64 `yaml:"index_link_density"`

	// MinArticleTextLen is the body text length that counts as substantial
	// article prose.
	MinArticleTextLen int `yaml:"min_article_text_len"`

	// MinCodeBlocks is the number of fenced code blocks that signals
	// documentation.
	MinCodeBlocks int `yaml:"min_code_blocks"`
}

// DefaultRules returns the built-in thresholds.
func DefaultRules() Rules {
	return Rules{
		MinScore:          0.2,
		IndexLinkDensity:  0.5,
		MinArticleTextLen: 400,
		MinCodeBlocks:     3,
	}
}

// LoadRules reads rule overrides from a YAML file. Fields omitted from the
// file keep their defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("reading rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	return rules, nil
}
