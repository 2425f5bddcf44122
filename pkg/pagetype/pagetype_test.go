package pagetype

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kamjin3086/html-content-processor/pkg/filter"
)

func TestDetect(t *testing.T) {
	longText := strings.Repeat("Plenty of running prose in the body of this page. ", 20)

	tests := []struct {
		name string
		html string
		url  string
		want Type
	}{
		{
			name: "og:type article",
			html: `<html><head><meta property="og:type" content="article"></head><body><article><p>` + longText + `</p></article></body></html>`,
			url:  "https://example.com/blog/post-1",
			want: TypeArticle,
		},
		{
			name: "documentation by url and code blocks",
			html: `<html><body><pre><code>a</code></pre><pre><code>b</code></pre><pre><code>c</code></pre><p>API usage</p></body></html>`,
			url:  "https://docs.example.com/api/reference",
			want: TypeDocumentation,
		},
		{
			name: "link-heavy index page",
			html: `<html><body>` + strings.Repeat(`<a href="/x">Some listing entry title here</a>`, 30) + `</body></html>`,
			url:  "https://example.com/",
			want: TypeIndex,
		},
		{
			name: "product markup",
			html: `<html><head><meta property="og:type" content="product"></head><body><div itemtype="https://schema.org/Product">Widget</div></body></html>`,
			url:  "https://example.com/product/widget",
			want: TypeProduct,
		},
		{
			name: "no signals stays unknown",
			html: `<html><body><div>x</div></body></html>`,
			url:  "",
			want: TypeUnknown,
		},
	}

	d := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			det := d.Detect(tt.html, tt.url)
			if det.Type != tt.want {
				t.Errorf("Detect() type = %q, want %q (reasons: %v)", det.Type, tt.want, det.Reasons)
			}
			if det.FilterOptions == nil {
				t.Fatal("FilterOptions should never be nil")
			}
			if det.Confidence < 0 || det.Confidence > 1 {
				t.Errorf("confidence out of range: %v", det.Confidence)
			}
		})
	}
}

func TestDetectFilterOptionsMapping(t *testing.T) {
	d := New(nil)

	docs := d.Detect(`<body><pre><code>a</code></pre><pre><code>b</code></pre><pre><code>c</code></pre></body>`, "https://docs.example.com/api/x")
	if docs.Type != TypeDocumentation {
		t.Fatalf("expected documentation, got %q", docs.Type)
	}
	if docs.FilterOptions.Threshold >= filter.DefaultOptions().Threshold {
		t.Errorf("documentation pages should get a lenient threshold, got %v", docs.FilterOptions.Threshold)
	}

	index := d.Detect(`<body>`+strings.Repeat(`<a href="/x">Entry link text goes here</a>`, 40)+`</body>`, "")
	if index.Type != TypeIndex {
		t.Fatalf("expected index, got %q", index.Type)
	}
	if index.FilterOptions.Strategy != filter.StrategyDynamic {
		t.Errorf("index pages should use the strict preset, got %+v", index.FilterOptions)
	}
}

func TestLoadRules(t *testing.T) {
	t.Run("overrides merge onto defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		content := "index_link_density: 0.8\nmin_code_blocks: 5\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		rules, err := LoadRules(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rules.IndexLinkDensity != 0.8 {
			t.Errorf("IndexLinkDensity = %v, want 0.8", rules.IndexLinkDensity)
		}
		if rules.MinCodeBlocks != 5 {
			t.Errorf("MinCodeBlocks = %d, want 5", rules.MinCodeBlocks)
		}
		if rules.MinScore != DefaultRules().MinScore {
			t.Errorf("MinScore should keep default, got %v", rules.MinScore)
		}
	})

	t.Run("missing file returns defaults and error", func(t *testing.T) {
		rules, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
		if err == nil {
			t.Error("expected error for missing file")
		}
		if rules != DefaultRules() {
			t.Errorf("expected defaults on error, got %+v", rules)
		}
	})
}
