package filter

import "testing"

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.Strategy != StrategyFixed {
		t.Errorf("expected fixed strategy, got %q", o.Strategy)
	}
	if o.Threshold <= 0 || o.Threshold >= 1 {
		t.Errorf("default threshold out of range: %v", o.Threshold)
	}
	if err := o.Validate(); err != nil {
		t.Errorf("default options should validate: %v", err)
	}
}

func TestPresets(t *testing.T) {
	lenient := PresetLenient()
	strict := PresetStrict()

	if lenient.Threshold >= strict.Threshold {
		t.Errorf("lenient threshold (%v) should be below strict (%v)",
			lenient.Threshold, strict.Threshold)
	}
	if strict.Strategy != StrategyDynamic {
		t.Errorf("strict preset should use dynamic strategy, got %q", strict.Strategy)
	}
	for name, o := range map[string]*Options{"lenient": lenient, "strict": strict} {
		if err := o.Validate(); err != nil {
			t.Errorf("%s preset should validate: %v", name, err)
		}
	}
}

func TestOptionsMerge(t *testing.T) {
	t.Run("nil other returns copy", func(t *testing.T) {
		base := DefaultOptions()
		merged := base.Merge(nil)
		if merged == base {
			t.Error("expected a copy, got the same pointer")
		}
		if merged.Threshold != base.Threshold || merged.Strategy != base.Strategy ||
			merged.MinWords != base.MinWords {
			t.Errorf("copy differs from base: %+v vs %+v", merged, base)
		}
	})

	t.Run("non-zero values override", func(t *testing.T) {
		base := DefaultOptions()
		merged := base.Merge(&Options{Threshold: 0.5, Strategy: StrategyDynamic, MinWords: 10})
		if merged.Threshold != 0.5 {
			t.Errorf("Threshold = %v, want 0.5", merged.Threshold)
		}
		if merged.Strategy != StrategyDynamic {
			t.Errorf("Strategy = %q, want dynamic", merged.Strategy)
		}
		if merged.MinWords != 10 {
			t.Errorf("MinWords = %d, want 10", merged.MinWords)
		}
	})

	t.Run("zero values keep base", func(t *testing.T) {
		base := DefaultOptions()
		merged := base.Merge(&Options{})
		if merged.Threshold != base.Threshold || merged.Strategy != base.Strategy {
			t.Errorf("zero-value merge changed base: %+v", merged)
		}
	})

	t.Run("selectors append deduplicated", func(t *testing.T) {
		base := &Options{
			Threshold:       0.3,
			Strategy:        StrategyFixed,
			RemoveSelectors: []string{".ad", ".promo"},
		}
		merged := base.Merge(&Options{RemoveSelectors: []string{".promo", ".banner"}})
		want := []string{".ad", ".promo", ".banner"}
		if len(merged.RemoveSelectors) != len(want) {
			t.Fatalf("RemoveSelectors = %v, want %v", merged.RemoveSelectors, want)
		}
		for i := range want {
			if merged.RemoveSelectors[i] != want[i] {
				t.Errorf("RemoveSelectors[%d] = %q, want %q", i, merged.RemoveSelectors[i], want[i])
			}
		}
	})

	t.Run("merge does not mutate receiver", func(t *testing.T) {
		base := &Options{Threshold: 0.3, Strategy: StrategyFixed}
		base.Merge(&Options{Threshold: 0.9})
		if base.Threshold != 0.3 {
			t.Errorf("receiver mutated: Threshold = %v", base.Threshold)
		}
	})
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"valid fixed", Options{Threshold: 0.3, Strategy: StrategyFixed}, false},
		{"valid dynamic", Options{Threshold: 0.9, Strategy: StrategyDynamic, MinWords: 5}, false},
		{"threshold above one", Options{Threshold: 1.5, Strategy: StrategyFixed}, true},
		{"threshold below zero", Options{Threshold: -0.1, Strategy: StrategyFixed}, true},
		{"unknown strategy", Options{Threshold: 0.3, Strategy: "fuzzy"}, true},
		{"negative min words", Options{Threshold: 0.3, Strategy: StrategyFixed, MinWords: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
