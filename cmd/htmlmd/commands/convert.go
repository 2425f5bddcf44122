package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamjin3086/html-content-processor/internal/logger"
	"github.com/kamjin3086/html-content-processor/pkg/filter"
	"github.com/kamjin3086/html-content-processor/pkg/markdown"
	"github.com/kamjin3086/html-content-processor/pkg/pipeline"
)

var convertCmd = &cobra.Command{
	Use:   "convert <url|file|->",
	Short: "Convert HTML to filtered Markdown",
	Long: `Convert a web page, local file, or stdin to Markdown.

The content filter removes boilerplate before serialization. Use a
preset to pick a filtering policy, or tune threshold, strategy, and
selectors individually. With --citations, inline links become numbered
markers and a references block is appended.

Examples:
  # Fetch and convert
  htmlmd convert https://example.com/article

  # Local file with explicit base URL for link resolution
  htmlmd convert --base-url https://example.com/docs/ page.html

  # Stdin, aggressive filtering, citations
  cat page.html | htmlmd convert --preset strict --citations -

  # Let the page classifier choose the policy
  htmlmd convert --auto-detect https://example.com/docs/api`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()

	// Input settings
	flags.String("base-url", "", "base URL for resolving relative links (inferred when fetching)")
	flags.Duration("timeout", 30*time.Second, "fetch timeout")
	flags.String("user-agent", "", "override the fetch user agent")

	// Filter settings
	flags.String("preset", "", "filter preset: lenient, strict (default: balanced)")
	flags.Float64("threshold", 0, "removal threshold override (0..1)")
	flags.String("strategy", "", "threshold strategy: fixed, dynamic")
	flags.Int("min-words", 0, "minimum words for the empty-node prune")
	flags.StringSlice("remove", nil, "CSS selector(s) to always remove")
	flags.StringSlice("keep", nil, "CSS selector(s) to always keep")
	flags.Bool("no-filter", false, "skip content filtering, serialize the whole document")
	flags.Bool("auto-detect", false, "classify the page and pick the filter policy automatically")

	// Serializer settings
	flags.Bool("ignore-links", false, "render link text without targets")
	flags.Bool("ignore-images", false, "drop images from the output")
	flags.Bool("ignore-emphasis", false, "drop bold/italic markers")
	flags.Bool("single-line-break", false, "separate paragraphs with one newline instead of a blank line")
	flags.Bool("mark-code", false, "wrap code spans in [code]...[/code] markers")
	flags.Bool("sup-sub", false, "render superscript/subscript with ^ and ~")

	// Citation settings
	flags.Bool("citations", false, "rewrite links into numbered citations with a references block")

	// Output settings
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "markdown", "output format: markdown, json")
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	flags := cmd.Flags()

	userAgent, _ := flags.GetString("user-agent")
	timeout, _ := flags.GetDuration("timeout")

	html, inferredBase, err := loadInput(ctx, args[0], userAgent, timeout)
	if err != nil {
		logError("%v", err)
		return err
	}

	baseURL, _ := flags.GetString("base-url")
	if baseURL == "" {
		baseURL = inferredBase
	}

	filterOpts, err := filterOptionsFromFlags(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}

	serOpts := markdown.DefaultOptions()
	serOpts.IgnoreLinks, _ = flags.GetBool("ignore-links")
	serOpts.IgnoreImages, _ = flags.GetBool("ignore-images")
	serOpts.IgnoreEmphasis, _ = flags.GetBool("ignore-emphasis")
	serOpts.SingleLineBreak, _ = flags.GetBool("single-line-break")
	serOpts.MarkCode, _ = flags.GetBool("mark-code")
	serOpts.IncludeSupSub, _ = flags.GetBool("sup-sub")

	citations, _ := flags.GetBool("citations")
	autoDetect, _ := flags.GetBool("auto-detect")

	result := pipeline.Generate(html, baseURL, &pipeline.Config{
		Serializer: serOpts,
		Filter:     filterOpts,
		Citations:  citations,
		AutoDetect: autoDetect,
	})
	for _, w := range result.Warnings {
		logger.Warn(w)
	}

	output, err := renderOutput(cmd, result)
	if err != nil {
		logError("%v", err)
		return err
	}

	outPath, _ := flags.GetString("output")
	if outPath == "" {
		fmt.Println(output)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(output+"\n"), 0o644); err != nil {
		logError("writing %s: %v", outPath, err)
		return err
	}
	logInfo("Wrote %s (%d words)", outPath, result.Metadata.WordCount)
	return nil
}

// filterOptionsFromFlags layers explicit flag overrides on top of the chosen
// preset. Returns nil when nothing was set, so auto-detection (or the
// default policy) applies untouched.
func filterOptionsFromFlags(cmd *cobra.Command) (*filter.Options, error) {
	flags := cmd.Flags()

	var opts *filter.Options
	preset, _ := flags.GetString("preset")
	switch preset {
	case "":
	case "lenient":
		opts = filter.PresetLenient()
	case "strict":
		opts = filter.PresetStrict()
	case "default", "balanced":
		opts = filter.DefaultOptions()
	default:
		return nil, fmt.Errorf("unknown preset: %s (use 'lenient' or 'strict')", preset)
	}

	overrides := &filter.Options{}
	overrides.Threshold, _ = flags.GetFloat64("threshold")
	strategy, _ := flags.GetString("strategy")
	overrides.Strategy = filter.Strategy(strategy)
	overrides.MinWords, _ = flags.GetInt("min-words")
	overrides.RemoveSelectors, _ = flags.GetStringSlice("remove")
	overrides.KeepSelectors, _ = flags.GetStringSlice("keep")

	if opts == nil {
		if overrides.Threshold == 0 && overrides.Strategy == "" && overrides.MinWords == 0 &&
			len(overrides.RemoveSelectors) == 0 && len(overrides.KeepSelectors) == 0 {
			return nil, nil
		}
		opts = filter.DefaultOptions()
	}
	opts = opts.Merge(overrides)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// renderOutput formats the pipeline result per the --format flag.
func renderOutput(cmd *cobra.Command, result *pipeline.Result) (string, error) {
	flags := cmd.Flags()

	format, _ := flags.GetString("format")
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding result: %w", err)
		}
		return string(data), nil
	case "markdown", "":
	default:
		return "", fmt.Errorf("unknown format: %s (use 'markdown' or 'json')", format)
	}

	noFilter, _ := flags.GetBool("no-filter")
	citations, _ := flags.GetBool("citations")

	md := result.FilteredMarkdown
	if noFilter {
		md = result.RawMarkdown
	}
	if citations && result.AnnotatedMarkdown != "" {
		md = result.AnnotatedMarkdown
		if result.ReferencesMarkdown != "" {
			md += "\n\n" + result.ReferencesMarkdown
		}
	}
	return md, nil
}
