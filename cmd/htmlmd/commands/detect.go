package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamjin3086/html-content-processor/pkg/pagetype"
)

var detectCmd = &cobra.Command{
	Use:   "detect <url|file|->",
	Short: "Classify a page without converting it",
	Long: `Classify a page as article, documentation, index, or product.

The classification decides which filter policy convert's --auto-detect
would apply. Useful for checking a rules file against real pages.

Examples:
  htmlmd detect https://example.com/blog/post
  htmlmd detect --rules rules.yaml --format json page.html`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	flags := detectCmd.Flags()
	flags.String("rules", "", "YAML rules file overriding the built-in thresholds")
	flags.Duration("timeout", 30*time.Second, "fetch timeout")
	flags.String("user-agent", "", "override the fetch user agent")
	flags.String("format", "text", "output format: text, json")
}

func runDetect(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	flags := cmd.Flags()

	userAgent, _ := flags.GetString("user-agent")
	timeout, _ := flags.GetDuration("timeout")

	html, baseURL, err := loadInput(ctx, args[0], userAgent, timeout)
	if err != nil {
		logError("%v", err)
		return err
	}

	rules := pagetype.DefaultRules()
	if rulesPath, _ := flags.GetString("rules"); rulesPath != "" {
		rules, err = pagetype.LoadRules(rulesPath)
		if err != nil {
			logError("%v", err)
			return err
		}
	}

	det := pagetype.New(&rules).Detect(html, baseURL)

	format, _ := flags.GetString("format")
	switch format {
	case "json":
		data, err := json.MarshalIndent(det, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding detection: %w", err)
		}
		fmt.Println(string(data))
	case "text", "":
		fmt.Printf("type:       %s\n", det.Type)
		fmt.Printf("confidence: %.2f\n", det.Confidence)
		for _, r := range det.Reasons {
			fmt.Printf("  - %s\n", r)
		}
	default:
		return fmt.Errorf("unknown format: %s (use 'text' or 'json')", format)
	}
	return nil
}
