package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kamjin3086/html-content-processor/internal/fetch"
	"github.com/kamjin3086/html-content-processor/internal/logger"
)

// loadInput reads the HTML to convert. Accepts an http(s) URL, a local file
// path, or "-" for stdin. The returned base URL is non-empty only for
// fetched pages.
func loadInput(ctx context.Context, arg, userAgent string, timeout time.Duration) (html, baseURL string, err error) {
	switch {
	case arg == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "", nil

	case strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://"):
		client := fetch.NewClient(fetch.Options{
			UserAgent: userAgent,
			Timeout:   timeout,
		})
		page, err := client.Fetch(ctx, arg)
		if err != nil {
			return "", "", err
		}
		logger.Debug("page fetched",
			"url", arg, "status", page.StatusCode, "bytes", len(page.HTML))
		return page.HTML, arg, nil

	default:
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", arg, err)
		}
		return string(data), "", nil
	}
}
