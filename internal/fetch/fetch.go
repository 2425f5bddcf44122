// Package fetch retrieves page HTML for the CLI. The conversion pipeline
// itself never touches the network.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

// Options controls fetching behavior.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Headers   map[string]string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		UserAgent: "htmlmd/1.0 (+https://github.com/kamjin3086/html-content-processor)",
		Timeout:   30 * time.Second,
	}
}

// Page is a fetched document.
type Page struct {
	URL         string
	HTML        string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// Client fetches pages over HTTP.
type Client struct {
	opts Options
}

// NewClient creates a Client. Zero-value option fields fall back to
// defaults.
func NewClient(opts Options) *Client {
	def := DefaultOptions()
	if opts.UserAgent == "" {
		opts.UserAgent = def.UserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = def.Timeout
	}
	return &Client{opts: opts}
}

// Fetch retrieves the page at target. A fresh collector is created per
// request so clients are safe to reuse.
func (c *Client) Fetch(ctx context.Context, target string) (Page, error) {
	page := Page{URL: target, FetchedAt: time.Now()}

	if err := ctx.Err(); err != nil {
		return page, err
	}

	collector := colly.NewCollector(colly.UserAgent(c.opts.UserAgent))
	collector.SetRequestTimeout(c.opts.Timeout)

	if len(c.opts.Headers) > 0 {
		collector.OnRequest(func(r *colly.Request) {
			for k, v := range c.opts.Headers {
				r.Headers.Set(k, v)
			}
		})
	}

	var fetchErr error
	collector.OnResponse(func(r *colly.Response) {
		page.StatusCode = r.StatusCode
		page.ContentType = r.Headers.Get("Content-Type")
		page.HTML = string(r.Body)
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r != nil {
			page.StatusCode = r.StatusCode
		}
		fetchErr = fmt.Errorf("fetching %s: %w", target, err)
	})

	if err := collector.Visit(target); err != nil {
		return page, fmt.Errorf("visiting %s: %w", target, err)
	}
	if fetchErr != nil {
		return page, fetchErr
	}
	return page, nil
}
