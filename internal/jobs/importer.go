package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mendableai/firecrawl-go"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
)

// ErrImportUnavailable is returned when no fetcher is configured
var ErrImportUnavailable = errors.New("job import is not configured")

// ErrFetch wraps failures to retrieve or read a posting
var ErrFetch = errors.New("job posting could not be fetched")

// Page is the content a fetcher returns for a posting URL
type Page struct {
	Markdown string
	HTML     string
}

// PageFetcher retrieves a rendered posting
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// FirecrawlFetcher fetches postings through the Firecrawl scrape API
type FirecrawlFetcher struct {
	app    *firecrawl.FirecrawlApp
	logger logging.Logger
}

// NewFirecrawlFetcher returns nil and ErrImportUnavailable without an API key
func NewFirecrawlFetcher(cfg *config.Config) (*FirecrawlFetcher, error) {
	if cfg.Firecrawl.APIKey == "" {
		return nil, ErrImportUnavailable
	}

	app, err := firecrawl.NewFirecrawlApp(cfg.Firecrawl.APIKey, cfg.Firecrawl.APIURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firecrawl: %w", err)
	}

	logger := logging.GetGlobalLogger().WithField("component", "firecrawl")
	logger.Info("Firecrawl fetcher initialized", map[string]interface{}{
		"api_url": cfg.Firecrawl.APIURL,
	})
	return &FirecrawlFetcher{app: app, logger: logger}, nil
}

func (f *FirecrawlFetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	type result struct {
		doc *firecrawl.FirecrawlDocument
		err error
	}
	done := make(chan result, 1)

	// the SDK call takes no context
	go func() {
		doc, err := f.app.ScrapeURL(url, &firecrawl.ScrapeParams{Formats: []string{"markdown", "html"}})
		done <- result{doc, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("firecrawl scrape failed: %w", r.err)
		}
		if r.doc == nil {
			return nil, fmt.Errorf("no result returned from Firecrawl")
		}
		f.logger.Debug("Fetched posting", map[string]interface{}{
			"url":           url,
			"markdown_size": len(r.doc.Markdown),
			"html_size":     len(r.doc.HTML),
		})
		return &Page{Markdown: r.doc.Markdown, HTML: r.doc.HTML}, nil
	}
}

// PageText prefers markdown and falls back to text extracted from HTML
func PageText(page *Page) (string, error) {
	if text := strings.TrimSpace(page.Markdown); text != "" {
		return text, nil
	}
	if strings.TrimSpace(page.HTML) != "" {
		text, err := HTMLToText(page.HTML)
		if err != nil {
			return "", fmt.Errorf("convert posting HTML: %w", err)
		}
		if text != "" {
			return text, nil
		}
	}
	return "", fmt.Errorf("no content found in fetched posting")
}
