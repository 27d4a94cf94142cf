package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
	"golang.org/x/net/html"

	httputils "synapse/synapse/utils/http"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Fetcher loads a page and returns its parsed document with Url set.
type Fetcher interface {
	Fetch(ctx context.Context, targetURL string) (*goquery.Document, error)
}

// ParseHTML parses a DOM snapshot taken at pageURL.
func ParseHTML(raw, pageURL string) (*goquery.Document, error) {
	root, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc := goquery.NewDocumentFromNode(root)
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, fmt.Errorf("parse page url: %w", err)
		}
		doc.Url = u
	}
	return doc, nil
}

// HTTPFetcher reads server-rendered pages over plain HTTP.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client, userAgent: defaultUserAgent}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &httputils.StatusError{Code: resp.StatusCode, URL: targetURL}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}
	// Redirects move the base for relative links.
	doc.Url = resp.Request.URL
	return doc, nil
}

// BrowserFetcher renders pages in headless Chromium so client-side markup
// exists before extraction.
type BrowserFetcher struct {
	pw      *playwright.Playwright
	Timeout time.Duration
}

// NewBrowserFetcher initializes Playwright
func NewBrowserFetcher() (*BrowserFetcher, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, err
	}
	return &BrowserFetcher{pw: pw, Timeout: 15 * time.Second}, nil
}

// Close stops Playwright
func (f *BrowserFetcher) Close() {
	if f.pw != nil {
		f.pw.Stop()
	}
}

// Fetch waits for DOMContentLoaded, the point where the page's structure is
// ready, and snapshots the DOM.
func (f *BrowserFetcher) Fetch(ctx context.Context, targetURL string) (*goquery.Document, error) {
	browser, err := f.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args:     []string{"--disable-gpu", "--no-sandbox", "--disable-dev-shm-usage"},
	})
	if err != nil {
		return nil, err
	}
	defer browser.Close()

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(defaultUserAgent),
		Viewport:  &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		return nil, err
	}
	defer bctx.Close()

	page, err := bctx.NewPage()
	if err != nil {
		return nil, err
	}
	defer page.Close()

	timeout := f.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := page.Goto(targetURL, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return nil, err
	}

	content, err := page.Content()
	if err != nil {
		return nil, err
	}
	return ParseHTML(content, page.URL())
}

// NewFetcher builds the fetcher named by kind ("http" or "browser") and a
// func releasing its resources.
func NewFetcher(kind string, client *http.Client) (Fetcher, func(), error) {
	switch kind {
	case "", "http":
		return NewHTTPFetcher(client), func() {}, nil
	case "browser":
		bf, err := NewBrowserFetcher()
		if err != nil {
			return nil, nil, err
		}
		return bf, bf.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown fetcher %q", kind)
	}
}
