package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	// DefaultBrowserTimeout bounds a single headless render.
	DefaultBrowserTimeout = 30 * time.Second
	// DefaultSettle is how long scripts get to hydrate the page after load.
	DefaultSettle = 2 * time.Second
)

// BrowserFetcher renders pages in headless Chrome. Salary pages often refuse
// plain clients or only embed their figures once scripts have run. Requires
// Chrome or Chromium on the host.
type BrowserFetcher struct {
	Timeout time.Duration
	// WaitFor is a selector that must be present before the page is captured;
	// "body" when empty.
	WaitFor string
	// Settle is the pause after WaitFor appears; DefaultSettle when zero.
	Settle time.Duration
}

// Fetch implements Fetcher.
func (f *BrowserFetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	html, err := f.render(ctx, urlStr)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "browser fetch failed", Cause: err}
	}
	return &Result{
		URL:         urlStr,
		Body:        html,
		ContentType: "text/html",
		StatusCode:  200,
	}, nil
}

func (f *BrowserFetcher) render(ctx context.Context, urlStr string) (string, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	waitFor := f.WaitFor
	if waitFor == "" {
		waitFor = "body"
	}
	settle := f.Settle
	if settle <= 0 {
		settle = DefaultSettle
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()

	start := time.Now()
	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady(waitFor),
		chromedp.Sleep(settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", urlStr, err)
	}

	slog.Debug("rendered page", "url", urlStr, "bytes", len(html), "duration", time.Since(start))
	return html, nil
}

func allocatorOptions() []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
		chromedp.UserAgent(DefaultUserAgent),
	)
}
