package canon

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserStrategy renders the page in headless Chrome. It is the fallback for pages that
// refuse plain HTTP clients.
type BrowserStrategy struct {
	timeout time.Duration
	settle  time.Duration
	opts    []chromedp.ExecAllocatorOption
}

func NewBrowserStrategy(timeout, settle time.Duration) *BrowserStrategy {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(browserUserAgent),
		chromedp.Flag("disable-gpu", true),
		chromedp.NoSandbox,
	)
	return &BrowserStrategy{timeout: timeout, settle: settle, opts: opts}
}

func (s *BrowserStrategy) Name() string { return "browser" }

func (s *BrowserStrategy) Fetch(ctx context.Context, target string) (Page, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, s.opts...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(s.settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return Page{}, err
	}
	return Page{Status: 200, HTML: html}, nil
}
