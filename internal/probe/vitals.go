package probe

import (
	"context"

	"github.com/chromedp/chromedp"

	"webPerfAnalyzerGO/internal/models"
)

// webVitalsExpr reads the browser's own navigation and paint timing
// entries. Paint entries may be missing when the browser never painted,
// so those fields come back null.
const webVitalsExpr = `(() => {
	const nav = performance.getEntriesByType('navigation')[0];
	const paint = performance.getEntriesByType('paint');
	const fp = paint.find(p => p.name === 'first-paint');
	const fcp = paint.find(p => p.name === 'first-contentful-paint');
	return {
		loadTime: nav.loadEventEnd - nav.startTime,
		domContentLoaded: nav.domContentLoadedEventEnd - nav.startTime,
		firstPaint: fp ? fp.startTime : null,
		firstContentfulPaint: fcp ? fcp.startTime : null,
	};
})()`

// MeasureWebVitals loads the URL in a headless browser and reports its
// performance-timing metrics in milliseconds relative to navigation
// start. In basic mode the probe is skipped entirely rather than
// approximated. Returns nil on failure.
func (a *Analyzer) MeasureWebVitals(ctx context.Context, urlStr string) *models.WebVitals {
	if a.mode != ModeRich {
		a.logger.Info("Browser not available, skipping web vitals measurement")
		return nil
	}

	var vitals models.WebVitals
	if err := a.runBrowser(ctx, urlStr, chromedp.Evaluate(webVitalsExpr, &vitals)); err != nil {
		a.logger.Error("Error measuring web vitals", "url", urlStr, "error", err)
		return nil
	}
	return &vitals
}

// runBrowser launches a fresh headless browser session, navigates to
// the URL, runs the given actions after navigation completes, and tears
// the browser down before returning on every path.
func (a *Analyzer) runBrowser(ctx context.Context, urlStr string, actions ...chromedp.Action) error {
	if a.browser.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.browser.Timeout)
		defer cancel()
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	run := append([]chromedp.Action{chromedp.Navigate(urlStr)}, actions...)
	return chromedp.Run(browserCtx, run...)
}
