package probe

import (
	"context"
	"log/slog"

	"github.com/chromedp/chromedp"

	"webPerfAnalyzerGO/internal/config"
)

// Mode is the analysis mode established once at startup. Rich mode has
// a working headless browser backend; basic mode relies on raw HTTP
// requests and static HTML parsing only.
type Mode int

const (
	ModeBasic Mode = iota
	ModeRich
)

// String returns the mode name for logging
func (m Mode) String() string {
	if m == ModeRich {
		return "rich"
	}
	return "basic"
}

// allocatorOptions returns the Chrome launch flags used for every
// browser session
func allocatorOptions() []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
}

// DetectCapability determines whether a headless browser backend is
// available by launching one and navigating to a blank page. Any
// failure degrades the whole run to basic mode with a warning; this
// never returns an error. The result is threaded through the Analyzer
// as configuration so provisioning is attempted exactly once.
func DetectCapability(ctx context.Context, cfg config.BrowserConfig, logger *slog.Logger) Mode {
	if cfg.Disabled {
		logger.Info("Browser disabled by configuration, running in basic mode")
		return ModeBasic
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
		logger.Warn("Browser setup failed, will run without browser-based metrics", "error", err)
		return ModeBasic
	}

	logger.Info("Browser backend available, running in rich mode")
	return ModeRich
}
