package probe

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/chromedp/chromedp"
	"golang.org/x/net/html"

	"webPerfAnalyzerGO/internal/models"
)

// slowResourceMillis is the duration above which a resource entry is
// classified as slow
const slowResourceMillis = 1000

// performanceEntriesExpr dumps every performance-timeline record the
// browser collected while loading the page
const performanceEntriesExpr = `window.performance.getEntries().map(e => ({
	name: e.name,
	entryType: e.entryType,
	duration: e.duration,
	initiatorType: e.initiatorType || 'other',
}))`

// AnalyzeNetwork inspects the page's resource loading. In rich mode it
// reads the browser's performance entries; on any failure along the
// rich path it falls back to the basic path instead of returning nil.
// This is the one probe with an explicit fallback chain.
func (a *Analyzer) AnalyzeNetwork(ctx context.Context, urlStr string) *models.NetworkAnalysis {
	if a.mode == ModeRich {
		analysis, err := a.analyzeNetworkRich(ctx, urlStr)
		if err == nil {
			return analysis
		}
		a.logger.Error("Error analyzing network performance", "url", urlStr, "error", err)
	}
	return a.analyzeNetworkBasic(ctx, urlStr)
}

// analyzeNetworkRich loads the page in the browser and tallies its
// performance entries per initiator type, collecting entries slower
// than the threshold
func (a *Analyzer) analyzeNetworkRich(ctx context.Context, urlStr string) (*models.NetworkAnalysis, error) {
	var entries []models.ResourceEntry
	if err := a.runBrowser(ctx, urlStr, chromedp.Evaluate(performanceEntriesExpr, &entries)); err != nil {
		return nil, err
	}

	analysis := &models.NetworkAnalysis{
		TotalRequests: len(entries),
		SlowResources: []models.ResourceEntry{},
		ResourceTypes: make(map[string]int),
	}
	for _, entry := range entries {
		if entry.Duration > slowResourceMillis {
			analysis.SlowResources = append(analysis.SlowResources, entry)
		}
		analysis.ResourceTypes[entry.InitiatorType]++
	}
	return analysis, nil
}

// analyzeNetworkBasic fetches the raw HTML and estimates resource usage
// by counting script, stylesheet, and image tags. The total-request
// estimate is those counts plus one for the document itself.
func (a *Analyzer) analyzeNetworkBasic(ctx context.Context, urlStr string) *models.NetworkAnalysis {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		a.logger.Error("Error in basic network analysis", "url", urlStr, "error", err)
		return nil
	}
	req.Header.Set("User-Agent", a.config.UserAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("Error in basic network analysis", "url", urlStr, "error", err)
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		a.logger.Error("Error in basic network analysis", "url", urlStr, "error", err)
		return nil
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		a.logger.Error("Error in basic network analysis", "url", urlStr, "error", err)
		return nil
	}

	var scripts, stylesheets, images int
	var processNode func(*html.Node)
	processNode = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script":
				scripts++
			case "link":
				for _, attr := range n.Attr {
					if attr.Key == "rel" && strings.Contains(strings.ToLower(attr.Val), "stylesheet") {
						stylesheets++
						break
					}
				}
			case "img":
				images++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			processNode(c)
		}
	}
	processNode(doc)

	pageSize := int64(len(body))
	return &models.NetworkAnalysis{
		TotalRequests: scripts + stylesheets + images + 1,
		ResourceTypes: map[string]int{
			"scripts":     scripts,
			"stylesheets": stylesheets,
			"images":      images,
		},
		PageSize:    &pageSize,
		ContentType: headerValue(resp.Header, "Content-Type"),
	}
}
