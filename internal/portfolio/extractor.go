// Package portfolio extracts structured project, skill and testimonial
// data from a candidate's portfolio page. Extraction is heuristic; the
// returned reliability score reflects how much structure was found.
package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/talentforge/forge/internal/cache"
	"github.com/talentforge/forge/internal/model"
)

// ErrDisallowed means robots.txt forbids fetching the portfolio page.
var ErrDisallowed = errors.New("portfolio: fetch disallowed by robots.txt")

// Extractor fetches and parses portfolio pages.
type Extractor struct {
	httpClient *http.Client
	robots     *robotsChecker
	userAgent  string
	maxBytes   int64
	cache      cache.Cache
	cacheTTL   time.Duration
}

// Options configures the extractor.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	MaxBytes  int64
	Cache     cache.Cache
	CacheTTL  time.Duration
}

// NewExtractor creates a portfolio extractor.
func NewExtractor(opts Options) *Extractor {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 2_000_000
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	return &Extractor{
		httpClient: &http.Client{Timeout: opts.Timeout},
		robots:     newRobotsChecker(opts.UserAgent, opts.Timeout),
		userAgent:  opts.UserAgent,
		maxBytes:   opts.MaxBytes,
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
	}
}

// Extract fetches the page and returns structured portfolio data.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*model.PortfolioData, error) {
	key := cache.Key("portfolio", rawURL)
	if e.cache != nil {
		if raw, ok := e.cache.Get(key); ok {
			var data model.PortfolioData
			if err := json.Unmarshal(raw, &data); err == nil {
				return &data, nil
			}
		}
	}

	allowed, err := e.robots.canFetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrDisallowed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch portfolio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("portfolio: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	data, err := Parse(string(body), rawURL)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if raw, err := json.Marshal(data); err == nil {
			e.cache.Set(key, raw, e.cacheTTL)
		}
	}
	return data, nil
}

// Parse extracts projects, skills and testimonials from portfolio HTML.
// Headings open project sections; links whose text mentions a demo or case
// study mark the project verifiable; blockquotes count as testimonials.
func Parse(htmlContent, sourceURL string) (*model.PortfolioData, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	data := &model.PortfolioData{URL: sourceURL}
	var current *model.PortfolioProject

	flush := func() {
		if current != nil && current.Title != "" {
			data.Projects = append(data.Projects, *current)
		}
		current = nil
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h1", "h2", "h3":
				flush()
				current = &model.PortfolioProject{Title: textContent(n)}
			case "p":
				if current != nil && current.Description == "" {
					current.Description = textContent(n)
				}
			case "blockquote":
				data.Testimonials++
			case "code", "em", "strong":
				if current != nil {
					if skill := strings.TrimSpace(textContent(n)); skill != "" && len(skill) < 40 {
						current.Skills = appendUnique(current.Skills, skill)
					}
				}
			case "a":
				if current != nil {
					text := strings.ToLower(textContent(n))
					if strings.Contains(text, "demo") || strings.Contains(text, "live") {
						current.LiveDemo = true
					}
					if strings.Contains(text, "case study") || strings.Contains(text, "write-up") || strings.Contains(text, "writeup") {
						current.CaseStudy = true
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	flush()

	data.Reliability = reliability(data)
	return data, nil
}

// reliability grades extraction density: verifiable projects and
// testimonials raise confidence in the extraction.
func reliability(data *model.PortfolioData) float64 {
	if len(data.Projects) == 0 {
		return 0.2
	}
	score := 0.4
	verifiable := 0
	for _, p := range data.Projects {
		if p.LiveDemo || p.CaseStudy {
			verifiable++
		}
	}
	score += 0.4 * float64(verifiable) / float64(len(data.Projects))
	if data.Testimonials > 0 {
		score += 0.1
	}
	if score > 1 {
		score = 1
	}
	return score
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if strings.EqualFold(existing, s) {
			return list
		}
	}
	return append(list, s)
}
