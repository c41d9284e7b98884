// Package jisho implements provider.KanjiProvider by scraping the kanji
// detail pages of jisho.org.
package jisho

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/heartmarshall/nihongo-dataset/internal/domain"
	"github.com/heartmarshall/nihongo-dataset/internal/provider"
)

const (
	defaultBaseURL   = "https://jisho.org"
	defaultUserAgent = "nihongo-dataset/1.0"
	providerName     = "jisho"
)

// Provider scrapes kanji detail pages from jisho.org.
type Provider struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider with the public jisho.org URL.
func NewProvider(logger *slog.Logger) *Provider {
	return NewProviderWithURL(defaultBaseURL, "", logger)
}

// NewProviderWithURL creates a Provider with a custom base URL and user agent
// (for mirrors and tests). Empty values fall back to the defaults.
func NewProviderWithURL(baseURL, userAgent string, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logger.With("adapter", providerName),
	}
}

// Name implements provider.KanjiProvider.
func (p *Provider) Name() string { return providerName }

// FetchKanji fetches and parses the detail page of one kanji.
// Returns nil, nil if jisho has no entry for it. Failed requests are not retried.
func (p *Provider) FetchKanji(ctx context.Context, kanji string) (*provider.KanjiResult, error) {
	reqURL := p.baseURL + "/search/" + url.PathEscape(kanji+" #kanji")

	p.log.DebugContext(ctx, "jisho request", slog.String("kanji", kanji))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("jisho: create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jisho: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jisho: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("jisho: parse html: %w", err)
	}

	result, err := parseKanjiPage(doc, kanji)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	p.log.DebugContext(ctx, "jisho response",
		slog.String("kanji", kanji),
		slog.Int("meanings", len(result.Meanings)),
		slog.Int("kun", len(result.KunReadings)),
		slog.Int("on", len(result.OnReadings)),
	)

	return result, nil
}

// parseKanjiPage extracts the kanji details block. It returns nil, nil when
// the page has no details block (jisho answers unknown kanji with an empty
// search page, not a 404).
func parseKanjiPage(doc *goquery.Document, kanji string) (*provider.KanjiResult, error) {
	details := doc.Find(".kanji-details__main").First()
	if details.Length() == 0 {
		return nil, nil
	}

	result := &provider.KanjiResult{
		Kanji:       kanji,
		Meanings:    []string{},
		KunReadings: []string{},
		OnReadings:  []string{},
	}

	if raw := collapse(doc.Find(".kanji-details__stroke_count strong").First().Text()); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("jisho: stroke count %q: %w", raw, domain.ErrMalformed)
		}
		result.Strokes = &n
	}

	for _, m := range strings.Split(doc.Find(".kanji-details__main-meanings").First().Text(), ",") {
		if m = collapse(m); m != "" {
			result.Meanings = append(result.Meanings, m)
		}
	}

	readings := doc.Find(".kanji-details__main-readings").First()
	result.KunReadings = readingList(readings.Find("dl.kun_yomi dd a"))
	result.OnReadings = readingList(readings.Find("dl.on_yomi dd a"))

	basis, meaning := parseRadical(doc)
	result.RadicalBasis = basis
	result.RadicalMeaning = meaning

	return result, nil
}

// parseRadical reads the radical block: the meaning sits in its own span,
// the radical character is the remaining text of the enclosing span.
func parseRadical(doc *goquery.Document) (basis, meaning *string) {
	m := doc.Find(".radicals .radical_meaning").First()
	if m.Length() == 0 {
		return nil, nil
	}
	if v := collapse(m.Text()); v != "" {
		meaning = &v
	}

	holder := m.Parent().Clone()
	holder.Find(".radical_meaning").Remove()
	if v := collapse(holder.Text()); v != "" {
		basis = &v
	}
	return basis, meaning
}

func readingList(sel *goquery.Selection) []string {
	out := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		if v := collapse(s.Text()); v != "" {
			out = append(out, v)
		}
	})
	return out
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
