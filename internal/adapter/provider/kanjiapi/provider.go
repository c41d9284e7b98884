// Package kanjiapi implements provider.KanjiProvider on top of the
// kanjiapi.dev JSON API. The API has no radical data; those fields stay nil.
package kanjiapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/nihongo-dataset/internal/domain"
	"github.com/heartmarshall/nihongo-dataset/internal/provider"
)

const (
	defaultBaseURL = "https://kanjiapi.dev/v1"
	providerName   = "kanjiapi"
)

// Provider fetches kanji data from kanjiapi.dev.
type Provider struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider with the default kanjiapi.dev URL.
func NewProvider(logger *slog.Logger) *Provider {
	return NewProviderWithURL(defaultBaseURL, "", logger)
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL, userAgent string, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
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

// FetchKanji fetches data for one kanji.
// Returns nil, nil if the character is unknown to the API (HTTP 404).
func (p *Provider) FetchKanji(ctx context.Context, kanji string) (*provider.KanjiResult, error) {
	reqURL := p.baseURL + "/kanji/" + url.PathEscape(kanji)

	p.log.DebugContext(ctx, "kanjiapi request", slog.String("kanji", kanji))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("kanjiapi: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kanjiapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kanjiapi: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("kanjiapi: read body: %w", err)
	}

	var payload apiKanji
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("kanjiapi: decode json: %w: %w", domain.ErrMalformed, err)
	}

	result := mapAPIResponse(kanji, payload)

	p.log.DebugContext(ctx, "kanjiapi response",
		slog.String("kanji", kanji),
		slog.Int("status", resp.StatusCode),
		slog.Int("meanings", len(result.Meanings)),
	)

	return result, nil
}

func mapAPIResponse(kanji string, a apiKanji) *provider.KanjiResult {
	result := &provider.KanjiResult{
		Kanji:       kanji,
		Meanings:    nonNil(a.Meanings),
		KunReadings: nonNil(a.KunReadings),
		OnReadings:  nonNil(a.OnReadings),
	}
	if a.StrokeCount > 0 {
		n := a.StrokeCount
		result.Strokes = &n
	}
	return result
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
