// Package fetch - vacancy.go turns a job posting URL into vacancy text,
// with a key-value cache in front of the network.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/andrei/cv-tailor/internal/store"
)

// DefaultCacheTTL bounds how long an extracted posting is reused before
// fetching it again.
const DefaultCacheTTL = 24 * time.Hour

// RenderFunc renders a page with a headless browser. Swappable in tests.
type RenderFunc func(ctx context.Context, url string, timeout time.Duration) (string, error)

// VacancyFetcher fetches job postings and caches the extracted text.
type VacancyFetcher struct {
	kv       store.Store
	options  *Options
	cacheTTL time.Duration
	render   RenderFunc
}

// VacancyFetcherConfig holds configuration for the vacancy fetcher.
type VacancyFetcherConfig struct {
	CacheTTL time.Duration
	Options  *Options
	Render   RenderFunc
}

// NewVacancyFetcher creates a vacancy fetcher. A nil kv disables caching.
func NewVacancyFetcher(kv store.Store, config *VacancyFetcherConfig) *VacancyFetcher {
	if config == nil {
		config = &VacancyFetcherConfig{}
	}
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultCacheTTL
	}
	if config.Render == nil {
		config.Render = RenderPage
	}
	return &VacancyFetcher{
		kv:       kv,
		options:  config.Options,
		cacheTTL: config.CacheTTL,
		render:   config.Render,
	}
}

// cachedVacancy is the persisted cache envelope for one posting.
type cachedVacancy struct {
	URL       string    `json:"url"`
	Text      string    `json:"text"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Fetch retrieves a posting and returns its extracted text. Fresh cached
// text is reused. When useBrowser is set and the plain fetch yields too
// little text, the page is re-rendered in headless Chrome.
func (f *VacancyFetcher) Fetch(ctx context.Context, urlStr string, useBrowser bool) (string, error) {
	if text, ok := f.fromCache(ctx, urlStr); ok {
		return text, nil
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return "", err
	}

	platform := DetectPlatform(urlStr)
	text, err := ExtractMainText(result.HTML, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to extract posting text", Cause: err}
	}

	if useBrowser && ShouldUseBrowser(text) {
		html, renderErr := f.render(ctx, urlStr, f.options.Timeout)
		if renderErr != nil {
			log.Printf("[fetch] browser fallback for %s failed: %v", urlStr, renderErr)
		} else {
			rendered, extractErr := ExtractMainText(html, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
			if extractErr == nil && len(rendered) > len(text) {
				text = rendered
			}
		}
	}

	if text == "" {
		return "", &Error{URL: urlStr, Message: "no text content found"}
	}

	f.toCache(ctx, urlStr, text)
	return text, nil
}

func cacheKey(urlStr string) string {
	return "vacancyPage:" + urlStr
}

func (f *VacancyFetcher) fromCache(ctx context.Context, urlStr string) (string, bool) {
	if f.kv == nil {
		return "", false
	}

	data, err := f.kv.Load(ctx, cacheKey(urlStr))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("[fetch] cache lookup for %s failed: %v", urlStr, err)
		}
		return "", false
	}

	var cached cachedVacancy
	if err := json.Unmarshal(data, &cached); err != nil {
		log.Printf("[fetch] dropping unreadable cache entry for %s: %v", urlStr, err)
		return "", false
	}

	if time.Since(cached.FetchedAt) > f.cacheTTL {
		return "", false
	}
	return cached.Text, true
}

func (f *VacancyFetcher) toCache(ctx context.Context, urlStr, text string) {
	if f.kv == nil {
		return
	}

	data, err := json.Marshal(cachedVacancy{
		URL:       urlStr,
		Text:      text,
		FetchedAt: time.Now(),
	})
	if err != nil {
		log.Printf("[fetch] failed to encode cache entry for %s: %v", urlStr, err)
		return
	}

	if err := f.kv.Save(ctx, cacheKey(urlStr), data); err != nil {
		log.Printf("[fetch] failed to cache %s: %v", urlStr, err)
	}
}

// Invalidate removes the cached text for a URL so the next fetch is fresh.
func (f *VacancyFetcher) Invalidate(ctx context.Context, urlStr string) error {
	if f.kv == nil {
		return nil
	}

	stale, err := json.Marshal(cachedVacancy{URL: urlStr, FetchedAt: time.Time{}})
	if err != nil {
		return fmt.Errorf("encode stale cache entry: %w", err)
	}
	return f.kv.Save(ctx, cacheKey(urlStr), stale)
}
