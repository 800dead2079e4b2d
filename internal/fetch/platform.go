// Package fetch - platform.go detects known job boards and picks the
// selectors that isolate the posting text on each of them.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board.
type Platform string

const (
	// PlatformHH is hh.ru (HeadHunter)
	PlatformHH Platform = "hh"
	// PlatformHabr is career.habr.com
	PlatformHabr Platform = "habr"
	// PlatformSuperJob is superjob.ru
	PlatformSuperJob Platform = "superjob"
	// PlatformUnknown is an unrecognized board
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the job board from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	if host == "hh.ru" || strings.HasSuffix(host, ".hh.ru") {
		return PlatformHH
	}

	if strings.Contains(host, "career.habr.com") {
		return PlatformHabr
	}

	if strings.Contains(host, "superjob.ru") {
		return PlatformSuperJob
	}

	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors for a specific board.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformHH:
		return []string{
			"[data-qa='vacancy-description']",
			".vacancy-description",
			".g-user-content",
			".vacancy-section",
		}
	case PlatformHabr:
		return []string{
			".vacancy-description__text",
			".job_show_description",
			".basic-section",
		}
	case PlatformSuperJob:
		return []string{
			"[class*='vacancy-description']",
			".VacancyView",
			"[class*='_3eWXu']",
		}
	default:
		return VacancySelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a board.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		// Application forms and response buttons
		"form",
		"[data-qa='vacancy-response-link-top']",
		"[data-qa='vacancy-response']",
		".apply-button-container",

		// Similar vacancies and recommendations
		"[data-qa='similar-vacancies']",
		".similar-vacancies",
		".vacancy-recommendations",

		// Social and share buttons
		".social-share",
		".share-buttons",
		".social-links",

		// Cookie and consent
		".cookie-banner",
		".cookie-consent",
	}

	switch platform {
	case PlatformHH:
		return append(common,
			"[data-qa='vacancy-company']",
			".vacancy-actions",
			".bloko-tag-list",
		)
	case PlatformHabr:
		return append(common,
			".vacancy-company",
			".vacancy-actions",
			".similar_vacancies",
		)
	case PlatformSuperJob:
		return append(common,
			"[class*='vacancy-actions']",
			"[class*='response-button']",
		)
	default:
		return common
	}
}
