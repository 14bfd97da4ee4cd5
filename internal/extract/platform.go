package extract

import (
	"net/url"
	"strings"
)

// Platform represents a known messaging site.
type Platform string

const (
	// PlatformLinkedIn is LinkedIn messaging and feed pages
	PlatformLinkedIn Platform = "linkedin"
	// PlatformGeneric is any other page
	PlatformGeneric Platform = "generic"
)

// Selectors are the CSS selector groups used to find conversation text.
type Selectors struct {
	Thread  string
	Message string
	Article string
}

// DetectPlatform identifies the messaging platform from a page URL.
// An empty or unparseable URL is assumed to be LinkedIn.
func DetectPlatform(urlStr string) Platform {
	if urlStr == "" {
		return PlatformLinkedIn
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" {
		return PlatformLinkedIn
	}

	host := strings.ToLower(parsed.Host)
	if host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com") {
		return PlatformLinkedIn
	}
	return PlatformGeneric
}

// PlatformSelectors returns the selector set for a platform.
func PlatformSelectors(platform Platform) Selectors {
	switch platform {
	case PlatformGeneric:
		return Selectors{
			Thread: strings.Join([]string{
				`[role="log"]`,
				`[data-thread]`,
				`.conversation`,
				`.message-thread`,
			}, ", "),
			Message: strings.Join([]string{
				`[data-message-text]`,
				`.message-body`,
				`.message p`,
			}, ", "),
			Article: articleParagraphs,
		}
	default:
		return Selectors{
			Thread: strings.Join([]string{
				`.msg-s-message-list-container`,
				`.msg-s-message-list`,
				`.msg-s-scrollable`,
				`.msg-convo-wrapper`,
				`[data-view-name="message-thread"]`,
				`[data-test-id="conversation-view"]`,
				`[data-qa="message_thread"]`,
				`[data-test-app="messaging-thread"]`,
			}, ", "),
			Message: strings.Join([]string{
				`[data-anonymize="message-text"]`,
				`.msg-s-event-listitem__body`,
				`.msg-s-message-list__event p`,
				`.msg-s-message-list__event span.break-words`,
				`.msg-s-message-list__event div[dir]`,
				`.msg-s-message-list-item__body`,
				`.msg-conversation-listitem__message-snippet`,
				`.msg-conversation-card__message-snippet`,
				`.msg-s-conversation-card__message-snippet`,
				`.message-anywhere__message p`,
				`.message-anywhere__message span.break-words`,
			}, ", "),
			Article: articleParagraphs,
		}
	}
}

const articleParagraphs = `section p, section span.break-words, div[dir], p`
