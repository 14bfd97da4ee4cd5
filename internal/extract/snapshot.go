// Package extract finds the recruiter message nearest to the focused reply box.
//
// It works on an HTML snapshot of the page plus a selector for the focused
// element. Messaging threads are searched first; an enclosing article is the
// fallback for feed posts.
package extract

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/autoreply/internal/types"
)

// OverlayID is the id of the reply overlay; its text is never captured.
const OverlayID = "autoreply-overlay"

const (
	threadSearchDepth = 12
	minMessageLength  = 4
	maxMessageLength  = 1000
	maxArticleLength  = 2000
	contextMessages   = 3
)

// SystemMessagePrefixes mark platform notices that are not conversation text.
var SystemMessagePrefixes = []string{
	"You are now connected",
	"You accepted",
	"LinkedIn Member",
	"You sent",
}

// focusFallbacks locate the focused element when no selector is supplied.
const focusFallbacks = `[data-autoreply-focus], [autofocus]`

// Snapshot is a serialized page with the focused element identified by selector.
type Snapshot struct {
	HTML          string `json:"html"`
	FocusSelector string `json:"focus_selector,omitempty"`
	URL           string `json:"page_url,omitempty"`
}

// Extractor pulls recruiter context out of a parsed document.
type Extractor struct {
	selectors Selectors
}

// New creates an Extractor for a platform.
func New(platform Platform) *Extractor {
	return &Extractor{selectors: PlatformSelectors(platform)}
}

// ForURL creates an Extractor for the platform serving urlStr.
func ForURL(urlStr string) *Extractor {
	return New(DetectPlatform(urlStr))
}

// ExtractSnapshot parses the snapshot and extracts context from it.
// Only a document that cannot be parsed is an error; every other failure is
// reported in the returned context's Error field.
func ExtractSnapshot(snap Snapshot) (types.RecruiterContext, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snap.HTML))
	if err != nil {
		return types.RecruiterContext{}, &ContextError{Message: "failed to parse page snapshot", Cause: err}
	}

	var focus *goquery.Selection
	if snap.FocusSelector != "" {
		focus = doc.Find(snap.FocusSelector).First()
	} else {
		focus = doc.Find(focusFallbacks).First()
	}

	return ForURL(snap.URL).Extract(doc, focus), nil
}

// Extract returns the context around focus.
func (e *Extractor) Extract(doc *goquery.Document, focus *goquery.Selection) types.RecruiterContext {
	if focus == nil || focus.Length() == 0 {
		return types.ContextFailure(MsgNoFocus)
	}

	if ctx, ok := e.messaging(doc, focus); ok {
		return ctx
	}
	if ctx, ok := e.article(focus); ok {
		return ctx
	}
	return types.ContextFailure(MsgNoMessage)
}

func (e *Extractor) messaging(doc *goquery.Document, focus *goquery.Selection) (types.RecruiterContext, bool) {
	if !isEditable(focus) {
		return types.RecruiterContext{}, false
	}

	body := doc.Find("body").First()
	root := e.threadRoot(focus, body)
	nodes := root.Find(e.selectors.Message)
	if nodes.Length() == 0 && !root.IsSelection(body) {
		nodes = body.Find(e.selectors.Message)
	}
	if nodes.Length() == 0 {
		return types.RecruiterContext{}, false
	}

	var texts []string
	seen := make(map[string]bool)
	nodes.Each(func(_ int, node *goquery.Selection) {
		text := messageText(node)
		if text == "" || seen[text] {
			return
		}
		seen[text] = true
		texts = append(texts, text)
	})
	if len(texts) == 0 {
		return types.RecruiterContext{}, false
	}

	recent := texts[max(0, len(texts)-contextMessages):]
	return types.RecruiterContext{
		PrimaryText: texts[len(texts)-1],
		ContextText: strings.Join(recent, "\n\n"),
	}, true
}

// threadRoot walks up from focus looking for the thread container.
func (e *Extractor) threadRoot(focus, body *goquery.Selection) *goquery.Selection {
	node := focus
	for depth := 0; depth < threadSearchDepth && node.Length() > 0; depth++ {
		if node.Is(e.selectors.Thread) {
			return node
		}
		node = node.Parent()
	}
	return body
}

func messageText(node *goquery.Selection) string {
	if node.Closest("#"+OverlayID).Length() > 0 {
		return ""
	}
	if !isVisible(node) {
		return ""
	}
	if node.Closest(`[contenteditable=true], [role="textbox"]`).Length() > 0 {
		return ""
	}

	text := CollapseWhitespace(innerText(node))
	if utf8.RuneCountInString(text) < minMessageLength {
		return ""
	}
	for _, prefix := range SystemMessagePrefixes {
		if strings.HasPrefix(text, prefix) {
			return ""
		}
	}

	text, _ = truncateRunes(text, maxMessageLength)
	return text
}

func (e *Extractor) article(focus *goquery.Selection) (types.RecruiterContext, bool) {
	if !isEditable(focus) {
		return types.RecruiterContext{}, false
	}

	article := focus.Closest("article")
	if article.Length() == 0 {
		return types.RecruiterContext{}, false
	}

	var candidates []string
	article.Find(e.selectors.Article).Each(func(_ int, p *goquery.Selection) {
		if text := articleText(p); text != "" {
			candidates = append(candidates, text)
		}
	})

	sort.SliceStable(candidates, func(i, j int) bool {
		return utf8.RuneCountInString(candidates[i]) > utf8.RuneCountInString(candidates[j])
	})

	var longForm string
	if len(candidates) > 0 {
		longForm = candidates[0]
	}

	text := longForm
	if text == "" {
		text = articleText(article)
	}
	if text == "" {
		return types.RecruiterContext{}, false
	}

	return types.RecruiterContext{PrimaryText: text, ContextText: text}, true
}

func articleText(node *goquery.Selection) string {
	if !isVisible(node) {
		return ""
	}
	text := CollapseWhitespace(innerText(node))
	if cut, truncated := truncateRunes(text, maxArticleLength); truncated {
		return cut + "…"
	}
	return text
}
