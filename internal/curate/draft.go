// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/guide-curator/pkg/types"
)

const (
	maxSummaryRunes = 600
	maxSteps        = 10
	maxFallback     = 5
	maxExamples     = 5
)

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]*`)

// BuildDraft turns an evaluated item into a pending draft. Steps come
// from list items in the item's HTML body, falling back to summary
// sentences; examples come from quotes and code blocks. ID and slug are
// assigned by the store.
func BuildDraft(item types.ContentItem, ev Evaluation) types.DraftDocument {
	body := item.RawPayload[types.RawContent]
	if body == "" {
		body = item.RawPayload[types.RawDescription]
	}
	steps, examples := extractStructure(body)
	if len(steps) == 0 {
		steps = sentences(item.Summary, maxFallback)
	}

	return types.DraftDocument{
		Title:        item.Title,
		Summary:      truncateWords(item.Summary, maxSummaryRunes),
		Steps:        steps,
		Examples:     examples,
		Role:         ev.SuggestedRole,
		Industries:   nonNil(ev.SuggestedIndustries),
		Tools:        nonNil(ev.SuggestedTools),
		EvidenceTier: item.EvidenceTier,
		RiskLevel:    ev.RiskLevel,
		Sources: []types.DraftSource{{
			ContentItemID: item.ID,
			URL:           item.URL,
			Label:         item.SourceID,
		}},
		Status:        types.StatusPending,
		Origin:        types.OriginCuration,
		ContentItemID: item.ID,
	}
}

// extractStructure reads <li> texts as steps and <blockquote>, <pre> and
// stand-alone <code> texts as examples.
func extractStructure(body string) (steps, examples []string) {
	steps, examples = []string{}, []string{}
	if strings.TrimSpace(body) == "" {
		return steps, examples
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return steps, examples
	}

	doc.Find("li").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := collapse(s.Text()); text != "" {
			steps = append(steps, text)
		}
		return len(steps) < maxSteps
	})

	doc.Find("blockquote, pre, code").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Is("code") && s.ParentsFiltered("pre").Length() > 0 {
			return true
		}
		if text := strings.TrimSpace(s.Text()); text != "" {
			examples = append(examples, text)
		}
		return len(examples) < maxExamples
	})
	return steps, examples
}

func sentences(text string, limit int) []string {
	out := []string{}
	for _, m := range sentencePattern.FindAllString(text, -1) {
		if s := collapse(m); s != "" {
			out = append(out, s)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// truncateWords cuts s to at most n runes, backing up to the last space.
func truncateWords(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	cut := string(r[:n])
	if !unicode.IsSpace(r[n]) {
		if i := strings.LastIndexByte(cut, ' '); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimRight(cut, " ,;:")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
