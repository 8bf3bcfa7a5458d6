// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/guide-curator/pkg/types"
)

// Score bounds for every rule set.
const (
	MinScore = 1
	MaxScore = 10
)

// Predicate reports whether a rule applies to an item.
type Predicate func(types.ContentItem) bool

// Rule adds Delta to a score when When holds.
type Rule struct {
	Name  string
	When  Predicate
	Delta int
}

// RuleSet is a base score plus additive rules, clamped to [1,10].
type RuleSet struct {
	Base  int
	Rules []Rule
}

// Score evaluates every rule in order and clamps the sum.
func (rs RuleSet) Score(item types.ContentItem) int {
	score := rs.Base
	for _, r := range rs.Rules {
		if r.When(item) {
			score += r.Delta
		}
	}
	return max(MinScore, min(MaxScore, score))
}

// Matched returns the names of the rules that apply to item.
func (rs RuleSet) Matched(item types.ContentItem) []string {
	var names []string
	for _, r := range rs.Rules {
		if r.When(item) {
			names = append(names, r.Name)
		}
	}
	return names
}

// RuleSets groups the four scores an evaluation produces.
type RuleSets struct {
	Relevance    RuleSet
	Quality      RuleSet
	Practicality RuleSet
	DSGVO        RuleSet
}

// TextMatches holds when re matches the item's title, summary or tags.
func TextMatches(re *regexp.Regexp) Predicate {
	return func(item types.ContentItem) bool {
		return re.MatchString(itemText(item))
	}
}

// TierIs holds for items of the given evidence tier.
func TierIs(tier types.EvidenceTier) Predicate {
	return func(item types.ContentItem) bool {
		return item.EvidenceTier == tier
	}
}

// TrustIs holds for items whose source has the given trust category.
func TrustIs(category string) Predicate {
	return func(item types.ContentItem) bool {
		return strings.EqualFold(item.TrustCategory, category)
	}
}

// SummaryLongerThan holds when the summary exceeds n runes.
func SummaryLongerThan(n int) Predicate {
	return func(item types.ContentItem) bool {
		return utf8.RuneCountInString(item.Summary) > n
	}
}

func itemText(item types.ContentItem) string {
	return item.Title + "\n" + item.Summary + "\n" + strings.Join(item.Tags, " ")
}

// DefaultRuleSets returns the editorial rules for small-business AI guides.
func DefaultRuleSets() RuleSets {
	re := regexp.MustCompile
	return RuleSets{
		Relevance: RuleSet{Base: 3, Rules: []Rule{
			{"mentions-ai", TextMatches(re(`(?i)\b(ki|ai|künstliche intelligenz|artificial intelligence|chatgpt|gpt-?\d*|llm|claude|copilot|gemini|sprachmodell)\b`)), 3},
			{"business-context", TextMatches(re(`(?i)(unternehmen|mittelstand|kmu|business|firma|betrieb|kunden|selbstständig)`)), 2},
			{"automation", TextMatches(re(`(?i)(automatisier|automation|workflow|prozess)`)), 1},
			{"tier-a", TierIs(types.TierA), 1},
			{"official-source", TrustIs("official"), 1},
		}},
		Quality: RuleSet{Base: 4, Rules: []Rule{
			{"tier-a", TierIs(types.TierA), 3},
			{"tier-b", TierIs(types.TierB), 2},
			{"substantial-summary", SummaryLongerThan(300), 2},
			{"some-summary", SummaryLongerThan(120), 1},
			{"evidence", TextMatches(re(`(?i)(studie|study|prozent|percent|umfrage|survey|daten zeigen)`)), 1},
			{"clickbait", TextMatches(re(`(?i)(unglaublich|schockierend|you won't believe|krass|geheimtipp)`)), -2},
		}},
		Practicality: RuleSet{Base: 3, Rules: []Rule{
			{"how-to", TextMatches(re(`(?i)(anleitung|schritt|how to|how-to|tutorial|leitfaden|praxis|tipps|guide)`)), 3},
			{"named-tool", TextMatches(re(`(?i)(chat\s?gpt|copilot|claude|gemini|deepl|zapier|make\.com|n8n|notion|excel)`)), 2},
			{"template", TextMatches(re(`(?i)(vorlage|template|beispiel|example|prompt)`)), 2},
			{"research-only", TextMatches(re(`(?i)(paper|forschung|research|theorie|benchmark)`)), -2},
		}},
		DSGVO: RuleSet{Base: 1, Rules: []Rule{
			{"data-protection", TextMatches(re(`(?i)(dsgvo|gdpr|datenschutz|privacy|personenbezogen)`)), 5},
			{"regulation", TextMatches(re(`(?i)(ai act|ki-verordnung|compliance|regulierung|regulation)`)), 3},
			{"processing-contract", TextMatches(re(`(?i)(auftragsverarbeitung|\bavv\b|serverstandort|eu-server)`)), 2},
		}},
	}
}
