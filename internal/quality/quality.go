// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quality grades guide submissions on an additive 0-100 rubric and
// produces an ordered list of improvement suggestions.
//
// Every axis is capped and monotone in its input: more steps, more
// examples, more distinct tools or more descriptive text never lower the
// axis score, so improving one axis never lowers the total.
package quality

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/guide-curator/pkg/types"
)

// Axis caps.
const (
	MaxTextLength   = 20
	MaxSteps        = 25
	MaxExamples     = 20
	MaxTools        = 10
	MaxStructure    = 10
	MaxDensity      = 10
	MaxTitleQuality = 5

	maxPerSignalGroup = 3
	maxSuggestions    = 5
)

// Submission is the document being graded.
type Submission struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Steps       []string `json:"steps" yaml:"steps"`
	Examples    []string `json:"examples" yaml:"examples"`
	Tools       []string `json:"tools" yaml:"tools"`
}

// Breakdown holds the per-axis scores.
type Breakdown struct {
	TextLength   int `json:"textLength"`
	Steps        int `json:"steps"`
	HasExamples  int `json:"hasExamples"`
	Tools        int `json:"tools"`
	Structure    int `json:"structure"`
	Density      int `json:"density"`
	TitleQuality int `json:"titleQuality"`
}

// Sum adds up all axes.
func (b Breakdown) Sum() int {
	return b.TextLength + b.Steps + b.HasExamples + b.Tools + b.Structure + b.Density + b.TitleQuality
}

// Result is the graded submission.
type Result struct {
	Total       int                   `json:"total"`
	Breakdown   Breakdown             `json:"breakdown"`
	Category    types.QualityCategory `json:"category"`
	Suggestions []string              `json:"suggestions"`
}

// SignalGroup is a family of descriptive terms. Each matched term adds one
// density point, up to three per group.
type SignalGroup struct {
	Name  string
	Terms []string
}

// Vocabulary is the term data the scorer matches against. Terms are
// lowercase substrings.
type Vocabulary struct {
	Signals      []SignalGroup
	ActionWords  []string
	GenericWords []string
}

// Scorer grades submissions with a fixed vocabulary.
type Scorer struct {
	vocab Vocabulary
}

// New returns a Scorer. A zero Vocabulary uses DefaultVocabulary.
func New(v Vocabulary) *Scorer {
	if len(v.Signals) == 0 && len(v.ActionWords) == 0 && len(v.GenericWords) == 0 {
		v = DefaultVocabulary()
	}
	return &Scorer{vocab: v}
}

var (
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
	paragraphSplit = regexp.MustCompile(`\n\s*\n`)
)

// Score grades doc.
func (s *Scorer) Score(doc Submission) Result {
	b := Breakdown{
		TextLength:   textLengthScore(utf8.RuneCountInString(strings.TrimSpace(doc.Title)) + utf8.RuneCountInString(strings.TrimSpace(doc.Description))),
		Steps:        stepsScore(countNonEmpty(doc.Steps)),
		HasExamples:  examplesScore(countNonEmpty(doc.Examples)),
		Tools:        toolsScore(countDistinct(doc.Tools)),
		Structure:    structureScore(doc.Title, doc.Description),
		Density:      s.densityScore(doc),
		TitleQuality: s.titleScore(doc.Title),
	}
	total := min(b.Sum(), 100)
	category := Categorize(total)
	return Result{
		Total:       total,
		Breakdown:   b,
		Category:    category,
		Suggestions: suggestions(category, b, doc),
	}
}

// Categorize maps a total onto its band.
func Categorize(total int) types.QualityCategory {
	switch {
	case total >= 85:
		return types.QualityExcellent
	case total >= 70:
		return types.QualityGood
	case total >= 50:
		return types.QualityFair
	default:
		return types.QualityPoor
	}
}

func textLengthScore(n int) int {
	switch {
	case n >= 500:
		return 20
	case n >= 300:
		return 15
	case n >= 150:
		return 10
	case n >= 50:
		return 5
	}
	return 0
}

func stepsScore(n int) int {
	if n >= 5 {
		return MaxSteps
	}
	return n * 5
}

func examplesScore(n int) int {
	switch {
	case n >= 3:
		return 20
	case n == 2:
		return 14
	case n == 1:
		return 7
	}
	return 0
}

func toolsScore(n int) int {
	switch {
	case n >= 3:
		return 10
	case n == 2:
		return 7
	case n == 1:
		return 4
	}
	return 0
}

func structureScore(title, description string) int {
	score := 0
	if n := utf8.RuneCountInString(strings.TrimSpace(title)); n >= 10 && n <= 80 {
		score += 3
	}

	desc := strings.TrimSpace(description)
	switch sentences := countSentences(desc); {
	case sentences >= 3:
		score += 3
	case sentences >= 1:
		score++
	}
	if strings.HasSuffix(desc, ".") || strings.HasSuffix(desc, "!") || strings.HasSuffix(desc, "?") {
		score += 2
	}
	if countParagraphs(desc) >= 2 {
		score += 2
	}
	return score
}

func (s *Scorer) densityScore(doc Submission) int {
	text := strings.ToLower(strings.Join([]string{
		doc.Title,
		doc.Description,
		strings.Join(doc.Steps, " "),
		strings.Join(doc.Examples, " "),
	}, " "))

	total := 0
	for _, g := range s.vocab.Signals {
		hits := 0
		for _, term := range g.Terms {
			if strings.Contains(text, term) {
				hits++
			}
		}
		total += min(hits, maxPerSignalGroup)
	}
	return min(total, MaxDensity)
}

func (s *Scorer) titleScore(title string) int {
	words := strings.Fields(strings.ToLower(title))
	if len(words) == 0 {
		return 0
	}

	score := 0
	if len(words) >= 3 && len(words) <= 12 {
		score += 2
	}
	lower := strings.Join(words, " ")
	for _, a := range s.vocab.ActionWords {
		if strings.Contains(lower, a) {
			score += 2
			break
		}
	}

	generic := make(map[string]bool, len(s.vocab.GenericWords))
	for _, g := range s.vocab.GenericWords {
		generic[g] = true
	}
	for _, w := range words {
		if !generic[strings.Trim(w, ".,:;!?-")] {
			score++
			break
		}
	}
	return score
}

func suggestions(category types.QualityCategory, b Breakdown, doc Submission) []string {
	out := []string{headline(category)}
	add := func(cond bool, msg string) {
		if cond && len(out) < maxSuggestions {
			out = append(out, msg)
		}
	}

	add(b.Steps < MaxSteps, fmt.Sprintf("Add at least 5 concrete steps (currently %d)", countNonEmpty(doc.Steps)))
	add(b.HasExamples < MaxExamples, fmt.Sprintf("Add %d more examples with real input and output", max(3-countNonEmpty(doc.Examples), 1)))
	add(b.TextLength < MaxTextLength, "Expand the description to at least 500 characters")
	add(b.Tools < MaxTools, "Name the tools you use, ideally three or more")
	add(b.Structure < MaxStructure, "Write complete sentences and split the description into paragraphs")
	add(b.Density < MaxDensity, "Say who the guide is for, what it achieves and add specifics such as time saved")
	add(b.TitleQuality < MaxTitleQuality, "Use a title of 3 to 12 words that starts with what the reader will do")
	return out
}

func headline(c types.QualityCategory) string {
	switch c {
	case types.QualityExcellent:
		return "Ready for publication"
	case types.QualityGood:
		return "Good guide: a few refinements before publication"
	case types.QualityFair:
		return "Solid start: needs more detail before publication"
	default:
		return "Needs deep improvement before publication"
	}
}

func countNonEmpty(xs []string) int {
	n := 0
	for _, x := range xs {
		if strings.TrimSpace(x) != "" {
			n++
		}
	}
	return n
}

func countDistinct(xs []string) int {
	seen := make(map[string]bool, len(xs))
	for _, x := range xs {
		if k := strings.ToLower(strings.TrimSpace(x)); k != "" {
			seen[k] = true
		}
	}
	return len(seen)
}

func countSentences(s string) int {
	n := 0
	for _, part := range sentenceSplit.Split(s, -1) {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}

func countParagraphs(s string) int {
	n := 0
	for _, part := range paragraphSplit.Split(s, -1) {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}
