// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curate

import "regexp"

// Term is a named vocabulary entry.
type Term struct {
	Name    string
	Pattern *regexp.Regexp
}

// Vocabulary is the fixed entity and risk data the curator extracts with.
// Order matters: tools and industries are reported in vocabulary order and
// the first matching role wins.
type Vocabulary struct {
	Tools      []Term
	Roles      []Term
	Industries []Term

	// HighRisk patterns mark security and breach topics.
	HighRisk []*regexp.Regexp

	// MediumRisk patterns mark compliance and regulatory topics.
	MediumRisk []*regexp.Regexp
}

func term(name, pattern string) Term {
	return Term{Name: name, Pattern: regexp.MustCompile(pattern)}
}

// DefaultVocabulary returns the tools, roles and industries relevant to
// AI guides for small businesses.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Tools: []Term{
			term("ChatGPT", `(?i)\bchat\s?gpt\b`),
			term("Claude", `(?i)\bclaude\b`),
			term("Microsoft Copilot", `(?i)\bcopilot\b`),
			term("Gemini", `(?i)\bgemini\b`),
			term("Perplexity", `(?i)\bperplexity\b`),
			term("DeepL", `(?i)\bdeepl\b`),
			term("Midjourney", `(?i)\bmidjourney\b`),
			term("Zapier", `(?i)\bzapier\b`),
			term("Make", `(?i)\bmake\.com\b`),
			term("n8n", `(?i)\bn8n\b`),
			term("Notion AI", `(?i)\bnotion\b`),
		},
		Roles: []Term{
			term("Marketing", `(?i)(marketing|social media|newsletter|seo\b)`),
			term("Vertrieb", `(?i)(vertrieb|sales|verkauf|akquise|angebot)`),
			term("Buchhaltung", `(?i)(buchhaltung|rechnung|finanz|accounting|steuer)`),
			term("Personal", `(?i)(personalabteilung|\bhr\b|recruiting|bewerb|onboarding)`),
			term("Kundenservice", `(?i)(kundenservice|kundensupport|customer service|support)`),
			term("Geschäftsführung", `(?i)(geschäftsführ|management|\bceo\b|strategie)`),
		},
		Industries: []Term{
			term("Handwerk", `(?i)(handwerk|schreiner|elektriker|maler|installateur)`),
			term("Einzelhandel", `(?i)(einzelhandel|retail|e-commerce|onlineshop|online-shop)`),
			term("Gesundheitswesen", `(?i)(gesundheit|arztpraxis|klinik|pflege|healthcare)`),
			term("Gastronomie", `(?i)(gastronomie|restaurant|hotel|café)`),
			term("Immobilien", `(?i)(immobilien|makler|hausverwaltung)`),
			term("Rechts- und Steuerberatung", `(?i)(kanzlei|steuerberat|rechtsanw|anwalt)`),
			term("Produktion", `(?i)(produktion|fertigung|manufactur|industrie 4)`),
			term("Logistik", `(?i)(logistik|spedition|lager|versand)`),
		},
		HighRisk: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(sicherheitslücke|schwachstelle|datenleck|data breach|breach|gehackt|hack|vulnerab|malware|phishing|ransomware|security|sicherheit)`),
		},
		MediumRisk: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(dsgvo|gdpr|datenschutz|compliance|regulier|regulation|ai act|ki-verordnung|haftung|urheberrecht|copyright)`),
		},
	}
}
