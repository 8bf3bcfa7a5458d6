// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quality

// DefaultVocabulary returns the German and English terms used for density
// and title grading.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Signals: []SignalGroup{
			{Name: "purpose", Terms: []string{
				"damit", "um zu", "ziel", "spart", "sparen", "effizien", "so that", "in order to", "goal", "save",
			}},
			{Name: "audience", Terms: []string{
				"mitarbeiter", "kunden", "einsteiger", "anfänger", "unternehmen", "selbstständig",
				"freelancer", "team", "beginner", "small business",
			}},
			{Name: "outcome", Terms: []string{
				"ergebnis", "erhältst", "erhalten", "resultat", "output", "fertig", "bericht", "entwurf", "result",
			}},
			{Name: "specificity", Terms: []string{
				"minuten", "stunden", "prozent", "%", "beispiel", "vorlage", "schritt", "prompt", "konkret", "minutes",
			}},
		},
		ActionWords: []string{
			"erstell", "automatisier", "schreib", "analysier", "plan", "optimier", "generier",
			"nutz", "verbesser", "beantwort", "übersetz", "zusammenfass",
			"create", "write", "automate", "build", "analy", "generate", "summari", "translate",
		},
		GenericWords: []string{
			"ki", "ai", "prompt", "prompts", "tipps", "tricks", "guide", "anleitung", "tool", "tools",
			"hilfe", "chatgpt", "für", "mit", "und", "der", "die", "das", "the", "and", "for", "with", "tips",
		},
	}
}
