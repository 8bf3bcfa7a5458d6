// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

// defaultStopWords covers common German and English function words of
// three or more letters; shorter tokens are dropped by length anyway.
var defaultStopWords = []string{
	// German
	"der", "die", "das", "den", "dem", "des", "ein", "eine", "einen", "einem", "einer", "eines",
	"und", "oder", "aber", "mit", "für", "von", "vom", "zum", "zur", "auf", "aus", "bei",
	"nach", "über", "unter", "vor", "durch", "gegen", "ohne", "wie", "was", "wer", "wir",
	"ihr", "sie", "ich", "du", "ist", "sind", "war", "wird", "werden", "wurde", "hat", "haben",
	"kann", "können", "soll", "sollte", "muss", "nicht", "auch", "noch", "nur", "sich", "dass",
	"diese", "dieser", "dieses", "ihre", "ihren", "ihrem", "sein", "seine", "mehr", "sehr",
	"so", "als", "wenn", "dann", "hier", "dort", "alle", "einfach",
	// English
	"the", "and", "for", "with", "from", "into", "onto", "your", "you", "our", "are", "was",
	"were", "will", "can", "how", "what", "why", "when", "this", "that", "these", "those",
	"has", "have", "had", "not", "but", "all", "any", "use", "using", "about", "more", "its",
}
