// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Automatisiere Rechnungen mit KI", "automatisiere-rechnungen-mit-ki"},
		{"Größere Übersicht für Bäcker", "groessere-uebersicht-fuer-baecker"},
		{"Café & Crème brûlée", "cafe-creme-brulee"},
		{"  ChatGPT: 5 Tipps!  ", "chatgpt-5-tipps"},
		{"KI---im   Vertrieb", "ki-im-vertrieb"},
		{"", "guide"},
		{"!!! ???", "guide"},
		{"日本語", "guide"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.title))
		})
	}
}

func TestMakeCapsLength(t *testing.T) {
	s := Make(strings.Repeat("abcdefghi ", 20))
	assert.LessOrEqual(t, len(s), MaxLen)
	assert.False(t, strings.HasSuffix(s, "-"))
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "ki-im-vertrieb-2", WithSuffix("ki-im-vertrieb", 2))
	assert.Equal(t, "guide-13", WithSuffix("guide", 13))
}
