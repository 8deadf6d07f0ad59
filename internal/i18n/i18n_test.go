package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		accept   string
		expected language.Tag
	}{
		{"en-US,en;q=0.9", language.English},
		{"de-DE,de;q=0.9", language.German},
		{"fr-FR", language.English}, // Fallback
		{"", language.English},      // Empty
	}

	for _, tt := range tests {
		got := MatchLanguage(tt.accept)
		base, _ := got.Base()
		exp, _ := tt.expected.Base()
		assert.Equal(t, exp, base, "Accept: %s", tt.accept)
	}
}

func TestNewCLIPrinterLocaleEnv(t *testing.T) {
	t.Setenv("LC_ALL", "de_DE.UTF-8")
	p := NewCLIPrinter()
	assert.NotNil(t, p)

	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "")
	p = NewCLIPrinter()
	assert.NotNil(t, p)
}
