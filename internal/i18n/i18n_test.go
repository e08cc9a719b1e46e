package i18n_test

import (
	"strings"
	"testing"

	"github.com/koopa0/scout/internal/i18n"
)

// Language state is package-global, so these tests run sequentially and
// restore English when done.

func TestT(t *testing.T) {
	i18n.SetLanguage(i18n.LangEN)
	defer i18n.SetLanguage(i18n.LangEN)

	t.Run("returns English message", func(t *testing.T) {
		if got := i18n.T("page.loading"); got != "Loading..." {
			t.Errorf("T(page.loading) = %q", got)
		}
	})

	t.Run("unknown key falls back to the key itself", func(t *testing.T) {
		if got := i18n.T("no.such.key"); got != "no.such.key" {
			t.Errorf("T(no.such.key) = %q", got)
		}
	})

	t.Run("Chinese translation", func(t *testing.T) {
		i18n.SetLanguage(i18n.LangZhTW)
		defer i18n.SetLanguage(i18n.LangEN)
		if got := i18n.T("page.loading"); got != "載入中..." {
			t.Errorf("T(page.loading) = %q", got)
		}
	})
}

func TestSprintf(t *testing.T) {
	i18n.SetLanguage(i18n.LangEN)
	defer i18n.SetLanguage(i18n.LangEN)

	got := i18n.Sprintf("page.indicator", 2, 5)
	if got != "Page 2 of 5" {
		t.Errorf("Sprintf(page.indicator, 2, 5) = %q", got)
	}
}

func TestIsLanguageSupported(t *testing.T) {
	tests := []struct {
		lang string
		want bool
	}{
		{"en", true},
		{"EN", true},
		{"zh-TW", true},
		{"zh-tw", true},
		{"fr", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := i18n.IsLanguageSupported(tt.lang); got != tt.want {
			t.Errorf("IsLanguageSupported(%q) = %v, want %v", tt.lang, got, tt.want)
		}
	}
}

func TestMessageParity(t *testing.T) {
	// Every English key must have a Chinese counterpart so no view mixes
	// languages mid-screen.
	i18n.SetLanguage(i18n.LangEN)
	defer i18n.SetLanguage(i18n.LangEN)

	keys := []string{
		"app.description", "page.indicator", "attempts.title",
		"errors.approx.total", "edit.confirm.empty", "entities.title",
		"guild.confirm", "embedding.updated", "assistant.saved",
	}
	for _, key := range keys {
		en := i18n.T(key)
		i18n.SetLanguage(i18n.LangZhTW)
		zh := i18n.T(key)
		i18n.SetLanguage(i18n.LangEN)

		if en == key {
			t.Errorf("missing English message for %q", key)
		}
		if zh == en && !strings.Contains(key, "app.") {
			t.Errorf("key %q has no Chinese translation", key)
		}
	}
}
