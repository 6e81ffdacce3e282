package ui

import "testing"

func TestLocalization(t *testing.T) {
	l := NewLocalization()

	if l.GetCurrentLanguage() != "zh" {
		t.Errorf("Expected zh by default, got %s", l.GetCurrentLanguage())
	}
	if l.GetText(KeyFavorites) != "收藏夹" {
		t.Errorf("Expected 收藏夹, got %s", l.GetText(KeyFavorites))
	}

	l.SetLanguage("en")
	if l.GetText(KeyPrev) != "◀ Prev" || l.GetText(KeyNext) != "Next ▶" {
		t.Errorf("Unexpected pager texts %q %q", l.GetText(KeyPrev), l.GetText(KeyNext))
	}

	l.SetLanguage("fr")
	if l.GetCurrentLanguage() != "en" {
		t.Errorf("Unknown language should be ignored, got %s", l.GetCurrentLanguage())
	}

	l.SetLanguage("system")
	if l.GetCurrentLanguage() != "zh" {
		t.Errorf("system should map to zh, got %s", l.GetCurrentLanguage())
	}

	if l.GetText("no_such_key") != "no_such_key" {
		t.Error("Missing key should fall back to the key")
	}
}
