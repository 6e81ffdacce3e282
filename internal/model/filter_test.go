package model

import "testing"

func TestDefaultFilterState(t *testing.T) {
	state := DefaultFilterState()

	if state.Lang != "" || state.Initial != "" || state.Remark != "" {
		t.Errorf("Expected empty text filters, got %+v", state)
	}
	if state.Paid || state.IsLocal {
		t.Errorf("Expected boolean filters to be inactive, got %+v", state)
	}
	if state.SortingMethod != SortDefault {
		t.Errorf("Expected default sorting, got %s", state.SortingMethod)
	}
	if !state.IsDefault() {
		t.Error("DefaultFilterState should report IsDefault")
	}
}

func TestFilterState_WithLanguage(t *testing.T) {
	tests := []struct {
		name     string
		lang     string
		expected string
	}{
		{"chinese", LanguageChinese, LanguageChinese},
		{"japanese", LanguageJapanese, LanguageJapanese},
		{"english", LanguageEnglish, LanguageEnglish},
		{"clear", "", ""},
		{"unsupported clears", "粤语", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := DefaultFilterState().WithLanguage(LanguageChinese).WithLanguage(tt.lang)
			if state.Lang != tt.expected {
				t.Errorf("expected lang %q, got %q", tt.expected, state.Lang)
			}
		})
	}
}

func TestFilterState_WithSortMethod(t *testing.T) {
	state := DefaultFilterState().WithSortMethod(SortFrequently)
	if state.SortingMethod != SortFrequently {
		t.Errorf("Expected %s, got %s", SortFrequently, state.SortingMethod)
	}

	state = state.WithSortMethod(SortMethod("bogus"))
	if state.SortingMethod != SortDefault {
		t.Errorf("Unknown sort method should fall back to default, got %s", state.SortingMethod)
	}
}

func TestFilterState_WithFavoritesDoesNotMutate(t *testing.T) {
	original := DefaultFilterState()
	changed := original.WithFavorites(true)

	if original.IsLocal {
		t.Error("WithFavorites must not mutate the receiver")
	}
	if !changed.IsLocal {
		t.Error("Expected IsLocal to be set on the copy")
	}
	if changed.IsDefault() {
		t.Error("State with favorites should not be default")
	}
}
