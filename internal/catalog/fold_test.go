package catalog

import "testing"

type fakeConverter map[string]string

func (f fakeConverter) TradToSim(text string) string {
	if out, ok := f[text]; ok {
		return out
	}
	return text
}

func TestFolder_Fold(t *testing.T) {
	folder := NewFolder(nil)

	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"   ", ""},
		{"ABC", "abc"},
		{"ＡＢＣ", "abc"},
		{"  Let It Go  ", "let it go"},
		{"晴天", "晴天"},
	}

	for _, test := range tests {
		if got := folder.Fold(test.input); got != test.expected {
			t.Errorf("Fold(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}

func TestFolder_UsesConverter(t *testing.T) {
	folder := NewFolder(fakeConverter{"後來": "后来"})

	if !folder.Contains("后来", "後來") {
		t.Error("Expected Traditional needle to match Simplified haystack")
	}
	if folder.Contains("晴天", "後來") {
		t.Error("Unrelated text should not match")
	}
}

func TestFolder_ContainsEmptyNeedle(t *testing.T) {
	folder := NewFolder(nil)
	if !folder.Contains("anything", " ") {
		t.Error("Empty needle should match everything")
	}
}
