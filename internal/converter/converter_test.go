package converter

import "testing"

func TestIdentity(t *testing.T) {
	c := Identity()
	for _, text := range []string{"", "晴天", "後來", "abc"} {
		if got := c.TradToSim(text); got != text {
			t.Errorf("Identity().TradToSim(%q) = %q", text, got)
		}
	}
}

func TestNewOrIdentity_NeverNil(t *testing.T) {
	c := NewOrIdentity()
	if c == nil {
		t.Fatal("NewOrIdentity returned nil")
	}
	if got := c.TradToSim(""); got != "" {
		t.Errorf("Expected empty string to stay empty, got %q", got)
	}
}

func TestOpenCCConverter_TradToSim(t *testing.T) {
	c, err := NewOpenCCConverter()
	if err != nil {
		t.Skipf("OpenCC dictionaries not available: %v", err)
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"後來", "后来"},
		{"愛情", "爱情"},
		{"晴天", "晴天"},
		{"Hello", "Hello"},
	}

	for _, test := range tests {
		if got := c.TradToSim(test.input); got != test.expected {
			t.Errorf("TradToSim(%q) = %q, expected %q", test.input, got, test.expected)
		}
	}
}
