package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/ytget/songlist/internal/converter"
)

// Folder normalizes text for matching.
type Folder struct {
	conv converter.TextConverter
}

// NewFolder returns a Folder using conv for script folding. A nil conv
// disables Traditional/Simplified folding.
func NewFolder(conv converter.TextConverter) *Folder {
	if conv == nil {
		conv = converter.Identity()
	}
	return &Folder{conv: conv}
}

// Fold returns the matching key of s.
func (f *Folder) Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = f.conv.TradToSim(s)
	s = width.Narrow.String(s)
	// Casers are stateful and cannot be shared between goroutines.
	s = cases.Fold().String(s)
	return norm.NFKC.String(s)
}

// Contains reports whether the folded haystack contains the folded needle.
func (f *Folder) Contains(haystack, needle string) bool {
	n := f.Fold(needle)
	if n == "" {
		return true
	}
	return strings.Contains(f.Fold(haystack), n)
}
