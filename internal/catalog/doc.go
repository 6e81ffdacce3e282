// Package catalog filters, orders and canonicalizes karaoke songs for display.
//
// Matching is performed on folded text: Traditional Chinese is converted to
// Simplified, full-width characters are narrowed, and the result is case
// folded and NFKC normalized, so "ＡＢＣ", "abc" and "Abc" match each other and
// "後來" matches "后来".
package catalog
