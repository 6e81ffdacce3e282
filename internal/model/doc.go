package model

// Package model defines the song records shown by the picker and the filter
// state that drives the list: languages, sort methods and the display view of
// a song produced by canonicalization.
