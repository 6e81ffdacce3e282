package artwork

// Package artwork fetches song cover images in the background. It keeps one
// task per URL, bounds the number of concurrent fetches, caches results in
// memory and substitutes a fallback image for missing or failed artwork.
