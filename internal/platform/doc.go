package platform

// Package platform contains OS integration and song file handling:
// data directory helpers, reveal-in-file-manager, song list import from
// JSON/CSV files and change notification for the songs file.
