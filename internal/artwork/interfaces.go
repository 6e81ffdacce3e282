package artwork

import (
	"context"

	"fyne.io/fyne/v2"
)

// Fetcher retrieves the image behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (fyne.Resource, error)
}

// Loader defines the interface for the artwork service.
type Loader interface {
	SetUpdateCallback(func(url string, res fyne.Resource))
	Request(url string) (fyne.Resource, bool)
	Status(url string) Status
	SetMaxParallel(max int)
	Fallback() fyne.Resource
}
