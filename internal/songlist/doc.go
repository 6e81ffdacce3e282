// Package songlist holds the state behind the paginated song list: the
// source catalog, the filtered working list, the current page and the
// number of rows that fit on screen.
//
// Controller is independent of the UI toolkit. The view reports viewport
// changes through Resize and user input through Search, SetLanguage,
// SetFavorites and SetSortMethod, then renders PageItems and PageLabel.
package songlist
