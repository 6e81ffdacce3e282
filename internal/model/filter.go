package model

// Supported song languages for the language filter.
const (
	LanguageChinese  = "华语"
	LanguageJapanese = "日语"
	LanguageEnglish  = "英语"
)

// Languages returns the language filter labels in display order.
func Languages() []string {
	return []string{LanguageChinese, LanguageJapanese, LanguageEnglish}
}

// IsLanguage reports whether lang is one of the supported languages.
func IsLanguage(lang string) bool {
	for _, l := range Languages() {
		if l == lang {
			return true
		}
	}
	return false
}

// FilterState holds every criterion passed to the song filter.
type FilterState struct {
	Lang          string     `json:"lang"`
	Initial       string     `json:"initial"`
	Paid          bool       `json:"paid"`
	Remark        string     `json:"remark"`
	SortingMethod SortMethod `json:"sorting_method"`
	IsLocal       bool       `json:"is_local"`
}

// DefaultFilterState returns a filter state with every filter inactive.
func DefaultFilterState() FilterState {
	return FilterState{SortingMethod: SortDefault}
}

// IsDefault reports whether no filter is active and the default sort is used.
func (f FilterState) IsDefault() bool {
	return f == DefaultFilterState()
}

// WithLanguage returns a copy with the language replaced. An unsupported
// language clears the filter.
func (f FilterState) WithLanguage(lang string) FilterState {
	if !IsLanguage(lang) {
		lang = ""
	}
	f.Lang = lang
	return f
}

// WithFavorites returns a copy with the favorites flag replaced.
func (f FilterState) WithFavorites(isLocal bool) FilterState {
	f.IsLocal = isLocal
	return f
}

// WithSortMethod returns a copy with the sort method replaced. Unknown methods
// fall back to SortDefault.
func (f FilterState) WithSortMethod(m SortMethod) FilterState {
	if !m.IsValid() {
		m = SortDefault
	}
	f.SortingMethod = m
	return f
}
