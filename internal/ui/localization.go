package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeySearchPlaceholder = "search_placeholder"
	KeyFavorites         = "favorites"
	KeyPrev              = "prev"
	KeyNext              = "next"
	KeyRowHeight         = "row_height"
	KeyListHeight        = "list_height"
	KeyMaxParallel       = "max_parallel"
	KeySongsFile         = "songs_file"
	KeyImport            = "import"
	KeyReload            = "reload"
	KeyReveal            = "reveal"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyImportFailed      = "import_failed"
	KeySongsImported     = "songs_imported"
	KeyLoadFailed        = "load_failed"
	KeyPlayRecorded      = "play_recorded"
	KeyFavoriteFailed    = "favorite_failed"
	KeyListSettings      = "list_settings"
	KeyInterfaceSettings = "interface_settings"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "zh",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" || lang == "" {
		// The list labels are Chinese, so the UI defaults to match
		lang = "zh"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"zh": "中文",
		"en": "English",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Song List",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeySearchPlaceholder: "Search songs, artists, remarks...",
		KeyFavorites:         "Favorites",
		KeyPrev:              IconPrev + " Prev",
		KeyNext:              "Next " + IconNext,
		KeyRowHeight:         "Row Height (px)",
		KeyListHeight:        "List Height (fraction of window)",
		KeyMaxParallel:       "Max Parallel Artwork Downloads",
		KeySongsFile:         "Songs File",
		KeyImport:            "Import Songs...",
		KeyReload:            "Reload",
		KeyReveal:            "Show in Folder",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved",
		KeyImportFailed:      "Import failed",
		KeySongsImported:     "Songs imported",
		KeyLoadFailed:        "Failed to load songs",
		KeyPlayRecorded:      "Play recorded",
		KeyFavoriteFailed:    "Failed to update favorite",
		KeyListSettings:      "List Settings",
		KeyInterfaceSettings: "Interface Settings",
	}

	// 收藏夹 and the pager captions keep the retro list wording
	l.texts["zh"] = map[string]string{
		KeyAppTitle:          "歌单",
		KeySettings:          "设置",
		KeyFile:              "文件",
		KeyLanguage:          "语言",
		KeySearchPlaceholder: "搜索歌名、歌手、备注…",
		KeyFavorites:         "收藏夹",
		KeyPrev:              IconPrev + " Prev",
		KeyNext:              "Next " + IconNext,
		KeyRowHeight:         "行高（像素）",
		KeyListHeight:        "列表高度（窗口比例）",
		KeyMaxParallel:       "封面并发下载数",
		KeySongsFile:         "歌曲文件",
		KeyImport:            "导入歌曲…",
		KeyReload:            "重新加载",
		KeyReveal:            "在文件夹中显示",
		KeySave:              "保存",
		KeyCancel:            "取消",
		KeyBrowse:            "浏览",
		KeySettingsSaved:     "设置已保存",
		KeyImportFailed:      "导入失败",
		KeySongsImported:     "歌曲已导入",
		KeyLoadFailed:        "歌曲加载失败",
		KeyPlayRecorded:      "已记录演唱",
		KeyFavoriteFailed:    "收藏更新失败",
		KeyListSettings:      "列表设置",
		KeyInterfaceSettings: "界面设置",
	}
}
