package model

// SortMethod selects the ordering applied after filtering.
type SortMethod string

const (
	// SortDefault keeps catalog order
	SortDefault SortMethod = "default"

	// SortNotRecently puts songs that have not been sung for the longest time first
	SortNotRecently SortMethod = "not_recently"

	// SortInfrequently puts the least sung songs first
	SortInfrequently SortMethod = "infrequently"

	// SortRecently puts the most recently sung songs first
	SortRecently SortMethod = "recently"

	// SortFrequently puts the most sung songs first
	SortFrequently SortMethod = "frequently"
)

// Option is a key/label pair offered by a dropdown.
type Option struct {
	Key   string
	Label string
}

// SortMethods returns all sort methods in menu order.
func SortMethods() []SortMethod {
	return []SortMethod{SortDefault, SortNotRecently, SortInfrequently, SortRecently, SortFrequently}
}

// String returns the string representation of SortMethod
func (m SortMethod) String() string {
	return string(m)
}

// IsValid reports whether m is one of the fixed sort methods.
func (m SortMethod) IsValid() bool {
	for _, known := range SortMethods() {
		if m == known {
			return true
		}
	}
	return false
}

// Label returns the menu label of the sort method.
func (m SortMethod) Label() string {
	switch m {
	case SortDefault:
		return "默认歌曲排序"
	case SortNotRecently:
		return "最近没唱过？"
	case SortInfrequently:
		return "唱得比较少？"
	case SortRecently:
		return "最近有唱过？"
	case SortFrequently:
		return "唱得比较多？"
	default:
		return string(m)
	}
}

// SortOptions returns the dropdown options for every sort method.
func SortOptions() []Option {
	methods := SortMethods()
	options := make([]Option, 0, len(methods))
	for _, m := range methods {
		options = append(options, Option{Key: m.String(), Label: m.Label()})
	}
	return options
}
