package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"github.com/ytget/songlist/internal/model"
)

// LanguageFilterGroup is a row of mutually exclusive language checkboxes.
// Checking a language unchecks the others and unchecking the selected one
// clears the selection.
type LanguageFilterGroup struct {
	languages  []string
	checkboxes []*Checkbox
	selected   string
	onChanged  func(lang string)
	container  *fyne.Container
}

// NewLanguageFilterGroup creates the group for model.Languages
func NewLanguageFilterGroup(onChanged func(lang string)) *LanguageFilterGroup {
	g := &LanguageFilterGroup{
		languages: model.Languages(),
		onChanged: onChanged,
		container: container.NewHBox(),
	}

	for _, lang := range g.languages {
		lang := lang
		cb := NewControlledCheckbox(lang, false, func(checked bool) {
			g.toggle(lang, checked)
		})
		g.checkboxes = append(g.checkboxes, cb)
		g.container.Add(cb)
	}

	return g
}

// Container returns the group's canvas object
func (g *LanguageFilterGroup) Container() *fyne.Container {
	return g.container
}

// Selected returns the selected language or "" when none is selected
func (g *LanguageFilterGroup) Selected() string {
	return g.selected
}

// SetSelected selects lang without firing onChanged. Unknown languages clear
// the selection.
func (g *LanguageFilterGroup) SetSelected(lang string) {
	if !model.IsLanguage(lang) {
		lang = ""
	}
	g.selected = lang
	g.sync()
}

// Checkbox returns the checkbox of lang, or nil
func (g *LanguageFilterGroup) Checkbox(lang string) *Checkbox {
	for i, l := range g.languages {
		if l == lang {
			return g.checkboxes[i]
		}
	}
	return nil
}

func (g *LanguageFilterGroup) toggle(lang string, checked bool) {
	if checked {
		g.selected = lang
	} else if g.selected == lang {
		g.selected = ""
	}
	g.sync()

	if g.onChanged != nil {
		g.onChanged(g.selected)
	}
}

func (g *LanguageFilterGroup) sync() {
	for i, cb := range g.checkboxes {
		cb.SetChecked(g.languages[i] == g.selected)
	}
}
