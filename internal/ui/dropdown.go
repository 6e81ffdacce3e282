package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/ytget/songlist/internal/model"
)

// Dropdown is a trigger label that opens a scrollable option menu in a
// canvas overlay. It is closed by default.
type Dropdown struct {
	widget.BaseWidget

	label     string
	options   []model.Option
	OnChanged func(key string)

	open    bool
	overlay *menuOverlay
}

// NewDropdown creates a dropdown showing label on its trigger
func NewDropdown(label string, options []model.Option, onChanged func(key string)) *Dropdown {
	d := &Dropdown{
		label:     label,
		options:   options,
		OnChanged: onChanged,
	}
	d.ExtendBaseWidget(d)
	return d
}

// SetLabel replaces the trigger text, usually with the current selection
func (d *Dropdown) SetLabel(label string) {
	d.label = label
	d.Refresh()
}

// Label returns the trigger text
func (d *Dropdown) Label() string {
	return d.label
}

// IsOpen reports whether the menu is shown
func (d *Dropdown) IsOpen() bool {
	return d.open
}

// Tapped toggles the menu
func (d *Dropdown) Tapped(*fyne.PointEvent) {
	d.Toggle()
}

// Toggle opens a closed menu and closes an open one
func (d *Dropdown) Toggle() {
	if d.open {
		d.Close()
		return
	}
	d.Open()
}

// Open shows the menu below the trigger
func (d *Dropdown) Open() {
	if d.open {
		return
	}
	c := fyne.CurrentApp().Driver().CanvasForObject(d)
	if c == nil {
		logrus.Debug("Dropdown is not on a canvas, ignoring open")
		return
	}

	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(d)
	d.overlay = newMenuOverlay(d, fyne.NewPos(pos.X, pos.Y+d.Size().Height))
	d.overlay.Resize(c.Size())
	c.Overlays().Add(d.overlay)
	d.open = true
	d.Refresh()
}

// Close hides the menu without selecting anything
func (d *Dropdown) Close() {
	if !d.open {
		return
	}
	if c := fyne.CurrentApp().Driver().CanvasForObject(d); c != nil && d.overlay != nil {
		c.Overlays().Remove(d.overlay)
	}
	d.overlay = nil
	d.open = false
	d.Refresh()
}

func (d *Dropdown) choose(key string) {
	d.Close()
	if d.OnChanged != nil {
		d.OnChanged(key)
	}
}

// handleOverlayTap reacts to a tap that reached the overlay background at
// an absolute canvas position.
func (d *Dropdown) handleOverlayTap(abs fyne.Position) {
	if d.overlay != nil && containsPoint(d.overlay.menuPos, d.overlay.menuSize, abs) {
		return
	}
	// Taps on the trigger toggle, which closes the open menu as well
	d.Close()
}

// CreateRenderer creates the widget renderer
func (d *Dropdown) CreateRenderer() fyne.WidgetRenderer {
	arrow := canvas.NewText(IconDropDown, ColorNeonText)
	text := canvas.NewText(d.label, theme.Color(theme.ColorNameForeground))
	bg := canvas.NewRectangle(ColorPanel)
	r := &dropdownRenderer{d: d, arrow: arrow, text: text, bg: bg}
	r.Refresh()
	return r
}

type dropdownRenderer struct {
	d     *Dropdown
	arrow *canvas.Text
	text  *canvas.Text
	bg    *canvas.Rectangle
}

func (r *dropdownRenderer) Layout(size fyne.Size) {
	pad := theme.InnerPadding()
	r.bg.Resize(size)
	arrowSize := r.arrow.MinSize()
	r.arrow.Move(fyne.NewPos(pad, (size.Height-arrowSize.Height)/2))
	r.arrow.Resize(arrowSize)
	textSize := r.text.MinSize()
	r.text.Move(fyne.NewPos(pad+arrowSize.Width+theme.Padding(), (size.Height-textSize.Height)/2))
	r.text.Resize(textSize)
}

func (r *dropdownRenderer) MinSize() fyne.Size {
	pad := theme.InnerPadding()
	a, t := r.arrow.MinSize(), r.text.MinSize()
	h := fyne.Max(a.Height, t.Height) + pad
	if h < MinTouchTargetSize*0.75 {
		h = MinTouchTargetSize * 0.75
	}
	return fyne.NewSize(a.Width+t.Width+theme.Padding()+pad*2, h)
}

func (r *dropdownRenderer) Refresh() {
	r.text.Text = r.d.label
	if r.d.open {
		r.arrow.Color = ColorNeonAccent
	} else {
		r.arrow.Color = ColorNeonText
	}
	r.arrow.Refresh()
	r.text.Refresh()
	r.bg.Refresh()
}

func (r *dropdownRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.arrow, r.text}
}

func (r *dropdownRenderer) Destroy() {}

// menuOverlay covers the canvas while the menu is open so that taps outside
// the menu can close it
type menuOverlay struct {
	widget.BaseWidget

	dropdown *Dropdown
	menu     fyne.CanvasObject
	menuPos  fyne.Position
	menuSize fyne.Size
}

func newMenuOverlay(d *Dropdown, pos fyne.Position) *menuOverlay {
	items := container.NewVBox()
	for _, opt := range d.options {
		key := opt.Key
		btn := widget.NewButton(opt.Label, func() { d.choose(key) })
		btn.Importance = widget.LowImportance
		btn.Alignment = widget.ButtonAlignLeading
		items.Add(btn)
	}

	height := fyne.Min(items.MinSize().Height, DropdownMenuH)
	width := fyne.Max(items.MinSize().Width, DropdownMenuWidth)

	o := &menuOverlay{
		dropdown: d,
		menu:     container.NewStack(canvas.NewRectangle(ColorPanel), container.NewVScroll(items)),
		menuPos:  pos,
		menuSize: fyne.NewSize(width, height),
	}
	o.ExtendBaseWidget(o)
	return o
}

// Tapped is called for taps that hit no menu item
func (o *menuOverlay) Tapped(ev *fyne.PointEvent) {
	o.dropdown.handleOverlayTap(ev.AbsolutePosition)
}

func (o *menuOverlay) CreateRenderer() fyne.WidgetRenderer {
	return &menuOverlayRenderer{o: o}
}

type menuOverlayRenderer struct {
	o *menuOverlay
}

func (r *menuOverlayRenderer) Layout(fyne.Size) {
	r.o.menu.Move(r.o.menuPos)
	r.o.menu.Resize(r.o.menuSize)
}

func (r *menuOverlayRenderer) MinSize() fyne.Size { return fyne.NewSize(0, 0) }

func (r *menuOverlayRenderer) Refresh() { r.Layout(r.o.Size()) }

func (r *menuOverlayRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.o.menu}
}

func (r *menuOverlayRenderer) Destroy() {}

// containsPoint reports whether p lies inside the rectangle at pos with size
func containsPoint(pos fyne.Position, size fyne.Size, p fyne.Position) bool {
	return p.X >= pos.X && p.X < pos.X+size.Width &&
		p.Y >= pos.Y && p.Y < pos.Y+size.Height
}
