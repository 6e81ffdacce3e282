package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const checkboxBoxSize float32 = 18

// Checkbox is a labelled toggle. When a checked value is supplied through
// SetChecked or NewControlledCheckbox the widget is controlled: it always
// shows that value and only reports toggles through OnChanged. Otherwise it
// keeps its own state, starting from DefaultValue.
type Checkbox struct {
	widget.BaseWidget

	Label        string
	DefaultValue bool
	OnChanged    func(checked bool)

	controlled *bool
	internal   *bool
	focused    bool
}

// NewCheckbox creates an uncontrolled checkbox
func NewCheckbox(label string, onChanged func(bool)) *Checkbox {
	c := &Checkbox{Label: label, OnChanged: onChanged}
	c.ExtendBaseWidget(c)
	return c
}

// NewControlledCheckbox creates a checkbox whose value is owned by the caller
func NewControlledCheckbox(label string, checked bool, onChanged func(bool)) *Checkbox {
	c := NewCheckbox(label, onChanged)
	c.SetChecked(checked)
	return c
}

// SetControlled switches between controlled (non-nil) and uncontrolled (nil) mode
func (c *Checkbox) SetControlled(checked *bool) {
	if checked == nil {
		c.controlled = nil
	} else {
		v := *checked
		c.controlled = &v
	}
	c.Refresh()
}

// SetChecked sets the controlled value
func (c *Checkbox) SetChecked(checked bool) {
	c.SetControlled(&checked)
}

// IsControlled reports whether the caller owns the value
func (c *Checkbox) IsControlled() bool {
	return c.controlled != nil
}

// Checked returns the displayed value
func (c *Checkbox) Checked() bool {
	if c.controlled != nil {
		return *c.controlled
	}
	if c.internal != nil {
		return *c.internal
	}
	return c.DefaultValue
}

// Toggle flips the value and reports it through OnChanged
func (c *Checkbox) Toggle() {
	next := !c.Checked()
	if c.controlled == nil {
		c.internal = &next
	}
	c.Refresh()
	if c.OnChanged != nil {
		c.OnChanged(next)
	}
}

// Tapped toggles the checkbox and focuses it
func (c *Checkbox) Tapped(*fyne.PointEvent) {
	if cnv := fyne.CurrentApp().Driver().CanvasForObject(c); cnv != nil {
		cnv.Focus(c)
	}
	c.Toggle()
}

// FocusGained is called when the checkbox receives keyboard focus
func (c *Checkbox) FocusGained() {
	c.focused = true
	c.Refresh()
}

// FocusLost is called when the checkbox loses keyboard focus
func (c *Checkbox) FocusLost() {
	c.focused = false
	c.Refresh()
}

// TypedRune is ignored, space arrives as a key event as well
func (c *Checkbox) TypedRune(rune) {}

// TypedKey toggles on Space and Enter
func (c *Checkbox) TypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeySpace, fyne.KeyReturn, fyne.KeyEnter:
		c.Toggle()
	}
}

// CreateRenderer creates the widget renderer
func (c *Checkbox) CreateRenderer() fyne.WidgetRenderer {
	box := canvas.NewRectangle(nil)
	box.StrokeWidth = 2
	fill := canvas.NewRectangle(ColorNeonAccent)
	mark := canvas.NewRectangle(ColorNeonBackground)
	label := canvas.NewText(c.Label, ColorNeonText)
	focus := canvas.NewRectangle(nil)
	focus.StrokeWidth = 1
	focus.StrokeColor = ColorNeonAccent

	r := &checkboxRenderer{c: c, box: box, fill: fill, mark: mark, label: label, focus: focus}
	r.Refresh()
	return r
}

type checkboxRenderer struct {
	c     *Checkbox
	box   *canvas.Rectangle
	fill  *canvas.Rectangle
	mark  *canvas.Rectangle
	label *canvas.Text
	focus *canvas.Rectangle
}

func (r *checkboxRenderer) Layout(size fyne.Size) {
	pad := theme.Padding()
	y := (size.Height - checkboxBoxSize) / 2
	boxPos := fyne.NewPos(pad, y)
	boxSize := fyne.NewSquareSize(checkboxBoxSize)

	r.box.Move(boxPos)
	r.box.Resize(boxSize)
	r.fill.Move(boxPos)
	r.fill.Resize(boxSize)

	inner := checkboxBoxSize * 0.5
	r.mark.Move(fyne.NewPos(boxPos.X+(checkboxBoxSize-inner)/2, boxPos.Y+(checkboxBoxSize-inner)/2))
	r.mark.Resize(fyne.NewSquareSize(inner))

	ls := r.label.MinSize()
	r.label.Move(fyne.NewPos(pad*2+checkboxBoxSize+theme.InnerPadding()/2, (size.Height-ls.Height)/2))
	r.label.Resize(ls)

	r.focus.Resize(size)
}

func (r *checkboxRenderer) MinSize() fyne.Size {
	pad := theme.Padding()
	ls := r.label.MinSize()
	h := fyne.Max(ls.Height, checkboxBoxSize) + pad*2
	return fyne.NewSize(pad*3+checkboxBoxSize+theme.InnerPadding()/2+ls.Width, h)
}

func (r *checkboxRenderer) Refresh() {
	checked := r.c.Checked()
	r.label.Text = r.c.Label
	if checked {
		r.label.Color = ColorNeonAccent
		r.box.StrokeColor = ColorNeonAccent
		r.fill.Show()
		r.mark.Show()
	} else {
		r.label.Color = ColorNeonText
		r.box.StrokeColor = ColorNeonText
		r.fill.Hide()
		r.mark.Hide()
	}
	if r.c.focused {
		r.focus.Show()
	} else {
		r.focus.Hide()
	}
	canvas.Refresh(r.c)
}

func (r *checkboxRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.focus, r.box, r.fill, r.mark, r.label}
}

func (r *checkboxRenderer) Destroy() {}
