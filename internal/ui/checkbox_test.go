package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
)

func TestCheckbox_Uncontrolled(t *testing.T) {
	test.NewApp()
	var got []bool
	cb := NewCheckbox("收藏夹", func(v bool) { got = append(got, v) })
	w := test.NewWindow(cb)
	defer w.Close()

	if cb.Checked() {
		t.Error("Checkbox should start unchecked")
	}

	test.Tap(cb)
	if !cb.Checked() {
		t.Error("Tap should check an uncontrolled checkbox")
	}
	test.Tap(cb)
	if cb.Checked() {
		t.Error("Second tap should uncheck")
	}
	if len(got) != 2 || got[0] != true || got[1] != false {
		t.Errorf("Expected onChanged [true false], got %v", got)
	}
}

func TestCheckbox_DefaultValue(t *testing.T) {
	test.NewApp()
	cb := NewCheckbox("x", nil)
	cb.DefaultValue = true
	w := test.NewWindow(cb)
	defer w.Close()

	if !cb.Checked() {
		t.Error("DefaultValue should be shown before any toggle")
	}
	cb.Toggle()
	if cb.Checked() {
		t.Error("Toggle should flip the default value")
	}
}

func TestCheckbox_Controlled(t *testing.T) {
	test.NewApp()
	var got []bool
	cb := NewControlledCheckbox("x", false, func(v bool) { got = append(got, v) })
	w := test.NewWindow(cb)
	defer w.Close()

	test.Tap(cb)
	if cb.Checked() {
		t.Error("Controlled checkbox must keep the supplied value")
	}
	if len(got) != 1 || !got[0] {
		t.Errorf("Expected onChanged(true), got %v", got)
	}

	cb.SetChecked(true)
	if !cb.Checked() {
		t.Error("SetChecked should update the controlled value")
	}

	cb.SetControlled(nil)
	if cb.IsControlled() {
		t.Error("SetControlled(nil) should release control")
	}
	if cb.Checked() {
		t.Error("Released checkbox should fall back to its default value")
	}
}

func TestCheckbox_Keyboard(t *testing.T) {
	test.NewApp()
	cb := NewCheckbox("x", nil)
	w := test.NewWindow(cb)
	defer w.Close()

	tests := []struct {
		key  fyne.KeyName
		want bool
	}{
		{fyne.KeySpace, true},
		{fyne.KeyReturn, false},
		{fyne.KeyEnter, true},
		{fyne.KeyA, true},
	}

	for _, tt := range tests {
		cb.TypedKey(&fyne.KeyEvent{Name: tt.key})
		if cb.Checked() != tt.want {
			t.Errorf("After %s expected checked=%v", tt.key, tt.want)
		}
	}
}

func TestCheckbox_Focus(t *testing.T) {
	test.NewApp()
	cb := NewCheckbox("x", nil)
	w := test.NewWindow(cb)
	defer w.Close()

	cb.FocusGained()
	if !cb.focused {
		t.Error("FocusGained should mark the checkbox focused")
	}
	cb.FocusLost()
	if cb.focused {
		t.Error("FocusLost should clear focus")
	}
}
