package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionPaint)
	f.SetClick(4, 7, true)
	if !f.Has(ActionPaint) || f.Has(ActionErase) {
		t.Errorf("Has() mismatch: %v", f.Actions)
	}

	clone := f.Clone()
	f.Clear()

	if !f.Empty() {
		t.Error("Clear() should empty the frame")
	}
	if !clone.Has(ActionPaint) || !clone.Click || clone.ClickX != 4 || clone.ClickY != 7 || !clone.ClickRM {
		t.Errorf("Clone() = %+v, expected independent copy", clone)
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionRun) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionRun)
	if !f.Has(ActionRun) {
		t.Error("Set() on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionPlaceSpawn, "PlaceSpawn"},
		{ActionClearGrid, "ClearGrid"},
		{ActionQuit, "Quit"},
		{Action(999), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tt.action, got, tt.expected)
		}
	}
}
