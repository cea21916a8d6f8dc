package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionUp) {
		t.Error("empty frame should have no actions")
	}

	f.Set(ActionUp)
	f.Set(ActionPause)
	clone := f.Clone()
	f.Clear()

	if f.Has(ActionUp) {
		t.Error("Clear should remove actions")
	}
	if !clone.Has(ActionUp) || !clone.Has(ActionPause) {
		t.Error("Clone should be independent of the original")
	}

	var zero InputFrame
	if zero.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionDown)
	if !zero.Has(ActionDown) {
		t.Error("Set on zero frame should work")
	}
}

func TestActionIsDirectional(t *testing.T) {
	for _, a := range []Action{ActionUp, ActionDown, ActionLeft, ActionRight} {
		if !a.IsDirectional() {
			t.Errorf("%v should be directional", a)
		}
	}
	for _, a := range []Action{ActionNone, ActionPause, ActionQuit, ActionConfirm} {
		if a.IsDirectional() {
			t.Errorf("%v should not be directional", a)
		}
	}
}
