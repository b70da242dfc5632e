package app

import "testing"

func TestState_PushToast(t *testing.T) {
	s := NewState()

	first := s.PushToast(LevelInfo, "one")
	second := s.PushToast(LevelError, "two")
	if second <= first {
		t.Errorf("ids should increase: %d then %d", first, second)
	}

	toasts := s.Toasts()
	if len(toasts) != 2 || toasts[0].Text != "one" || toasts[1].Level != LevelError {
		t.Errorf("Toasts() = %+v", toasts)
	}

	// The returned slice is a copy.
	toasts[0].Text = "changed"
	if s.Toasts()[0].Text != "one" {
		t.Error("Toasts should not alias internal state")
	}
}

func TestState_PushToast_KeepsNewest(t *testing.T) {
	s := NewState()
	var last int
	for range maxToasts + 3 {
		last = s.PushToast(LevelInfo, "n")
	}

	toasts := s.Toasts()
	if len(toasts) != maxToasts {
		t.Fatalf("len = %d, want %d", len(toasts), maxToasts)
	}
	if toasts[len(toasts)-1].ID != last {
		t.Error("newest toast should be kept")
	}
}

func TestState_DismissToast(t *testing.T) {
	s := NewState()
	a := s.PushToast(LevelInfo, "a")
	b := s.PushToast(LevelInfo, "b")

	s.DismissToast(a)
	s.DismissToast(999)

	toasts := s.Toasts()
	if len(toasts) != 1 || toasts[0].ID != b {
		t.Errorf("Toasts() = %+v, want only %d", toasts, b)
	}
}

func TestState_BusyLabel(t *testing.T) {
	s := NewState()
	if got := s.BusyLabel(); got != "" {
		t.Errorf("idle BusyLabel = %q", got)
	}

	s.SetBusy(ActivityReload, true)
	if got := s.BusyLabel(); got != "Reloading..." {
		t.Errorf("BusyLabel = %q, want Reloading...", got)
	}

	s.SetBusy(ActivityExport, true)
	if got := s.BusyLabel(); got != "Exporting..." {
		t.Errorf("BusyLabel = %q, want Exporting...", got)
	}

	s.SetBusy(ActivityExport, false)
	s.SetBusy(ActivityReload, false)
	if got := s.BusyLabel(); got != "" {
		t.Errorf("BusyLabel after finish = %q", got)
	}
}

func TestLevel_Lifetime(t *testing.T) {
	if LevelError.lifetime() <= LevelSuccess.lifetime() {
		t.Error("errors should stay longer than successes")
	}
	if LevelInfo.lifetime() >= LevelWarning.lifetime() {
		t.Error("info toasts should be the shortest")
	}
}
