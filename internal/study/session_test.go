package study

import "testing"

func TestSession_StartsAtFirstCardHidden(t *testing.T) {
	s := NewSession("deck_1", 3)

	if s.Index != 0 || s.Revealed {
		t.Errorf("fresh session should be at index 0 with answer hidden, got index=%d revealed=%v", s.Index, s.Revealed)
	}
	if s.MasteredCount() != 0 {
		t.Errorf("fresh session should have nothing mastered, got %d", s.MasteredCount())
	}
}

func TestSession_AdvanceWrapsAround(t *testing.T) {
	s := NewSession("deck_1", 3)
	s.Index = 2
	s.Revealed = true

	s.Advance()

	if s.Index != 0 {
		t.Errorf("advance from last card should wrap to 0, got %d", s.Index)
	}
	if s.Revealed {
		t.Error("moving must hide the answer")
	}
}

func TestSession_RetreatWrapsAround(t *testing.T) {
	s := NewSession("deck_1", 3)
	s.Revealed = true

	s.Retreat()

	if s.Index != 2 {
		t.Errorf("retreat from first card should wrap to 2, got %d", s.Index)
	}
	if s.Revealed {
		t.Error("moving must hide the answer")
	}
}

func TestSession_ToggleReveal(t *testing.T) {
	s := NewSession("deck_1", 3)

	s.ToggleReveal()
	if !s.Revealed {
		t.Error("expected answer to show after first toggle")
	}
	s.ToggleReveal()
	if s.Revealed {
		t.Error("expected answer to hide after second toggle")
	}
}

func TestSession_MarkMastered(t *testing.T) {
	s := NewSession("deck_1", 3)
	s.Revealed = true

	s.MarkMastered()

	if !s.IsMastered(0) {
		t.Error("card 0 should be mastered")
	}
	if s.Index != 1 {
		t.Errorf("mastering should advance, got index %d", s.Index)
	}
	if s.Revealed {
		t.Error("mastering must hide the answer")
	}

	// Mastering the same card twice counts once.
	s.Retreat()
	s.MarkMastered()
	if s.MasteredCount() != 1 {
		t.Errorf("expected one mastered card, got %d", s.MasteredCount())
	}
}

func TestSession_EmptyDeckMovesAreNoOps(t *testing.T) {
	s := NewSession("deck_1", 0)

	s.Advance()
	s.Retreat()

	if s.Index != 0 {
		t.Errorf("moves on an empty deck must not change the index, got %d", s.Index)
	}
}
