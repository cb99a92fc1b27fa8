package book

import "testing"

// finishFlip replays the two timer messages for the current flip.
func finishFlip(s *State) {
	s.HandleAdvance(FlipAdvanceMsg{Seq: s.seq})
	s.HandleUnlock(FlipUnlockMsg{Seq: s.seq})
}

func TestEmptyBookDisablesNavigation(t *testing.T) {
	s := NewState()
	if s.TotalPages() != 1 {
		t.Fatalf("expected one page (welcome), got %d", s.TotalPages())
	}
	if s.CanNext() || s.CanPrev() {
		t.Fatal("empty book must disable both directions")
	}
	if cmd := s.Next(); cmd != nil {
		t.Fatal("next at last page must be ignored")
	}
	if cmd := s.Prev(); cmd != nil {
		t.Fatal("prev at page 0 must be ignored")
	}
	if s.Index() != 0 {
		t.Fatalf("index moved to %d", s.Index())
	}
}

func TestNextAdvancesThenUnlocks(t *testing.T) {
	s := NewState()
	s.SetRecipeCount(2)

	if cmd := s.Next(); cmd == nil {
		t.Fatal("expected flip to start")
	}
	if !s.Flipping() {
		t.Fatal("expected navigation lock during flip")
	}
	if s.Index() != 0 {
		t.Fatal("index must not move before the advance timer")
	}

	s.HandleAdvance(FlipAdvanceMsg{Seq: s.seq})
	if s.Index() != 1 {
		t.Fatalf("expected index 1 after advance, got %d", s.Index())
	}
	if !s.Flipping() {
		t.Fatal("lock must hold until the unlock timer")
	}

	s.HandleUnlock(FlipUnlockMsg{Seq: s.seq})
	if s.Flipping() {
		t.Fatal("expected unlock after second timer")
	}
}

func TestNavigationIgnoredWhileFlipping(t *testing.T) {
	s := NewState()
	s.SetRecipeCount(3)

	if cmd := s.Next(); cmd == nil {
		t.Fatal("expected flip to start")
	}
	if cmd := s.Next(); cmd != nil {
		t.Fatal("next during a flip must be ignored")
	}
	if cmd := s.Prev(); cmd != nil {
		t.Fatal("prev during a flip must be ignored")
	}

	finishFlip(s)
	if s.Index() != 1 {
		t.Fatalf("ignored requests must not stack, index %d", s.Index())
	}
}

func TestIndexStaysInBounds(t *testing.T) {
	s := NewState()
	s.SetRecipeCount(1)

	if cmd := s.Next(); cmd == nil {
		t.Fatal("expected flip")
	}
	finishFlip(s)
	if s.Index() != 1 {
		t.Fatalf("expected last page, got %d", s.Index())
	}

	if cmd := s.Next(); cmd != nil {
		t.Fatal("next at last page must be ignored")
	}
	if cmd := s.Prev(); cmd == nil {
		t.Fatal("expected backward flip")
	}
	finishFlip(s)
	if s.Index() != 0 {
		t.Fatalf("expected welcome page, got %d", s.Index())
	}
}

func TestStaleTimerIsIgnored(t *testing.T) {
	s := NewState()
	s.SetRecipeCount(2)

	if cmd := s.Next(); cmd == nil {
		t.Fatal("expected flip")
	}
	stale := s.seq
	s.Stop()

	s.HandleAdvance(FlipAdvanceMsg{Seq: stale})
	if s.Index() != 0 {
		t.Fatalf("cancelled flip moved the index to %d", s.Index())
	}
	s.HandleUnlock(FlipUnlockMsg{Seq: stale})
	if s.Flipping() {
		t.Fatal("stop must release the lock")
	}
}

func TestRecipeDeletedStepsBack(t *testing.T) {
	s := NewState()
	s.SetRecipeCount(2)
	s.JumpTo(2)

	s.SetRecipeCount(1)
	s.RecipeDeleted()
	if s.Index() != 1 {
		t.Fatalf("expected index 1 after deleting page 2, got %d", s.Index())
	}

	s.SetRecipeCount(0)
	s.RecipeDeleted()
	if s.Index() != 0 {
		t.Fatalf("expected welcome page after deleting last recipe, got %d", s.Index())
	}

	s.RecipeDeleted()
	if s.Index() != 0 {
		t.Fatal("index must clamp at 0")
	}
}

func TestShrinkingCollectionClampsIndex(t *testing.T) {
	s := NewState()
	s.SetRecipeCount(3)
	s.JumpTo(3)

	s.SetRecipeCount(1)
	if s.Index() != 1 {
		t.Fatalf("expected clamp to last page, got %d", s.Index())
	}
}

func TestJumpToLandsOnNewPage(t *testing.T) {
	s := NewState()
	s.SetRecipeCount(2)

	if cmd := s.Next(); cmd == nil {
		t.Fatal("expected flip")
	}
	stale := s.seq

	// A create completed mid-flip: land on the new last page directly.
	s.SetRecipeCount(3)
	s.JumpTo(3)

	if s.Flipping() {
		t.Fatal("jump must cancel the in-flight flip")
	}
	s.HandleAdvance(FlipAdvanceMsg{Seq: stale})
	if s.Index() != 3 {
		t.Fatalf("stale flip timer moved the index, got %d", s.Index())
	}
}
