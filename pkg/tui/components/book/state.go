// Package book owns the flip-through navigation state for the cookbook:
// the current page index and the two-phase page-flip animation lock.
package book

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// The flip advances the index partway through the animation and releases
// the navigation lock when the animation settles.
const (
	advanceDelay = 300 * time.Millisecond
	unlockDelay  = 600 * time.Millisecond
)

// Direction reports which way the current flip is turning.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// FlipAdvanceMsg fires mid-flip to move the page index.
type FlipAdvanceMsg struct{ Seq int }

// FlipUnlockMsg fires when the flip settles and navigation unlocks.
type FlipUnlockMsg struct{ Seq int }

// State is the book's navigation state. Page 0 is the welcome page;
// pages 1..recipeCount map to recipes in store order. The index always
// stays within [0, recipeCount].
type State struct {
	index       int
	recipeCount int
	flipping    bool
	direction   Direction

	// seq tags each flip's timers so a stale timer from a superseded or
	// cancelled flip cannot mutate state.
	seq int
}

// NewState starts on the welcome page with navigation unlocked.
func NewState() *State {
	return &State{}
}

// Index returns the current page index.
func (s *State) Index() int { return s.index }

// TotalPages counts the welcome page plus one page per recipe.
func (s *State) TotalPages() int { return s.recipeCount + 1 }

// Flipping reports whether a flip animation holds the navigation lock.
func (s *State) Flipping() bool { return s.flipping }

// Direction returns the direction of the most recent flip.
func (s *State) CurrentDirection() Direction { return s.direction }

// CanNext reports whether a forward flip is currently allowed.
func (s *State) CanNext() bool {
	return !s.flipping && s.index < s.TotalPages()-1
}

// CanPrev reports whether a backward flip is currently allowed.
func (s *State) CanPrev() bool {
	return !s.flipping && s.index > 0
}

// Next starts a forward flip. Requests while flipping or at the last page
// are silently ignored and return nil.
func (s *State) Next() tea.Cmd {
	if !s.CanNext() {
		return nil
	}
	return s.startFlip(Forward)
}

// Prev starts a backward flip. Requests while flipping or at page 0 are
// silently ignored and return nil.
func (s *State) Prev() tea.Cmd {
	if !s.CanPrev() {
		return nil
	}
	return s.startFlip(Backward)
}

func (s *State) startFlip(dir Direction) tea.Cmd {
	s.flipping = true
	s.direction = dir
	s.seq++
	seq := s.seq
	return tea.Batch(
		tea.Tick(advanceDelay, func(time.Time) tea.Msg { return FlipAdvanceMsg{Seq: seq} }),
		tea.Tick(unlockDelay, func(time.Time) tea.Msg { return FlipUnlockMsg{Seq: seq} }),
	)
}

// HandleAdvance moves the index for the flip identified by msg. Timers
// from superseded flips are no-ops.
func (s *State) HandleAdvance(msg FlipAdvanceMsg) {
	if msg.Seq != s.seq || !s.flipping {
		return
	}
	if s.direction == Forward {
		s.index++
	} else {
		s.index--
	}
	s.clamp()
}

// HandleUnlock releases the navigation lock for the flip identified by msg.
func (s *State) HandleUnlock(msg FlipUnlockMsg) {
	if msg.Seq != s.seq {
		return
	}
	s.flipping = false
}

// SetRecipeCount records the collection size from the latest snapshot and
// clamps the index into the new page range.
func (s *State) SetRecipeCount(n int) {
	if n < 0 {
		n = 0
	}
	s.recipeCount = n
	s.clamp()
}

// RecipeDeleted adjusts the index after the displayed recipe was removed:
// the collection shrank, so step back one page (never past the welcome
// page). Any in-flight flip is cancelled.
func (s *State) RecipeDeleted() {
	s.cancelFlip()
	if s.index > 0 {
		s.index--
	}
}

// JumpTo moves directly to a page without animating, cancelling any
// in-flight flip. Used to land on a freshly created recipe's page.
func (s *State) JumpTo(index int) {
	s.cancelFlip()
	s.index = index
	s.clamp()
}

// Stop cancels pending flip timers on teardown.
func (s *State) Stop() {
	s.cancelFlip()
}

func (s *State) cancelFlip() {
	s.seq++
	s.flipping = false
}

func (s *State) clamp() {
	if max := s.TotalPages() - 1; s.index > max {
		s.index = max
	}
	if s.index < 0 {
		s.index = 0
	}
}
