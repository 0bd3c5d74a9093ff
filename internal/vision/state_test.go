package vision

import (
	"testing"

	"dungeondelve/server/internal/grid"
)

func TestNewStateStartsDark(t *testing.T) {
	s := NewState(6, 6)
	if s.RevealedCount() != 0 || s.VisitedCount() != 0 {
		t.Fatalf("fresh state should be fully dark")
	}
}

func TestRevealAroundUsesEuclideanDistance(t *testing.T) {
	s := NewState(9, 9)
	center := grid.Position{X: 4, Y: 4}
	s.RevealAround(center, 2)

	// Radius 2 covers the 13 cells with dx*dx+dy*dy <= 4.
	if got := s.RevealedCount(); got != 13 {
		t.Fatalf("expected 13 revealed cells, got %d", got)
	}
	if !s.Revealed(grid.Position{X: 4, Y: 2}) {
		t.Errorf("cell at straight distance 2 should be revealed")
	}
	if !s.Revealed(grid.Position{X: 5, Y: 5}) {
		t.Errorf("diagonal neighbor should be revealed")
	}
	if s.Revealed(grid.Position{X: 6, Y: 6}) {
		t.Errorf("cell at squared distance 8 should stay dark")
	}
}

func TestRevealAroundClipsAtBounds(t *testing.T) {
	s := NewState(5, 5)
	s.RevealAround(grid.Position{X: 0, Y: 0}, 2)
	if s.RevealedCount() == 0 {
		t.Fatalf("corner reveal should mark in-bounds cells")
	}
	if s.Revealed(grid.Position{X: -1, Y: 0}) {
		t.Fatalf("out-of-bounds query should report false")
	}
}

func TestRevealedSetOnlyGrows(t *testing.T) {
	s := NewState(9, 9)
	s.RevealAround(grid.Position{X: 2, Y: 2}, 2)
	first := s.RevealedCount()
	s.RevealAround(grid.Position{X: 6, Y: 6}, 2)
	if got := s.RevealedCount(); got < first {
		t.Fatalf("revealed count shrank from %d to %d", first, got)
	}
	if !s.Revealed(grid.Position{X: 2, Y: 2}) {
		t.Fatalf("earlier reveal was lost")
	}
}

func TestMarkVisitedImpliesRevealed(t *testing.T) {
	s := NewState(5, 5)
	pos := grid.Position{X: 3, Y: 1}
	s.MarkVisited(pos)
	if !s.Visited(pos) {
		t.Fatalf("position should be visited")
	}
	if !s.Revealed(pos) {
		t.Fatalf("visited position must also be revealed")
	}
}

func TestMarkVisitedPanicsOutOfBounds(t *testing.T) {
	s := NewState(4, 4)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for out-of-bounds mark")
		}
	}()
	s.MarkVisited(grid.Position{X: 9, Y: 9})
}

func TestNegativeRadiusIsNoOp(t *testing.T) {
	s := NewState(5, 5)
	s.RevealAround(grid.Position{X: 2, Y: 2}, -1)
	if s.RevealedCount() != 0 {
		t.Fatalf("negative radius should reveal nothing")
	}
}
