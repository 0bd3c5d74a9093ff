package vision

import (
	"fmt"

	"dungeondelve/server/internal/grid"
)

// State tracks fog-of-war history for one dungeon run. Both bitmaps reset to
// false on generation; visited implies revealed.
type State struct {
	width    int
	height   int
	visited  []bool
	revealed []bool
}

// NewState returns a fully dark visibility state for a width×height grid.
func NewState(width, height int) *State {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("vision: invalid dimensions %dx%d", width, height))
	}
	return &State{
		width:    width,
		height:   height,
		visited:  make([]bool, width*height),
		revealed: make([]bool, width*height),
	}
}

// Visited reports whether the player has physically stood on pos.
func (s *State) Visited(pos grid.Position) bool {
	if !s.inBounds(pos) {
		return false
	}
	return s.visited[pos.Y*s.width+pos.X]
}

// Revealed reports whether pos has ever entered the player's vision.
func (s *State) Revealed(pos grid.Position) bool {
	if !s.inBounds(pos) {
		return false
	}
	return s.revealed[pos.Y*s.width+pos.X]
}

// MarkVisited records that the player stood on pos. Out-of-bounds positions
// are a contract violation since movement pre-validates against the grid.
func (s *State) MarkVisited(pos grid.Position) {
	if !s.inBounds(pos) {
		panic(fmt.Sprintf("vision: position (%d,%d) outside %dx%d bounds", pos.X, pos.Y, s.width, s.height))
	}
	idx := pos.Y*s.width + pos.X
	s.visited[idx] = true
	s.revealed[idx] = true
}

// RevealAround marks every in-bounds cell within Euclidean distance radius of
// center as revealed. Distances compare squared to stay in integer math. The
// revealed set only ever grows.
func (s *State) RevealAround(center grid.Position, radius int) {
	if radius < 0 {
		return
	}
	limit := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > limit {
				continue
			}
			pos := grid.Position{X: center.X + dx, Y: center.Y + dy}
			if !s.inBounds(pos) {
				continue
			}
			s.revealed[pos.Y*s.width+pos.X] = true
		}
	}
}

// RevealedCount returns how many cells have been revealed so far.
func (s *State) RevealedCount() int {
	total := 0
	for _, seen := range s.revealed {
		if seen {
			total++
		}
	}
	return total
}

// VisitedCount returns how many cells the player has stood on.
func (s *State) VisitedCount() int {
	total := 0
	for _, stood := range s.visited {
		if stood {
			total++
		}
	}
	return total
}

func (s *State) inBounds(pos grid.Position) bool {
	return pos.X >= 0 && pos.X < s.width && pos.Y >= 0 && pos.Y < s.height
}
