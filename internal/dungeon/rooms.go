package dungeon

import (
	"math/rand"

	"dungeondelve/server/internal/grid"
)

// Shape tags the carving pattern applied to a room's bounding rectangle.
type Shape int

const (
	ShapeRectangle Shape = iota
	ShapeL
	ShapeT
	ShapeCross
	ShapeU
)

var shapes = []Shape{ShapeRectangle, ShapeL, ShapeT, ShapeCross, ShapeU}

// String returns a label for logs and diagnostics.
func (s Shape) String() string {
	switch s {
	case ShapeRectangle:
		return "rectangle"
	case ShapeL:
		return "l"
	case ShapeT:
		return "t"
	case ShapeCross:
		return "cross"
	case ShapeU:
		return "u"
	default:
		return "unknown"
	}
}

// Room is a generation-time placement candidate. Rooms are discarded once
// corridors are carved; only the grid survives.
type Room struct {
	X      int
	Y      int
	Width  int
	Height int
	Shape  Shape
}

// Center returns the integer-rounded midpoint of the bounding rectangle.
func (r Room) Center() grid.Position {
	return grid.Position{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// roomPadding is the clearance kept between accepted rooms. Padded bounding
// boxes must not intersect, which keeps at least one wall between rooms.
const roomPadding = 2

// overlaps reports whether the padded bounding boxes of two rooms intersect,
// using axis-aligned interval overlap.
func (r Room) overlaps(other Room) bool {
	return r.X-roomPadding < other.X+other.Width+roomPadding &&
		other.X-roomPadding < r.X+r.Width+roomPadding &&
		r.Y-roomPadding < other.Y+other.Height+roomPadding &&
		other.Y-roomPadding < r.Y+r.Height+roomPadding
}

// candidateAttempts bounds the rejection sampling per requested room. When no
// placement is found the room is skipped, never retried.
const candidateAttempts = 30

// sampleRooms draws up to k non-overlapping rooms. The returned slice may be
// shorter than the target; a sparse dungeon is valid output, not an error.
func sampleRooms(cfg Config, rng *rand.Rand) []Room {
	target := RollBetween(rng, cfg.MinRooms, cfg.MaxRooms)
	rooms := make([]Room, 0, target)

	for i := 0; i < target; i++ {
		for attempt := 0; attempt < candidateAttempts; attempt++ {
			candidate, ok := sampleCandidate(cfg, rng)
			if !ok {
				continue
			}
			rejected := false
			for _, accepted := range rooms {
				if candidate.overlaps(accepted) {
					rejected = true
					break
				}
			}
			if rejected {
				continue
			}
			rooms = append(rooms, candidate)
			break
		}
	}
	return rooms
}

// sampleCandidate draws one room with a random size, shape, and origin. The
// origin keeps the room plus its padding inside the outer wall when the grid
// is large enough; on cramped grids the padding requirement relaxes so a
// single room can still fill the whole interior.
func sampleCandidate(cfg Config, rng *rand.Rand) (Room, bool) {
	maxW := cfg.MaxRoomSize
	if limit := cfg.Width - 2; maxW > limit {
		maxW = limit
	}
	maxH := cfg.MaxRoomSize
	if limit := cfg.Height - 2; maxH > limit {
		maxH = limit
	}
	if maxW < 1 || maxH < 1 {
		return Room{}, false
	}
	minW := cfg.MinRoomSize
	if minW > maxW {
		minW = maxW
	}
	minH := cfg.MinRoomSize
	if minH > maxH {
		minH = maxH
	}

	width := RollBetween(rng, minW, maxW)
	height := RollBetween(rng, minH, maxH)

	x, okX := sampleOrigin(rng, cfg.Width, width)
	y, okY := sampleOrigin(rng, cfg.Height, height)
	if !okX || !okY {
		return Room{}, false
	}

	return Room{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Shape:  shapes[rng.Intn(len(shapes))],
	}, true
}

func sampleOrigin(rng *rand.Rand, total, size int) (int, bool) {
	min := 1 + roomPadding
	max := total - 1 - roomPadding - size
	if max < min {
		// Padding cannot fit; fall back to the plain interior range.
		min = 1
		max = total - 1 - size
		if max < min {
			return 0, false
		}
	}
	return RollBetween(rng, min, max), true
}
