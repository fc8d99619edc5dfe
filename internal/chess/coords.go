package chess

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coords is a square on the unbounded board.
type Coords struct {
	X, Y int64
}

// C is shorthand for Coords{x, y}.
func C(x, y int64) Coords {
	return Coords{X: x, Y: y}
}

// Add returns c + o.
func (c Coords) Add(o Coords) Coords {
	return Coords{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns c - o.
func (c Coords) Sub(o Coords) Coords {
	return Coords{X: c.X - o.X, Y: c.Y - o.Y}
}

// Step returns c + k*d.
func (c Coords) Step(d Direction, k int64) Coords {
	return Coords{X: c.X + k*d.DX, Y: c.Y + k*d.DY}
}

// MaxCoord bounds both components of every square in play. Differences
// and line keys of squares within it never overflow.
const MaxCoord int64 = 1 << 53

// InPlay reports whether both components of c lie within ±MaxCoord.
func (c Coords) InPlay() bool {
	return c.X >= -MaxCoord && c.X <= MaxCoord && c.Y >= -MaxCoord && c.Y <= MaxCoord
}

// Parity is 0 or 1 depending on the colour of the square.
func (c Coords) Parity() int {
	return int(PosMod(c.X+c.Y, 2))
}

// String returns "x,y".
func (c Coords) String() string {
	return strconv.FormatInt(c.X, 10) + "," + strconv.FormatInt(c.Y, 10)
}

// ParseCoords parses "x,y".
func ParseCoords(s string) (Coords, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Coords{}, fmt.Errorf("coordinates %q: missing comma", s)
	}
	x, err := strconv.ParseInt(strings.TrimSpace(xs), 10, 64)
	if err != nil {
		return Coords{}, fmt.Errorf("coordinates %q: %w", s, err)
	}
	y, err := strconv.ParseInt(strings.TrimSpace(ys), 10, 64)
	if err != nil {
		return Coords{}, fmt.Errorf("coordinates %q: %w", s, err)
	}
	return Coords{X: x, Y: y}, nil
}

// PosMod returns a mod m in the range [0, m).
func PosMod(a, m int64) int64 {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// FloorDiv returns floor(a / b) for b != 0.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// CeilDiv returns ceil(a / b) for b != 0.
func CeilDiv(a, b int64) int64 {
	return -FloorDiv(-a, b)
}

// Direction is a sliding step vector. Directions are kept in canonical form:
// DX > 0, or DX == 0 and DY > 0, so a line has exactly one Direction.
type Direction struct {
	DX, DY int64
}

// Canonical returns the canonical form of d and the sign that maps it back.
func (d Direction) Canonical() (Direction, int64) {
	if d.DX < 0 || (d.DX == 0 && d.DY < 0) {
		return Direction{DX: -d.DX, DY: -d.DY}, -1
	}
	return d, 1
}

// Vertical reports whether x is constant along d.
func (d Direction) Vertical() bool {
	return d.DX == 0
}

// Axis is the coordinate that strictly increases with each positive step.
func (d Direction) Axis(c Coords) int64 {
	if d.Vertical() {
		return c.Y
	}
	return c.X
}

// StepSize is the change in Axis per step.
func (d Direction) StepSize() int64 {
	if d.Vertical() {
		return d.DY
	}
	return d.DX
}

// LineKey identifies one organised line of a direction.
type LineKey struct {
	C int64 // Standard-form coefficient dx*y - dy*x
	X int64 // Axis intercept modulo the step size
}

// LineKey returns the key of the line through c along d. Any point on the
// same line that is reachable by whole steps yields the same key.
func (d Direction) LineKey(c Coords) LineKey {
	return LineKey{
		C: d.DX*c.Y - d.DY*c.X,
		X: PosMod(d.Axis(c), d.StepSize()),
	}
}

// String returns "C|X".
func (k LineKey) String() string {
	return strconv.FormatInt(k.C, 10) + "|" + strconv.FormatInt(k.X, 10)
}

// StepsBetween returns k such that from + k*d == to. Squares outside
// play are never on a line.
func (d Direction) StepsBetween(from, to Coords) (int64, bool) {
	if !from.InPlay() || !to.InPlay() {
		return 0, false
	}
	delta := to.Sub(from)
	if d.DX*delta.Y-d.DY*delta.X != 0 {
		return 0, false
	}
	var num, den int64
	if d.Vertical() {
		num, den = delta.Y, d.DY
	} else {
		num, den = delta.X, d.DX
	}
	if num%den != 0 {
		return 0, false
	}
	return num / den, true
}

// String returns "dx,dy".
func (d Direction) String() string {
	return strconv.FormatInt(d.DX, 10) + "," + strconv.FormatInt(d.DY, 10)
}

// Less orders directions for deterministic iteration.
func (d Direction) Less(o Direction) bool {
	if d.DX != o.DX {
		return d.DX < o.DX
	}
	return d.DY < o.DY
}

// Unbounded step counts.
const (
	Infinity    int64 = math.MaxInt64
	NegInfinity int64 = math.MinInt64
)

// Range is an inclusive interval of step counts along a direction.
// Min <= 0 <= Max; zero itself is the piece's own square, never a move.
type Range struct {
	Min, Max int64
}

// Unlimited is the range of an uncapped slider.
var Unlimited = Range{Min: NegInfinity, Max: Infinity}

// Contains reports whether k is a move within the range.
func (r Range) Contains(k int64) bool {
	return k != 0 && k >= r.Min && k <= r.Max
}

// Empty reports whether the range holds no moves.
func (r Range) Empty() bool {
	return r.Min >= 0 && r.Max <= 0
}

// Bounded reports whether both ends of the range are finite.
func (r Range) Bounded() bool {
	return r.Min != NegInfinity && r.Max != Infinity
}

// Clamp intersects r with [lo, hi].
func (r Range) Clamp(lo, hi int64) Range {
	if lo > r.Min {
		r.Min = lo
	}
	if hi < r.Max {
		r.Max = hi
	}
	return r
}

// Bounds is a rectangular region, inclusive on all sides.
type Bounds struct {
	Left, Bottom, Right, Top int64
}

// Contains reports whether c lies inside the region.
func (b Bounds) Contains(c Coords) bool {
	return c.X >= b.Left && c.X <= b.Right && c.Y >= b.Bottom && c.Y <= b.Top
}

// StepRange returns the steps k for which from + k*d stays inside b.
// from must itself be inside b.
func (b Bounds) StepRange(from Coords, d Direction) Range {
	r := Unlimited
	r = clampAxis(r, from.X, d.DX, b.Left, b.Right)
	r = clampAxis(r, from.Y, d.DY, b.Bottom, b.Top)
	return r
}

func clampAxis(r Range, pos, delta, lo, hi int64) Range {
	switch {
	case delta > 0:
		return r.Clamp(CeilDiv(lo-pos, delta), FloorDiv(hi-pos, delta))
	case delta < 0:
		return r.Clamp(CeilDiv(hi-pos, delta), FloorDiv(lo-pos, delta))
	}
	return r
}
