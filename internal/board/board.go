package board

import (
	"fmt"
	"math"
)

// Ring radii in millimetres, measured to the outside of each wire.
const (
	InnerBullRadius   = 6.35
	OuterBullRadius   = 16.0
	TrebleInnerRadius = 99.0
	TrebleOuterRadius = 107.0
	DoubleInnerRadius = 162.0
	DoubleOuterRadius = 170.0
)

const (
	NumSectors  = 20
	SectorWidth = 360.0 / NumSectors

	InnerBullValue = 50
	OuterBullValue = 25
)

// sectorOrder runs clockwise from the top of the board.
var sectorOrder = [NumSectors]int{20, 1, 18, 4, 13, 6, 10, 15, 2, 17, 3, 19, 7, 16, 8, 11, 14, 9, 12, 5}

// sectorIndex maps a sector value to its clockwise position.
var sectorIndex = func() map[int]int {
	m := make(map[int]int, NumSectors)
	for i, v := range sectorOrder {
		m[v] = i
	}
	return m
}()

type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }

func (p Point) Radius() float64 { return math.Hypot(p.X, p.Y) }

// Bearing is the clockwise angle from the top of the board in [0, 360).
func (p Point) Bearing() float64 {
	b := math.Atan2(p.X, p.Y) * 180 / math.Pi
	if b < 0 {
		b += 360
	}
	if b >= 360 {
		b -= 360
	}
	return b
}

// Rotate turns the point clockwise by deg degrees around the centre.
func (p Point) Rotate(deg float64) Point {
	rad := -deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
}

func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// Polar builds a point from a clockwise bearing in degrees and a radius.
func Polar(bearing, radius float64) Point {
	sin, cos := math.Sincos(bearing * math.Pi / 180)
	return Point{X: radius * sin, Y: radius * cos}
}

type Ring int

const (
	Miss Ring = iota
	InnerBull
	OuterBull
	Single
	Triple
	Double
)

func (r Ring) Multiplier() int {
	switch r {
	case Single:
		return 1
	case Double:
		return 2
	case Triple:
		return 3
	default:
		return 0
	}
}

func (r Ring) String() string {
	switch r {
	case InnerBull:
		return "Inner Bullseye"
	case OuterBull:
		return "Outer Bullseye"
	case Single:
		return "Single"
	case Triple:
		return "Triple"
	case Double:
		return "Double"
	default:
		return "Miss"
	}
}

// RingAt classifies a radius. Each ring owns its outer wire.
func RingAt(r float64) Ring {
	switch {
	case r <= InnerBullRadius:
		return InnerBull
	case r <= OuterBullRadius:
		return OuterBull
	case r <= TrebleInnerRadius:
		return Single
	case r <= TrebleOuterRadius:
		return Triple
	case r <= DoubleInnerRadius:
		return Single
	case r <= DoubleOuterRadius:
		return Double
	default:
		return Miss
	}
}

// Segment is a scoring region. Sector is zero for the bulls and misses.
type Segment struct {
	Ring   Ring `json:"ring"`
	Sector int  `json:"sector"`
}

func (s Segment) Value() int {
	switch s.Ring {
	case InnerBull:
		return InnerBullValue
	case OuterBull:
		return OuterBullValue
	default:
		return s.Sector * s.Ring.Multiplier()
	}
}

func (s Segment) String() string {
	switch s.Ring {
	case Single, Double, Triple:
		return fmt.Sprintf("%s %d", s.Ring, s.Sector)
	default:
		return s.Ring.String()
	}
}

// SectorAt returns the base value of the wedge containing p. The centre
// resolves to the 20.
func SectorAt(p Point) int {
	return SectorAtBearing(p.Bearing())
}

// SectorAtBearing returns the sector under a clockwise bearing in degrees.
// A bearing exactly on a wire belongs to the next sector clockwise.
func SectorAtBearing(bearing float64) int {
	b := math.Mod(bearing, 360)
	if b < 0 {
		b += 360
	}
	idx := int((b+SectorWidth/2)/SectorWidth) % NumSectors
	return sectorOrder[idx]
}

func SegmentAt(p Point) Segment {
	ring := RingAt(p.Radius())
	switch ring {
	case Single, Double, Triple:
		return Segment{Ring: ring, Sector: SectorAt(p)}
	default:
		return Segment{Ring: ring}
	}
}

// ScoreAt returns the points scored by a dart landing at p.
func ScoreAt(p Point) int {
	return SegmentAt(p).Value()
}

// Sectors returns the sector values in clockwise order from the top.
func Sectors() []int {
	out := make([]int, NumSectors)
	copy(out, sectorOrder[:])
	return out
}

// SectorBearing is the clockwise bearing of the centre line of sector n.
func SectorBearing(n int) (float64, error) {
	idx, ok := sectorIndex[n]
	if !ok {
		return 0, fmt.Errorf("board: no sector %d", n)
	}
	return float64(idx) * SectorWidth, nil
}

// TrebleCenter is the midpoint of the treble ring on sector n's centre line.
func TrebleCenter(n int) (Point, error) {
	b, err := SectorBearing(n)
	if err != nil {
		return Point{}, err
	}
	return Polar(b, (TrebleInnerRadius+TrebleOuterRadius)/2), nil
}

func DoubleCenter(n int) (Point, error) {
	b, err := SectorBearing(n)
	if err != nil {
		return Point{}, err
	}
	return Polar(b, (DoubleInnerRadius+DoubleOuterRadius)/2), nil
}
