package game

import "math"

type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalized returns the unit vector, or the zero vector for zero input.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

func Distance(a, b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Region is an axis-aligned rectangle in world coordinates.
type Region struct {
	Min Vec2 `json:"min" yaml:"min"`
	Max Vec2 `json:"max" yaml:"max"`
}

func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

func (r Region) IsValid() bool {
	return r.Min.IsFinite() && r.Max.IsFinite() && r.Min.X <= r.Max.X && r.Min.Y <= r.Max.Y
}

func (r Region) Width() float64 {
	return r.Max.X - r.Min.X
}

func (r Region) Height() float64 {
	return r.Max.Y - r.Min.Y
}

func (r Region) Diagonal() float64 {
	return math.Hypot(r.Width(), r.Height())
}

func (r Region) Center() Vec2 {
	return Vec2{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

func (r Region) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func (r Region) Clamp(p Vec2) Vec2 {
	return Vec2{
		X: clampFloat(p.X, r.Min.X, r.Max.X),
		Y: clampFloat(p.Y, r.Min.Y, r.Max.Y),
	}
}

// Lerp maps unit coordinates u, v in [0,1) onto the region.
func (r Region) Lerp(u, v float64) Vec2 {
	return Vec2{
		X: r.Min.X + u*r.Width(),
		Y: r.Min.Y + v*r.Height(),
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// stepDelta maps negative, NaN and infinite deltas to zero.
func stepDelta(dt float64) float64 {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return 0
	}
	return dt
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
