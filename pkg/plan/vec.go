package plan

import "fmt"

// Axis identifies one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// Vec3 is a point or extent in model units.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Get returns the component of v along a.
func (v Vec3) Get(a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// With returns a copy of v with the component along a replaced by f.
func (v Vec3) With(a Axis, f float64) Vec3 {
	switch a {
	case AxisX:
		v.X = f
	case AxisY:
		v.Y = f
	default:
		v.Z = f
	}
	return v
}

// IsZero reports whether all components are zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.3f %.3f %.3f)", v.X, v.Y, v.Z)
}

// Box3 is an axis-aligned box given by its minimum corner and extent.
type Box3 struct {
	Min  Vec3 `json:"min"`
	Size Vec3 `json:"size"`
}

// Max returns the maximum corner.
func (b Box3) Max() Vec3 {
	return b.Min.Add(b.Size)
}

// Within reports whether b lies inside the box [0, size] with tolerance eps.
func (b Box3) Within(size Vec3, eps float64) bool {
	lo, hi := b.Min, b.Max()
	for _, a := range []Axis{AxisX, AxisY, AxisZ} {
		if lo.Get(a) < -eps || hi.Get(a) > size.Get(a)+eps {
			return false
		}
	}
	return true
}
