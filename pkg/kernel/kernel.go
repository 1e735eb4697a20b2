// Package kernel is the contract between a drawer-box plan and the
// solid-modeling backend that realizes it.
//
// The planner never builds geometry. It hands each panel to a Kernel as a
// base box, the primitive cutters to subtract from it, and a rigid
// placement. Backends live in subpackages.
package kernel

// Solid is an opaque handle to a backend solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel creates and combines solids.
type Kernel interface {
	// Box returns an x × y × z box with its minimum corner at the origin.
	Box(x, y, z float64) Solid
	// Cylinder returns a cylinder centered on the origin with its axis
	// along Z. Backends with exact curves may ignore segments.
	Cylinder(height, radius float64, segments int) Solid

	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Compound groups solids into one object without requiring that they
	// touch. An empty compound is nil.
	Compound(solids ...Solid) Solid

	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees, X then Y then Z

	ToMesh(s Solid) (*Mesh, error)
}
