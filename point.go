package abita

// Point is an immutable 2D point on one floor of the building. Equality
// follows the teacher's convention of comparing identifier, coordinates, and
// floor rather than pointer identity, since points are read from a text file
// and re-bound by value.
type Point struct {
	X, Y  float64
	Floor int
	ID    int
}

// NewPoint creates a point. Points are immutable after creation: there is no
// setter, matching spec.md's "Immutable after creation" invariant.
func NewPoint(x, y float64, floor, id int) *Point {
	return &Point{X: x, Y: y, Floor: floor, ID: id}
}

// Equal reports whether two points denote the same location: same
// identifier, or matching coordinates and floor. Either test alone would be
// too strict for points that are re-read from different files but describe
// the same geometry; the original keeps both behaviors reachable by its two
// comparison paths (no/id and x,y/floorId), so both are honored here.
func (p *Point) Equal(o *Point) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.ID == o.ID {
		return true
	}
	return p.X == o.X && p.Y == o.Y && p.Floor == o.Floor
}
