package abita

import "testing"

func TestPointEqualByID(t *testing.T) {
	p1 := NewPoint(0, 0, 0, 5)
	p2 := NewPoint(9, 9, 1, 5)
	if !p1.Equal(p2) {
		t.Errorf("points with the same ID should be equal regardless of coordinates")
	}
}

func TestPointEqualByCoordinates(t *testing.T) {
	p1 := NewPoint(1.5, 2.5, 0, 1)
	p2 := NewPoint(1.5, 2.5, 0, 2)
	if !p1.Equal(p2) {
		t.Errorf("points with matching x/y/floor should be equal regardless of ID")
	}
}

func TestPointNotEqual(t *testing.T) {
	p1 := NewPoint(0, 0, 0, 1)
	p2 := NewPoint(1, 1, 0, 2)
	if p1.Equal(p2) {
		t.Errorf("points with different ID and different coordinates should not be equal")
	}
}
