package geometry

import "testing"

func TestBoundingBoxEmpty(t *testing.T) {
	bbox := NewBoundingBox()
	if bbox.Valid {
		t.Error("new bounding box should not be valid")
	}
}

func TestBoundingBoxFirstPoint(t *testing.T) {
	bbox := NewBoundingBox()
	p := NewVector3(7, -3, 2)
	bbox.Extend(p)

	if !bbox.Valid {
		t.Fatal("bounding box should be valid after first point")
	}
	if bbox.Min != p || bbox.Max != p {
		t.Errorf("expected both corners %v, got min %v max %v", p, bbox.Min, bbox.Max)
	}
}

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()

	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(4, 5, 6))
	bbox.Extend(NewVector3(-1, 0, 2))

	expectedMin := NewVector3(-1, 0, 2)
	expectedMax := NewVector3(4, 5, 6)

	if bbox.Min != expectedMin {
		t.Errorf("Min failed: expected %v, got %v", expectedMin, bbox.Min)
	}
	if bbox.Max != expectedMax {
		t.Errorf("Max failed: expected %v, got %v", expectedMax, bbox.Max)
	}
}

func TestBoundingBoxSizeAndCenter(t *testing.T) {
	bbox := BoundsOf(NewVector3(0, 0, 0), NewVector3(10, 20, 30))

	if size, expected := bbox.Size(), NewVector3(10, 20, 30); size != expected {
		t.Errorf("Size failed: expected %v, got %v", expected, size)
	}
	if center, expected := bbox.Center(), NewVector3(5, 10, 15); center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
	if d := bbox.MaxDimension(); d != 30 {
		t.Errorf("MaxDimension failed: expected 30, got %v", d)
	}
}

func TestBoundingBoxVolume(t *testing.T) {
	bbox := BoundsOf(NewVector3(0, 0, 0), NewVector3(2, 3, 4))

	// 2 * 3 * 4 = 24
	if volume := bbox.Volume(); !approx(volume, 24) {
		t.Errorf("Volume failed: expected 24, got %v", volume)
	}
}
