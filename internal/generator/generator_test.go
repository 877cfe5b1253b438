package generator

import "testing"

func TestSeededPlacementsAreReproducible(t *testing.T) {
	a := NewSeeded(42).PlaceAll(8, 2)
	b := NewSeeded(42).PlaceAll(8, 2)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("placement %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPlacementBounds(t *testing.T) {
	g := NewSeeded(1)
	for i := 0; i < 500; i++ {
		p := g.Place(3)
		if p.Tilt < -5 || p.Tilt > 5 {
			t.Fatalf("tilt out of range: %d", p.Tilt)
		}
		if p.OffsetX < -3 || p.OffsetX > 3 || p.OffsetY < -3 || p.OffsetY > 3 {
			t.Fatalf("offset out of range: %+v", p)
		}
		if p.Color == "" {
			t.Fatalf("expected a palette color")
		}
	}
	if p := g.Place(0); p.OffsetX != 0 || p.OffsetY != 0 {
		t.Fatalf("expected zero offsets, got %+v", p)
	}
}
