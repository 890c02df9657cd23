package terrain

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetterrain/pkg/cubemap"
)

func TestTracker(t *testing.T) {
	const faceRes = 16
	tr := NewTracker(faceRes)

	if _, ok := tr.Base(); ok {
		t.Error("expected no base before the first update")
	}

	c := cubemap.Coords{Face: cubemap.PX, X: 5, Y: 5}
	corners := c.Corners(faceRes)
	inside := c.Center(faceRes).Add(corners[0]).Normalize()
	next := c.Step(faceRes, cubemap.EdgeRight).Center(faceRes)

	steps := []struct {
		name    string
		dir     mgl64.Vec3
		rebuild bool
	}{
		{"first update", c.Center(faceRes), true},
		{"same direction", c.Center(faceRes), false},
		{"same patch", inside, false},
		{"neighbor patch", next, true},
		{"back again", c.Center(faceRes), true},
	}
	for _, s := range steps {
		if got := tr.Update(s.dir); got != s.rebuild {
			t.Errorf("%s: expected rebuild=%v, got %v", s.name, s.rebuild, got)
		}
	}

	if base, ok := tr.Base(); !ok || base != c {
		t.Errorf("expected base %s, got %s (ok=%v)", c, base, ok)
	}

	tr.Reset(faceRes * 3)
	if !tr.Update(c.Center(faceRes)) {
		t.Error("expected rebuild after reset")
	}
	if base, _ := tr.Base(); base != (cubemap.Coords{Face: cubemap.PX, X: 16, Y: 16}) {
		t.Errorf("expected base at tripled resolution, got %s", base)
	}
}
