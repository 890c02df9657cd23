package terrain

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetterrain/pkg/cubemap"
)

// Tracker decides when the visible chunk set must be rebuilt: only when the
// viewpoint moves into a different base patch.
type Tracker struct {
	faceRes uint32
	base    cubemap.Coords
	valid   bool
}

// NewTracker creates a tracker for the given face resolution.
func NewTracker(faceRes uint32) *Tracker {
	return &Tracker{faceRes: faceRes}
}

// Update records the viewpoint direction and reports whether the base patch
// changed since the last call. The first call always reports true.
func (t *Tracker) Update(dir mgl64.Vec3) bool {
	base := cubemap.FromVector(t.faceRes, dir)
	if t.valid && base == t.base {
		return false
	}
	t.base = base
	t.valid = true
	return true
}

// Base returns the base patch of the last update.
func (t *Tracker) Base() (cubemap.Coords, bool) {
	return t.base, t.valid
}

// Reset makes the next Update report a change, for example after the
// terrain parameters were reloaded.
func (t *Tracker) Reset(faceRes uint32) {
	t.faceRes = faceRes
	t.valid = false
}
