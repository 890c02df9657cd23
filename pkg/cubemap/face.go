// Package cubemap addresses square patches of a sphere through a cube projection.
//
// Each of the six cube faces is split into an N×N grid, where N is the face
// resolution. A patch is identified by its face and integer grid position.
// Directions are mapped onto faces with an equal-angle warp so that patches
// cover roughly equal solid angles and face edges stay exactly shared.
package cubemap

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Face identifies one side of the unit cube.
type Face uint8

// Cube faces, named by the axis their outward normal points along.
const (
	PX Face = iota
	NX
	PY
	NY
	PZ
	NZ
)

// Faces lists all faces in index order.
var Faces = [6]Face{PX, NX, PY, NY, PZ, NZ}

var faceNames = [6]string{"+x", "-x", "+y", "-y", "+z", "-z"}

func (f Face) String() string {
	if int(f) < len(faceNames) {
		return faceNames[f]
	}
	return fmt.Sprintf("Face(%d)", uint8(f))
}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	return f <= NZ
}

// ParseFace parses a face name such as "+x", "px" or "-z".
func ParseFace(s string) (Face, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+x", "px":
		return PX, nil
	case "-x", "nx":
		return NX, nil
	case "+y", "py":
		return PY, nil
	case "-y", "ny":
		return NY, nil
	case "+z", "pz":
		return PZ, nil
	case "-z", "nz":
		return NZ, nil
	}
	return 0, fmt.Errorf("unknown cube face %q", s)
}

// basis holds the outward normal and the two in-plane axes of a face.
// Every basis is right-handed: u × v = n.
type basis struct {
	n, u, v mgl64.Vec3
}

var bases = [6]basis{
	PX: {n: mgl64.Vec3{1, 0, 0}, u: mgl64.Vec3{0, 0, -1}, v: mgl64.Vec3{0, 1, 0}},
	NX: {n: mgl64.Vec3{-1, 0, 0}, u: mgl64.Vec3{0, 0, 1}, v: mgl64.Vec3{0, 1, 0}},
	PY: {n: mgl64.Vec3{0, 1, 0}, u: mgl64.Vec3{1, 0, 0}, v: mgl64.Vec3{0, 0, -1}},
	NY: {n: mgl64.Vec3{0, -1, 0}, u: mgl64.Vec3{1, 0, 0}, v: mgl64.Vec3{0, 0, 1}},
	PZ: {n: mgl64.Vec3{0, 0, 1}, u: mgl64.Vec3{1, 0, 0}, v: mgl64.Vec3{0, 1, 0}},
	NZ: {n: mgl64.Vec3{0, 0, -1}, u: mgl64.Vec3{-1, 0, 0}, v: mgl64.Vec3{0, 1, 0}},
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() mgl64.Vec3 {
	return bases[f].n
}

// Axes returns the face's u (grid x) and v (grid y) directions.
func (f Face) Axes() (u, v mgl64.Vec3) {
	return bases[f].u, bases[f].v
}

// Edge names one side of a face or patch in grid space.
type Edge uint8

// Edges in the order Neighbors reports them.
const (
	EdgeLeft   Edge = iota // x - 1
	EdgeRight              // x + 1
	EdgeBottom             // y - 1
	EdgeTop                // y + 1
)

// Edges lists all edges in neighbor order.
var Edges = [4]Edge{EdgeLeft, EdgeRight, EdgeBottom, EdgeTop}

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	case EdgeTop:
		return "top"
	}
	return fmt.Sprintf("Edge(%d)", uint8(e))
}

// vertical reports whether the edge runs along grid y (left and right edges).
func (e Edge) vertical() bool {
	return e == EdgeLeft || e == EdgeRight
}

// crossing describes where a step over a face edge lands.
// The entered patch lies along edge of face; its coordinate parallel to that
// edge equals the source's parallel coordinate, reversed when flip is set.
type crossing struct {
	face Face
	edge Edge
	flip bool
}

// adjacency is the fixed face-edge table derived from bases. Crossing back
// over the returned edge always leads to the original face and edge with the
// same flip.
var adjacency = [6][4]crossing{
	PX: {
		EdgeLeft:   {face: PZ, edge: EdgeRight},
		EdgeRight:  {face: NZ, edge: EdgeLeft},
		EdgeBottom: {face: NY, edge: EdgeRight, flip: true},
		EdgeTop:    {face: PY, edge: EdgeRight},
	},
	NX: {
		EdgeLeft:   {face: NZ, edge: EdgeRight},
		EdgeRight:  {face: PZ, edge: EdgeLeft},
		EdgeBottom: {face: NY, edge: EdgeLeft},
		EdgeTop:    {face: PY, edge: EdgeLeft, flip: true},
	},
	PY: {
		EdgeLeft:   {face: NX, edge: EdgeTop, flip: true},
		EdgeRight:  {face: PX, edge: EdgeTop},
		EdgeBottom: {face: PZ, edge: EdgeTop},
		EdgeTop:    {face: NZ, edge: EdgeTop, flip: true},
	},
	NY: {
		EdgeLeft:   {face: NX, edge: EdgeBottom},
		EdgeRight:  {face: PX, edge: EdgeBottom, flip: true},
		EdgeBottom: {face: NZ, edge: EdgeBottom, flip: true},
		EdgeTop:    {face: PZ, edge: EdgeBottom},
	},
	PZ: {
		EdgeLeft:   {face: NX, edge: EdgeRight},
		EdgeRight:  {face: PX, edge: EdgeLeft},
		EdgeBottom: {face: NY, edge: EdgeTop},
		EdgeTop:    {face: PY, edge: EdgeBottom},
	},
	NZ: {
		EdgeLeft:   {face: PX, edge: EdgeRight},
		EdgeRight:  {face: NX, edge: EdgeLeft},
		EdgeBottom: {face: NY, edge: EdgeBottom, flip: true},
		EdgeTop:    {face: PY, edge: EdgeTop, flip: true},
	},
}

// Adjacent returns the face across edge e of f and the edge of that face
// which is shared with f.
func (f Face) Adjacent(e Edge) (Face, Edge) {
	c := adjacency[f][e]
	return c.face, c.edge
}
