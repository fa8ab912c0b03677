// seehuhn.de/go/vehicle - path kinematics for single-track vehicles
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Frame is the local coordinate frame of the fixed axis at one curve-time.
type Frame struct {
	Bracket  Bracket
	Position r3.Vector // path-local position of the fixed axis
	Deriv    r3.Vector // interpolated derivative, per unit curve-time

	Forward r3.Vector
	Lateral r3.Vector
	Up      r3.Vector

	// Curvature is the interpolated signed curvature.  It is positive for
	// left turns as seen from the tip of Up.
	Curvature float64

	// Center is the rotation center.  It is undefined on straight parts and
	// wherever the two enclosing samples turn into different directions.
	Center OptVec
}

// FrameBuilder constructs local frames along a sampled curve.
type FrameBuilder struct {
	buf *SampleBuffer
	up  r3.Vector
}

// NewFrameBuilder returns a FrameBuilder for the given samples.  The vector
// up must have unit length.
func NewFrameBuilder(buf *SampleBuffer, up r3.Vector) *FrameBuilder {
	return &FrameBuilder{buf: buf, up: up}
}

// FrameAt returns the frame at the given curve-time.
func (fb *FrameBuilder) FrameAt(curveTime float64) *Frame {
	buf := fb.buf
	br := Locate(curveTime, buf.Len())

	fr := &Frame{
		Bracket:  br,
		Position: br.Vector(buf.Points),
		Deriv:    br.Vector(buf.Deriv),
		Up:       fb.up,
	}
	fr.Forward = fr.Deriv.Normalize()
	fr.Lateral = fb.up.Cross(fr.Forward)

	k1 := buf.SignedCurvature(br.I1, fb.up)
	k2 := buf.SignedCurvature(br.I2, fb.up)
	fr.Curvature = lerp(k1, k2, br.Frac)

	c1, c2 := buf.Center[br.I1], buf.Center[br.I2]
	if c1.OK && c2.OK && c1.V.Sub(fr.Position).Dot(c2.V.Sub(fr.Position)) > 0 {
		fr.Center = OptVec{V: lerpVec(c1.V, c2.V, br.Frac), OK: true}
	}

	return fr
}

// Point maps a point given in frame coordinates (forward, lateral, up) to
// path-local coordinates.
func (fr *Frame) Point(local r3.Vector) r3.Vector {
	return fr.Position.
		Add(fr.Forward.Mul(local.X)).
		Add(fr.Lateral.Mul(local.Y)).
		Add(fr.Up.Mul(local.Z))
}

// Matrix returns the frame as a homogeneous transformation from frame
// coordinates to path-local coordinates.
func (fr *Frame) Matrix() mgl64.Mat4 {
	return mgl64.Mat4FromCols(
		vec4(fr.Forward, 0),
		vec4(fr.Lateral, 0),
		vec4(fr.Up, 0),
		vec4(fr.Position, 1),
	)
}

// Rotation returns the orientation part of the frame.
func (fr *Frame) Rotation() mgl64.Mat3 {
	return mgl64.Mat3FromCols(vec3(fr.Forward), vec3(fr.Lateral), vec3(fr.Up))
}

func vec3(v r3.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func vec4(v r3.Vector, w float64) mgl64.Vec4 {
	return mgl64.Vec4{v.X, v.Y, v.Z, w}
}

func fromVec3(v mgl64.Vec3) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}
