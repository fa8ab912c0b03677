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
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// SteerSolver computes the direction of the steering axis from the
// rotation centers of the curve samples.
type SteerSolver struct {
	buf *SampleBuffer
	up  r3.Vector
}

// NewSteerSolver returns a SteerSolver for the given samples.
func NewSteerSolver(buf *SampleBuffer, up r3.Vector) *SteerSolver {
	return &SteerSolver{buf: buf, up: up}
}

// Steering describes the steering axis at one point in time.
type Steering struct {
	Position  r3.Vector // ground position of the steering axis
	Direction r3.Vector // unit vector along the steering axis
	Angle     float64   // signed angle from the chassis lateral axis
}

// Direction returns the steering axis direction implied by sample i, for a
// steering axis at steerPos.  The result points towards the turn center,
// or along lateral if the sample has no rotation center.
func (s *SteerSolver) Direction(i int, lateral, steerPos r3.Vector) r3.Vector {
	c := s.buf.Center[i]
	if !c.OK {
		return lateral
	}
	dir := c.V.Sub(steerPos).Normalize()
	if s.buf.Normal[i].V.Dot(s.up) < 0 {
		dir = dir.Mul(-1)
	}
	return dir
}

// Solve computes the steering for the frame fr and the steering axis
// position steerPos.  The directions of both enclosing samples are blended
// before the angle is extracted, so that the angle never wraps.
func (s *SteerSolver) Solve(fr *Frame, steerPos r3.Vector) Steering {
	br := fr.Bracket
	if !s.buf.Center[br.I1].OK && !s.buf.Center[br.I2].OK {
		return Steering{Position: steerPos, Direction: fr.Lateral}
	}

	d1 := s.Direction(br.I1, fr.Lateral, steerPos)
	d2 := s.Direction(br.I2, fr.Lateral, steerPos)

	dir := lerpVec(d1, d2, br.Frac)
	if dir.Norm2() == 0 {
		dir = fr.Lateral
	}
	dir = dir.Normalize()

	cos := max(-1, min(1, fr.Lateral.Dot(dir)))
	angle := math.Acos(cos)
	if fr.Lateral.Cross(dir).Dot(s.up) < 0 {
		angle = -angle
	}

	return Steering{
		Position:  steerPos,
		Direction: dir,
		Angle:     angle,
	}
}

// Rotation returns the orientation of the steering axis: the forward
// direction of the steered wheel, the axis direction and up.
func (st Steering) Rotation(up r3.Vector) mgl64.Mat3 {
	return mgl64.Mat3FromCols(vec3(st.Direction.Cross(up)), vec3(st.Direction), vec3(up))
}
