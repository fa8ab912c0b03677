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
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// noCenterDistance is the lateral distance at which the rotation center
// marker is placed when the vehicle travels straight.
const noCenterDistance = 10000.0

// Space identifies the coordinate system of a part pose.
type Space int

const (
	// SpaceWorld poses are absolute.
	SpaceWorld Space = iota

	// SpaceParent poses are relative to the parent of the part.
	SpaceParent

	// SpacePath poses are relative to the path object.
	SpacePath
)

func (s Space) String() string {
	switch s {
	case SpaceWorld:
		return "world"
	case SpaceParent:
		return "parent"
	case SpacePath:
		return "path"
	default:
		return "unknown"
	}
}

// PartPose is the transformation the host should apply to one part.
type PartPose struct {
	Part   string // host identifier of the part
	Space  Space
	Matrix mgl64.Mat4
}

// DualQuat returns the pose as a unit dual quaternion.  The rotation part
// of the matrix must be orthonormal.
func (pp PartPose) DualQuat() dualquat.Number {
	return matrixToDualQuat(pp.Matrix)
}

func matrixToDualQuat(m mgl64.Mat4) dualquat.Number {
	q := mgl64.Mat4ToQuat(m).Normalize()
	r := quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
	t := m.Col(3)
	tq := quat.Number{Imag: t[0], Jmag: t[1], Kmag: t[2]}
	return dualquat.Number{
		Real: r,
		Dual: quat.Scale(0.5, quat.Mul(tq, r)),
	}
}

// PoseSet is the state of a vehicle at one point in time.
type PoseSet struct {
	Time      float64 // seconds
	CurveTime float64 // before clamping
	Bracket   Bracket

	Chassis   mgl64.Mat4 // world transform of the fixed axis
	SteerAxis mgl64.Mat4 // world transform of the steering axis

	// Path-local chassis frame.
	Position r3.Vector
	Forward  r3.Vector
	Lateral  r3.Vector

	SteerPosition r3.Vector // path-local ground position of the steering axis
	SteerAngle    float64   // radians, positive for left turns
	RollAngle     float64   // radians, two-wheel model only
	Curvature     float64   // signed, per path unit
	Speed         float64   // m/s

	// RotationCenter is the path-local rotation center.  If
	// HasRotationCenter is false, the vehicle travels straight and
	// RotationCenter is a point far away along the lateral axis.
	RotationCenter    r3.Vector
	HasRotationCenter bool

	// Spin holds the wheel spin angles in radians, keyed by the role of
	// the spin part.
	Spin map[Role]float64

	// Parts holds the pose of every bound part.
	Parts map[Role]PartPose
}

func (ps *PoseSet) setPart(rig Rig, role Role, space Space, m mgl64.Mat4) {
	name := rig.Parts[role]
	if name == "" {
		return
	}
	ps.Parts[role] = PartPose{Part: name, Space: space, Matrix: m}
}
