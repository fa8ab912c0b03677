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
)

// gravity is the gravitational acceleration in m/s^2.
const gravity = 9.81

// SingleTrack is the two-wheel vehicle model.  The chassis leans into
// turns so that gravity balances the centrifugal force.
//
// A SingleTrack must not be evaluated concurrently with other calls on the
// same instance.  After EvaluatePath has returned, PoseAtTime may be called
// from several goroutines.
type SingleTrack struct {
	model
}

// NewSingleTrack returns a two-wheel model without an evaluated path.
func NewSingleTrack() *SingleTrack {
	return &SingleTrack{model{kind: TwoWheel}}
}

// PoseAtTime returns the vehicle pose t seconds after the start of the
// path.
func (m *SingleTrack) PoseAtTime(t float64) (*PoseSet, error) {
	s, err := m.evaluated()
	if err != nil {
		return nil, err
	}

	k := s.at(t)
	ps := s.basePose(k)
	ps.RollAngle = -math.Atan(k.speed * k.speed * k.frame.Curvature / gravity)

	ps.setPart(s.rig, RoleRollAxis, SpaceParent,
		s.eulerPose(RoleRollAxis, mgl64.HomogRotate3DX, ps.RollAngle))
	ps.setPart(s.rig, RoleFixedSpin, SpaceParent,
		s.eulerPose(RoleFixedSpin, mgl64.HomogRotate3DY, k.spin[RoleFixedSpin]))
	ps.setPart(s.rig, RoleSteerOrient, SpaceParent,
		s.eulerPose(RoleSteerOrient, mgl64.HomogRotate3DZ, ps.SteerAngle))
	ps.setPart(s.rig, RoleSteerSpin, SpaceParent,
		s.eulerPose(RoleSteerSpin, mgl64.HomogRotate3DY, k.spin[RoleSteerSpin]))

	return ps, nil
}
