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

import "github.com/go-gl/mathgl/mgl64"

// AxleSingleTrack is the four-wheel vehicle model.  Left and right wheels
// share the steering direction of their axle, but every wheel spins
// according to the distance its own hub travels.
//
// The same concurrency rules as for [SingleTrack] apply.
type AxleSingleTrack struct {
	model
}

// NewAxleSingleTrack returns a four-wheel model without an evaluated path.
func NewAxleSingleTrack() *AxleSingleTrack {
	return &AxleSingleTrack{model{kind: FourWheel}}
}

// PoseAtTime returns the vehicle pose t seconds after the start of the
// path.  The chassis does not roll.
func (m *AxleSingleTrack) PoseAtTime(t float64) (*PoseSet, error) {
	s, err := m.evaluated()
	if err != nil {
		return nil, err
	}

	k := s.at(t)
	ps := s.basePose(k)

	steerRot := k.steering.Rotation(s.up)
	chassisRot := k.frame.Rotation()
	for _, role := range []Role{RoleSteerLeft, RoleSteerRight} {
		ps.setPart(s.rig, role, SpaceParent, s.localPose(k.frame, steerRot, role))
	}
	for _, role := range []Role{RoleFixedLeft, RoleFixedRight} {
		ps.setPart(s.rig, role, SpaceParent, s.localPose(k.frame, chassisRot, role))
	}
	for _, role := range FourWheel.spinRoles() {
		ps.setPart(s.rig, role, SpaceParent,
			s.eulerPose(role, mgl64.HomogRotate3DY, k.spin[role]))
	}

	return ps, nil
}
