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
	"github.com/golang/geo/r3"

	"seehuhn.de/go/vehicle/curve"
)

// New creates a model of the given kind and evaluates its path.
func New(kind ModelKind, sp *curve.Spline, cfg ModelConfig, rig Rig) (Animator, error) {
	m, err := newEvaluator(kind)
	if err != nil {
		return nil, err
	}
	if err := m.EvaluateSpline(sp, cfg, rig); err != nil {
		return nil, err
	}
	return m, nil
}

// NewRig returns a rig for a vehicle which is not part of a host scene.
// All roles of kind are bound to names of the form "name.role".  The
// chassis sits at the origin and the vehicle faces along the X axis.
func NewRig(kind ModelKind, name string, wheelbase, trackWidth float64) Rig {
	rig := Rig{
		Parts:       map[Role]string{RoleRotationCenter: name + "." + string(RoleRotationCenter)},
		SteerOrigin: r3.Vector{X: wheelbase},
		Locations:   map[Role]r3.Vector{RoleSteerOrigin: {X: wheelbase}},
	}
	for _, role := range kind.Roles() {
		rig.Parts[role] = name + "." + string(role)
	}
	if kind == FourWheel {
		w := trackWidth / 2
		rig.Contacts = map[Role]r3.Vector{
			RoleFixedLeftSpin:  {Y: w},
			RoleFixedRightSpin: {Y: -w},
			RoleSteerLeftSpin:  {X: wheelbase, Y: w},
			RoleSteerRightSpin: {X: wheelbase, Y: -w},
		}
		rig.Locations[RoleFixedLeft] = r3.Vector{Y: w}
		rig.Locations[RoleFixedRight] = r3.Vector{Y: -w}
		rig.Locations[RoleSteerLeft] = r3.Vector{X: wheelbase, Y: w}
		rig.Locations[RoleSteerRight] = r3.Vector{X: wheelbase, Y: -w}
	}
	return rig
}
