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

// Package vehicle computes time-parameterized poses for rigid-body vehicle
// models which follow a planar path.
//
// A path is given as an ordered list of curve samples, taken at unit
// parametric time-step.  [SingleTrack] (a two-wheeled bicycle model) and
// [AxleSingleTrack] (a four-wheeled model, where left and right wheels of
// each axle share one track) derive arc-length, curvature and rotation
// centers from these samples once, and then map a time in seconds to the
// pose of every part of the vehicle: chassis, steering linkage, wheel spin
// and roll.
package vehicle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ModelKind selects one of the vehicle topologies.
type ModelKind int

const (
	// TwoWheel is the bicycle model: one fixed and one steered wheel.
	TwoWheel ModelKind = iota + 1

	// FourWheel is the axle model: left and right wheels on a fixed and on
	// a steered axle.
	FourWheel
)

func (k ModelKind) String() string {
	switch k {
	case TwoWheel:
		return "2w"
	case FourWheel:
		return "4w"
	default:
		return "unknown"
	}
}

// Role names the kinematic function of one rigid part of a vehicle.
type Role string

// Parts of both models.
const (
	RoleChassis        Role = "chassis"         // fixed-axis origin, placed in world space
	RoleSteerOrigin    Role = "steer_origin"    // steering-axis origin, child of the chassis
	RoleRotationCenter Role = "rotation_center" // optional marker, path-local
	RolePath           Role = "path"            // the curve object
)

// Parts of the two-wheel model.
const (
	RoleRollAxis    Role = "roll_axis"
	RoleFixedSpin   Role = "fixed_spin"
	RoleSteerTilt   Role = "steer_tilt"
	RoleSteerOrient Role = "steer_orient"
	RoleSteerSpin   Role = "steer_spin"
)

// Parts of the four-wheel model.
const (
	RoleFixedLeft      Role = "fixed_left"
	RoleFixedRight     Role = "fixed_right"
	RoleFixedLeftSpin  Role = "fixed_left_spin"
	RoleFixedRightSpin Role = "fixed_right_spin"
	RoleSteerLeft      Role = "steer_left"
	RoleSteerRight     Role = "steer_right"
	RoleSteerLeftSpin  Role = "steer_left_spin"
	RoleSteerRightSpin Role = "steer_right_spin"
)

// Roles returns the roles which must be bound for a model of kind k.
// RolePath is only needed when the model is created from a [Record].
func (k ModelKind) Roles() []Role {
	switch k {
	case TwoWheel:
		return []Role{
			RoleChassis, RoleRollAxis, RoleFixedSpin,
			RoleSteerOrigin, RoleSteerTilt, RoleSteerOrient, RoleSteerSpin,
		}
	case FourWheel:
		return []Role{
			RoleChassis, RoleSteerOrigin,
			RoleFixedLeft, RoleFixedRight, RoleFixedLeftSpin, RoleFixedRightSpin,
			RoleSteerLeft, RoleSteerRight, RoleSteerLeftSpin, RoleSteerRightSpin,
		}
	default:
		return nil
	}
}

// spinRoles lists the wheels of kind k which have their own contact track.
func (k ModelKind) spinRoles() []Role {
	switch k {
	case TwoWheel:
		return []Role{RoleFixedSpin, RoleSteerSpin}
	case FourWheel:
		return []Role{RoleFixedLeftSpin, RoleFixedRightSpin, RoleSteerLeftSpin, RoleSteerRightSpin}
	default:
		return nil
	}
}

// ModelConfig holds the scalar parameters of a vehicle model.
type ModelConfig struct {
	Up          r3.Vector // normal of the motion plane
	SpeedKmh    float64   // mean speed in km/h
	WheelRadius float64   // in path units
	Resolution  int       // curve samples per spline span
	TimeOffset  float64   // in seconds, subtracted from frame times by Handle.PoseAtFrame
}

// DefaultConfig returns the configuration used for new vehicles.
func DefaultConfig() ModelConfig {
	return ModelConfig{
		Up:          r3.Vector{Z: 1},
		SpeedKmh:    1,
		WheelRadius: 1,
		Resolution:  10,
	}
}

// Validate checks that cfg can be used for path evaluation.
func (cfg *ModelConfig) Validate() error {
	if n := cfg.Up.Norm(); !(n > 0) || math.IsInf(n, 0) {
		return errors.Wrap(ErrDegenerateGeometry, "zero up-vector")
	}
	if !(cfg.SpeedKmh > 0) {
		return errors.Wrapf(ErrDegenerateGeometry, "mean speed %g km/h", cfg.SpeedKmh)
	}
	if !(cfg.WheelRadius > 0) {
		return errors.Wrapf(ErrDegenerateGeometry, "wheel radius %g", cfg.WheelRadius)
	}
	if cfg.Resolution < 2 {
		return errors.Wrapf(ErrInvalidCurveTopology, "resolution %d", cfg.Resolution)
	}
	return nil
}

// Rig describes the parts of one vehicle, as found in the host scene when
// the path is evaluated.
type Rig struct {
	// Parts maps roles to opaque host identifiers.
	Parts map[Role]string

	// ChassisOrigin and SteerOrigin are the world positions of the chassis
	// and the steering axis.  Their distance is the axle separation.
	ChassisOrigin r3.Vector
	SteerOrigin   r3.Vector

	// Locations holds the translation of each part relative to its
	// parent.  Local part poses keep this translation.
	Locations map[Role]r3.Vector

	// Contacts holds, for the spin parts of the four-wheel model, the
	// position of the wheel hub in chassis coordinates (forward, lateral,
	// up).
	Contacts map[Role]r3.Vector

	// PathTransform is the world matrix of the path object.  The zero
	// value stands for the identity.
	PathTransform mgl64.Mat4
}

// AxleSeparation returns the distance between the fixed and the steering
// axis.
func (rig *Rig) AxleSeparation() float64 {
	return rig.SteerOrigin.Sub(rig.ChassisOrigin).Norm()
}

func (rig *Rig) pathWorld() mgl64.Mat4 {
	if rig.PathTransform == (mgl64.Mat4{}) {
		return mgl64.Ident4()
	}
	return rig.PathTransform
}

// validate reports all missing bindings for a model of kind k.
func (rig *Rig) validate(k ModelKind) error {
	var err error
	for _, role := range k.Roles() {
		if rig.Parts[role] == "" {
			err = multierr.Append(err,
				errors.Wrapf(ErrMissingRoleBinding, "%s model: role %q", k, role))
		}
	}
	if k == FourWheel {
		for _, role := range k.spinRoles() {
			if _, ok := rig.Contacts[role]; !ok {
				err = multierr.Append(err,
					errors.Wrapf(ErrMissingRoleBinding, "%s model: no contact point for %q", k, role))
			}
		}
	}
	return err
}
