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
	"encoding/json"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"seehuhn.de/go/vehicle/curve"
)

// Type tags of the stored vehicle records.
const (
	TypeTwoWheel  = "/vehicle/path/2w/singletrack/planar:1.0"
	TypeFourWheel = "/vehicle/path/4w/singletrack/planar:1.0"
)

// Record is the stored configuration of one vehicle: which host parts fill
// which role, and the scalar model parameters.
type Record struct {
	Type        string          `json:"type"`
	Parts       map[Role]string `json:"parts"`
	Resolution  int             `json:"resolution"`
	WheelRadius float64         `json:"wheel_radius"` // path units
	MeanSpeed   float64         `json:"mean_speed"`   // km/h
	TimeOffset  float64         `json:"time_offset"`  // seconds
}

// NewRecord returns a record with default parameters, with only the
// chassis role bound.
func NewRecord(kind ModelKind, chassis string) (*Record, error) {
	tag, err := kind.typeTag()
	if err != nil {
		return nil, err
	}
	r := newDefaultRecord()
	r.Type = tag
	r.Parts[RoleChassis] = chassis
	return r, nil
}

// ParseRecord decodes a JSON record.  Omitted numeric parameters get their
// default values.  Parameters which are present are kept as given, and are
// checked when the model is evaluated.
func ParseRecord(data []byte) (*Record, error) {
	r := newDefaultRecord()
	if err := json.Unmarshal(data, r); err != nil {
		return nil, errors.Wrap(err, "decoding vehicle record")
	}
	if _, err := r.Kind(); err != nil {
		return nil, err
	}
	if r.Parts == nil {
		r.Parts = make(map[Role]string)
	}
	return r, nil
}

// Marshal encodes the record as indented JSON.
func (r *Record) Marshal() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func newDefaultRecord() *Record {
	def := DefaultConfig()
	return &Record{
		Parts:       make(map[Role]string),
		Resolution:  def.Resolution,
		WheelRadius: def.WheelRadius,
		MeanSpeed:   def.SpeedKmh,
	}
}

// Kind returns the vehicle topology selected by the type tag.
func (r *Record) Kind() (ModelKind, error) {
	switch r.Type {
	case TypeTwoWheel:
		return TwoWheel, nil
	case TypeFourWheel:
		return FourWheel, nil
	default:
		return 0, errors.Wrapf(ErrUnknownModelType, "type %q", r.Type)
	}
}

func (k ModelKind) typeTag() (string, error) {
	switch k {
	case TwoWheel:
		return TypeTwoWheel, nil
	case FourWheel:
		return TypeFourWheel, nil
	default:
		return "", errors.Wrapf(ErrUnknownModelType, "kind %d", int(k))
	}
}

// Config returns the model parameters of the record.  The motion plane is
// the XY plane of the path object.
func (r *Record) Config() ModelConfig {
	cfg := DefaultConfig()
	cfg.Resolution = r.Resolution
	cfg.WheelRadius = r.WheelRadius
	cfg.SpeedKmh = r.MeanSpeed
	cfg.TimeOffset = r.TimeOffset
	return cfg
}

// contactParent gives the parent part of each wheel hub of the four-wheel
// model.
var contactParent = map[Role]Role{
	RoleFixedLeftSpin:  RoleFixedLeft,
	RoleFixedRightSpin: RoleFixedRight,
	RoleSteerLeftSpin:  RoleSteerLeft,
	RoleSteerRightSpin: RoleSteerRight,
}

// Resolve looks up the parts of the record in the scene, and returns the
// rig and the path curve.  All unresolved roles are reported together.
func (r *Record) Resolve(sc Scene) (Rig, *curve.Spline, error) {
	kind, err := r.Kind()
	if err != nil {
		return Rig{}, nil, err
	}

	rig := Rig{
		Parts:     make(map[Role]string),
		Locations: make(map[Role]r3.Vector),
	}

	var errs error
	locals := make(map[Role]mgl64.Mat4)
	lookup := func(role Role, required bool) {
		name := r.Parts[role]
		if name == "" {
			if required {
				errs = multierr.Append(errs,
					errors.Wrapf(ErrMissingRoleBinding, "role %q", role))
			}
			return
		}
		local, ok := sc.LocalMatrix(name)
		if !ok {
			errs = multierr.Append(errs,
				errors.Wrapf(ErrMissingRoleBinding, "role %q: no part %q", role, name))
			return
		}
		rig.Parts[role] = name
		rig.Locations[role] = fromVec3(local.Col(3).Vec3())
		locals[role] = local
	}

	for _, role := range kind.Roles() {
		lookup(role, true)
	}
	lookup(RoleRotationCenter, false)

	if name, ok := rig.Parts[RoleChassis]; ok {
		rig.ChassisOrigin, _ = sc.WorldPosition(name)
	}
	if name, ok := rig.Parts[RoleSteerOrigin]; ok {
		rig.SteerOrigin, _ = sc.WorldPosition(name)
	}

	// Wheel hubs are given relative to the wheel carriers, which are
	// children of the chassis.
	if kind == FourWheel {
		rig.Contacts = make(map[Role]r3.Vector)
		for _, role := range kind.spinRoles() {
			parent, okParent := locals[contactParent[role]]
			hub, okHub := rig.Locations[role]
			if okParent && okHub {
				c := mgl64.TransformCoordinate(vec3(hub), parent)
				rig.Contacts[role] = fromVec3(c)
			}
		}
	}

	var spline *curve.Spline
	pathName := r.Parts[RolePath]
	if pathName == "" {
		errs = multierr.Append(errs, errors.Wrapf(ErrMissingRoleBinding, "role %q", RolePath))
	} else {
		var world mgl64.Mat4
		var ok bool
		spline, world, ok = sc.Spline(pathName)
		if !ok {
			errs = multierr.Append(errs,
				errors.Wrapf(ErrMissingRoleBinding, "role %q: no curve %q", RolePath, pathName))
		}
		rig.Parts[RolePath] = pathName
		rig.PathTransform = world
	}

	if errs != nil {
		return Rig{}, nil, errs
	}
	return rig, spline, nil
}
