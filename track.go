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
	"github.com/pkg/errors"
)

// minAxleSeparation is the smallest distance between fixed and steering
// axis which still determines a steering direction.
const minAxleSeparation = 1e-9

// ContactTrack is the path traced by one point which moves rigidly with
// the chassis frame, for example the hub of a wheel.
type ContactTrack struct {
	Offset r3.Vector   // position in frame coordinates (forward, lateral, up)
	Points []r3.Vector // one point per sample with a full frame
	Length []float64   // cumulative arc-length along Points
}

func newContactTrack(buf *SampleBuffer, up, offset r3.Vector) *ContactTrack {
	n := buf.Len() - 2
	tr := &ContactTrack{
		Offset: offset,
		Points: make([]r3.Vector, n),
		Length: make([]float64, n),
	}
	for i := range n {
		forward := buf.Deriv[i].Normalize()
		lateral := up.Cross(forward)
		tr.Points[i] = buf.Points[i].
			Add(forward.Mul(offset.X)).
			Add(lateral.Mul(offset.Y)).
			Add(up.Mul(offset.Z))
		if i > 0 {
			tr.Length[i] = tr.Length[i-1] + tr.Points[i].Sub(tr.Points[i-1]).Norm()
		}
	}
	return tr
}

// pathState is the evaluated path shared by both vehicle models.  It is
// immutable after construction.
type pathState struct {
	kind    ModelKind
	cfg     ModelConfig
	rig     Rig
	up      r3.Vector
	axleSep float64

	buf    *SampleBuffer
	index  *ArcLengthIndex
	frames *FrameBuilder
	steer  *SteerSolver
	tracks map[Role]*ContactTrack
}

func newPathState(kind ModelKind, points []r3.Vector, cfg ModelConfig, rig Rig) (*pathState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := rig.validate(kind); err != nil {
		return nil, err
	}

	axleSep := rig.AxleSeparation()
	if !(axleSep > minAxleSeparation) || math.IsInf(axleSep, 0) {
		return nil, errors.Wrapf(ErrDegenerateGeometry, "axle separation %g", axleSep)
	}

	up := cfg.Up.Normalize()
	if err := checkPlanar(points, up); err != nil {
		return nil, err
	}

	buf, err := NewSampleBuffer(points)
	if err != nil {
		return nil, err
	}
	index, err := NewArcLengthIndex(buf, cfg.SpeedKmh)
	if err != nil {
		return nil, err
	}

	s := &pathState{
		kind:    kind,
		cfg:     cfg,
		rig:     rig,
		up:      up,
		axleSep: axleSep,
		buf:     buf,
		index:   index,
		frames:  NewFrameBuilder(buf, up),
		steer:   NewSteerSolver(buf, up),
		tracks:  make(map[Role]*ContactTrack),
	}

	for _, role := range kind.spinRoles() {
		var offset r3.Vector
		switch {
		case kind == FourWheel:
			offset = rig.Contacts[role]
		case role == RoleSteerSpin:
			offset = r3.Vector{X: axleSep}
		}
		s.tracks[role] = newContactTrack(buf, up, offset)
	}

	return s, nil
}

// kinematics holds the quantities shared by the pose assembly of both
// models.
type kinematics struct {
	time      float64
	curveTime float64
	frame     *Frame
	steering  Steering
	speed     float64 // m/s
	spin      map[Role]float64
}

func (s *pathState) at(t float64) *kinematics {
	ct := s.index.CurveTime(t)
	fr := s.frames.FrameAt(ct)

	steerPos := fr.Position.Add(fr.Forward.Mul(s.axleSep))

	k := &kinematics{
		time:      t,
		curveTime: ct,
		frame:     fr,
		steering:  s.steer.Solve(fr, steerPos),
		speed:     fr.Deriv.Norm() / s.index.TimeDelta(),
		spin:      make(map[Role]float64, len(s.tracks)),
	}
	for role, tr := range s.tracks {
		k.spin[role] = fr.Bracket.Scalar(tr.Length) / s.cfg.WheelRadius
	}
	return k
}

// basePose fills in the parts of the pose set which both models share.
func (s *pathState) basePose(k *kinematics) *PoseSet {
	fr := k.frame
	world := s.rig.pathWorld()

	steerRot := k.steering.Rotation(s.up)
	steerMat := steerRot.Mat4()
	steerMat.SetCol(3, vec4(k.steering.Position, 1))

	ps := &PoseSet{
		Time:          k.time,
		CurveTime:     k.curveTime,
		Bracket:       fr.Bracket,
		Chassis:       world.Mul4(fr.Matrix()),
		SteerAxis:     world.Mul4(steerMat),
		Position:      fr.Position,
		Forward:       fr.Forward,
		Lateral:       fr.Lateral,
		SteerPosition: k.steering.Position,
		SteerAngle:    k.steering.Angle,
		Curvature:     fr.Curvature,
		Speed:         k.speed,
		Spin:          k.spin,
		Parts:         make(map[Role]PartPose),
	}

	if fr.Center.OK {
		ps.RotationCenter = fr.Center.V
		ps.HasRotationCenter = true
	} else {
		ps.RotationCenter = fr.Lateral.Mul(noCenterDistance)
	}

	ps.setPart(s.rig, RoleChassis, SpaceWorld, ps.Chassis)
	ps.setPart(s.rig, RoleSteerOrigin, SpaceParent,
		s.localPose(fr, steerRot, RoleSteerOrigin))
	ps.setPart(s.rig, RoleRotationCenter, SpacePath,
		mgl64.Translate3D(ps.RotationCenter.X, ps.RotationCenter.Y, ps.RotationCenter.Z))

	return ps
}

// localPose expresses the orientation rot in the chassis frame, keeping
// the parent-relative translation of the part bound to role.
func (s *pathState) localPose(fr *Frame, rot mgl64.Mat3, role Role) mgl64.Mat4 {
	m := fr.Rotation().Transpose().Mul3(rot).Mat4()
	m.SetCol(3, vec4(s.rig.Locations[role], 1))
	return m
}

// eulerPose is a rotation by angle around one axis, at the parent-relative
// translation of the part bound to role.
func (s *pathState) eulerPose(role Role, rot func(float64) mgl64.Mat4, angle float64) mgl64.Mat4 {
	loc := s.rig.Locations[role]
	return mgl64.Translate3D(loc.X, loc.Y, loc.Z).Mul4(rot(angle))
}
