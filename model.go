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
	"github.com/pkg/errors"

	"seehuhn.de/go/vehicle/curve"
)

// model holds the evaluated path of one vehicle.  It is embedded in the
// concrete vehicle models.
type model struct {
	kind  ModelKind
	state *pathState
}

// EvaluatePath derives all per-sample state from the given curve samples.
// The axle separation is measured once, from the origins in rig.
//
// On success, any previously evaluated path is replaced.  On failure, the
// model is left unchanged.
func (m *model) EvaluatePath(points []r3.Vector, cfg ModelConfig, rig Rig) error {
	s, err := newPathState(m.kind, points, cfg, rig)
	if err != nil {
		return err
	}
	m.state = s
	return nil
}

// EvaluateSpline samples a NURBS curve at cfg.Resolution points per span
// and evaluates the resulting path.
func (m *model) EvaluateSpline(sp *curve.Spline, cfg ModelConfig, rig Rig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if sp.Kind != curve.NURBS {
		return errors.Wrapf(ErrInvalidCurveTopology, "%s curve, need NURBS", sp.Kind)
	}
	points, err := sp.Tessellate(cfg.Resolution)
	if err != nil {
		return errors.Wrapf(ErrInvalidCurveTopology, "tessellating path: %v", err)
	}
	return m.EvaluatePath(points, cfg, rig)
}

// Kind returns the vehicle topology of the model.
func (m *model) Kind() ModelKind {
	return m.kind
}

// Evaluated reports whether a path has been evaluated.
func (m *model) Evaluated() bool {
	return m.state != nil
}

// Samples returns the curve samples of the evaluated path, or nil.
func (m *model) Samples() *SampleBuffer {
	if m.state == nil {
		return nil
	}
	return m.state.buf
}

// Track returns the contact track of the given spin part, or nil.
func (m *model) Track(role Role) *ContactTrack {
	if m.state == nil {
		return nil
	}
	return m.state.tracks[role]
}

// EndTime returns the time in seconds after which the vehicle rests at the
// end of the path.
func (m *model) EndTime() float64 {
	if m.state == nil {
		return 0
	}
	return m.state.index.EndTime()
}

func (m *model) evaluated() (*pathState, error) {
	if m.state == nil {
		return nil, errors.Wrapf(ErrModelNotEvaluated, "%s model", m.kind)
	}
	return m.state, nil
}
