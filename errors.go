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

import "github.com/pkg/errors"

// Error kinds returned by this package.  Every error returned by an
// exported function wraps exactly one of these, so that callers can use
// errors.Is to find out what went wrong.
var (
	// ErrInvalidCurveTopology is returned when the input curve cannot be
	// sampled: too few points, wrong curve type, or not planar.
	ErrInvalidCurveTopology = errors.New("invalid curve topology")

	// ErrMissingRoleBinding is returned when a required part role has no
	// host part bound to it.
	ErrMissingRoleBinding = errors.New("missing role binding")

	// ErrModelNotEvaluated is returned by PoseAtTime when no path has been
	// evaluated yet.
	ErrModelNotEvaluated = errors.New("model not evaluated")

	// ErrDegenerateGeometry is returned when a speed, wheel radius or
	// distance is zero (or negative) where a division needs it.
	ErrDegenerateGeometry = errors.New("degenerate speed or geometry")

	// ErrUnknownModelType is returned for records with an unrecognised
	// type tag.
	ErrUnknownModelType = errors.New("unknown model type")
)
