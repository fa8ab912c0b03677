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
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSteerStraight(t *testing.T) {
	buf, err := NewSampleBuffer(linePoints(8))
	require.NoError(t, err)
	fb := NewFrameBuilder(buf, zUp)
	ss := NewSteerSolver(buf, zUp)

	for _, ct := range []float64{0, 1.5, 3.25, 10} {
		fr := fb.FrameAt(ct)
		st := ss.Solve(fr, fr.Point(r3.Vector{X: 2}))
		assert.Zero(t, st.Angle, "curve-time %g", ct)
		assert.Equal(t, fr.Lateral, st.Direction)
	}
}

func TestSteerCircle(t *testing.T) {
	const r = 20.0
	const wheelbase = 2.7
	want := math.Atan(wheelbase / r)

	for _, tc := range []struct {
		name   string
		a0, a1 float64
		sign   float64
	}{
		{"left", -math.Pi / 2, math.Pi / 2, 1},
		{"right", math.Pi / 2, -math.Pi / 2, -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buf, err := NewSampleBuffer(arcPoints(r, tc.a0, tc.a1, 401))
			require.NoError(t, err)
			fb := NewFrameBuilder(buf, zUp)
			ss := NewSteerSolver(buf, zUp)

			for ct := 0.0; ct < float64(buf.Last()); ct += 11.7 {
				fr := fb.FrameAt(ct)
				st := ss.Solve(fr, fr.Point(r3.Vector{X: wheelbase}))
				assert.InDelta(t, tc.sign*want, st.Angle, 1e-2, "curve-time %g", ct)
				assert.InDelta(t, 1, st.Direction.Norm(), 1e-12)

				// The steering axis points towards the turn center.
				toCenter := buf.Center[fr.Bracket.I1].V.Sub(st.Position)
				assert.Greater(t, st.Direction.Dot(toCenter)*tc.sign, 0.0)
			}
		})
	}
}

// TestSteerBlend checks that directions, not angles, are interpolated.
func TestSteerBlend(t *testing.T) {
	buf, err := NewSampleBuffer(linePoints(6))
	require.NoError(t, err)

	// Sample 1 turns left around (1, 1), sample 2 has no center.
	buf.Center[1] = OptVec{V: r3.Vector{X: 1, Y: 1}, OK: true}
	buf.Normal[1] = OptVec{V: zUp, OK: true}

	fr := NewFrameBuilder(buf, zUp).FrameAt(1.5)
	steerPos := r3.Vector{X: 2.5}
	st := NewSteerSolver(buf, zUp).Solve(fr, steerPos)

	d1 := r3.Vector{X: -1.5, Y: 1}.Normalize()
	d2 := r3.Vector{Y: 1}
	blend := d1.Add(d2).Mul(0.5).Normalize()
	assertNear(t, blend, st.Direction, "got %v", st.Direction)
	assert.InDelta(t, math.Acos(blend.Y), st.Angle, 1e-12)
	assert.Greater(t, st.Angle, 0.0)

	rot := st.Rotation(zUp)
	fwd := fromVec3(rot.Col(0))
	assert.InDelta(t, 0, fwd.Dot(st.Direction), 1e-12)
	assert.InDelta(t, 1, fwd.Norm(), 1e-12)
}
