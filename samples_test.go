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

	"seehuhn.de/go/vehicle/curve"
	"seehuhn.de/go/vehicle/testcases"
)

// assertNear checks that two vectors are close.
func assertNear(t *testing.T, want, got r3.Vector, msgAndArgs ...any) bool {
	t.Helper()
	return assert.InDelta(t, 0, got.Distance(want), 1e-9, msgAndArgs...)
}

// linePoints returns n samples along the X axis, with unit spacing.
func linePoints(n int) []r3.Vector {
	pts := make([]r3.Vector, n)
	for i := range pts {
		pts[i] = r3.Vector{X: float64(i)}
	}
	return pts
}

// arcPoints returns n samples on the circle of radius r around the origin,
// from angle a0 to angle a1.  The arc is counter-clockwise if a1 > a0.
func arcPoints(r, a0, a1 float64, n int) []r3.Vector {
	pts := make([]r3.Vector, n)
	for i := range pts {
		a := a0 + (a1-a0)*float64(i)/float64(n-1)
		pts[i] = r3.Vector{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return pts
}

// casePoints samples the track of a test case.
func casePoints(t testing.TB, tc testcases.TestCase) []r3.Vector {
	t.Helper()
	sp, err := curve.FromPath(tc.Path)
	require.NoError(t, err)
	pts, err := sp.Tessellate(tc.Resolution)
	require.NoError(t, err)
	return pts
}

func TestSampleBufferLine(t *testing.T) {
	buf, err := NewSampleBuffer(linePoints(5))
	require.NoError(t, err)

	assert.Equal(t, 5, buf.Len())
	assert.Equal(t, 2, buf.Last())
	assert.Equal(t, 4.0, buf.CurveSpan())
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, buf.Length)
	assert.Len(t, buf.Deriv, 4)
	assert.Len(t, buf.Curvature, 3)
	for i := range buf.Curvature {
		assert.Zero(t, buf.Curvature[i])
		assert.False(t, buf.Normal[i].OK)
		assert.False(t, buf.Center[i].OK)
		assert.Equal(t, r3.Vector{}, buf.Deriv2[i])
	}
}

func TestSampleBufferCircle(t *testing.T) {
	const r = 10.0
	const n = 201
	theta := math.Pi / 2 / (n - 1)

	for _, tc := range []struct {
		name   string
		a0, a1 float64
		normal float64
	}{
		{"counter_clockwise", 0, math.Pi / 2, 1},
		{"clockwise", math.Pi / 2, 0, -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			buf, err := NewSampleBuffer(arcPoints(r, tc.a0, tc.a1, n))
			require.NoError(t, err)

			up := r3.Vector{Z: 1}
			for i := range buf.Curvature {
				assert.InEpsilon(t, 1/r, buf.Curvature[i], 1e-4, "sample %d", i)
				require.True(t, buf.Normal[i].OK)
				assert.InDelta(t, tc.normal, buf.Normal[i].V.Z, 1e-12)
				assert.InEpsilon(t, tc.normal/r, buf.SignedCurvature(i, up), 1e-4)

				require.True(t, buf.Center[i].OK)
				assert.Less(t, buf.Center[i].V.Norm(), r*theta, "sample %d", i)
			}
		})
	}
}

func TestSampleBufferErrors(t *testing.T) {
	_, err := NewSampleBuffer(linePoints(3))
	assert.ErrorIs(t, err, ErrInvalidCurveTopology)

	pts := linePoints(6)
	pts[3] = pts[2]
	_, err = NewSampleBuffer(pts)
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestArcLengthMonotone(t *testing.T) {
	for category, cases := range testcases.All {
		for _, tc := range cases {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				buf, err := NewSampleBuffer(casePoints(t, tc))
				require.NoError(t, err)
				assert.Zero(t, buf.Length[0])
				for i := 1; i < len(buf.Length); i++ {
					assert.GreaterOrEqual(t, buf.Length[i], buf.Length[i-1])
				}
			})
		}
	}
}

func TestCheckPlanar(t *testing.T) {
	up := r3.Vector{Z: 1}

	pts := arcPoints(5, 0, math.Pi, 20)
	for i := range pts {
		pts[i].Z = 3
	}
	assert.NoError(t, checkPlanar(pts, up))

	pts[7].Z = 3.1
	assert.ErrorIs(t, checkPlanar(pts, up), ErrInvalidCurveTopology)

	// A line along Z is planar for an up-vector along X.
	assert.NoError(t, checkPlanar([]r3.Vector{{Z: 0}, {Z: 1}, {Z: 2}}, r3.Vector{X: 1}))
}
