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

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"seehuhn.de/go/vehicle/curve"
	"seehuhn.de/go/vehicle/testcases"
)

// testRig returns a rig with all roles of kind bound, for a vehicle with
// the given axle separation and track width.
func testRig(kind ModelKind, wheelbase, trackWidth float64) Rig {
	rig := Rig{
		Parts:         map[Role]string{RoleRotationCenter: "Marker"},
		ChassisOrigin: r3.Vector{X: 5, Y: 5},
		SteerOrigin:   r3.Vector{X: 5 + wheelbase, Y: 5},
		Locations: map[Role]r3.Vector{
			RoleSteerOrigin: {X: wheelbase},
			RoleSteerOrient: {Z: 0.5},
		},
	}
	for _, role := range kind.Roles() {
		rig.Parts[role] = "Car." + string(role)
	}
	if kind == FourWheel {
		w := trackWidth / 2
		rig.Contacts = map[Role]r3.Vector{
			RoleFixedLeftSpin:  {Y: w},
			RoleFixedRightSpin: {Y: -w},
			RoleSteerLeftSpin:  {X: wheelbase, Y: w},
			RoleSteerRightSpin: {X: wheelbase, Y: -w},
		}
		rig.Locations[RoleSteerLeft] = r3.Vector{X: wheelbase, Y: w}
		rig.Locations[RoleSteerRight] = r3.Vector{X: wheelbase, Y: -w}
		rig.Locations[RoleFixedLeft] = r3.Vector{Y: w}
		rig.Locations[RoleFixedRight] = r3.Vector{Y: -w}
	}
	return rig
}

func testConfig(speedKmh, wheelRadius float64) ModelConfig {
	cfg := DefaultConfig()
	cfg.SpeedKmh = speedKmh
	cfg.WheelRadius = wheelRadius
	return cfg
}

// poseModel is implemented by both vehicle models.
type poseModel interface {
	EvaluatePath(points []r3.Vector, cfg ModelConfig, rig Rig) error
	PoseAtTime(t float64) (*PoseSet, error)
	Samples() *SampleBuffer
	EndTime() float64
	Kind() ModelKind
}

func newModel(kind ModelKind) poseModel {
	if kind == FourWheel {
		return NewAxleSingleTrack()
	}
	return NewSingleTrack()
}

var allKinds = []ModelKind{TwoWheel, FourWheel}

func TestEndToEndLine(t *testing.T) {
	m := NewSingleTrack()
	err := m.EvaluatePath(linePoints(5), testConfig(36, 0.5), testRig(TwoWheel, 1, 0))
	require.NoError(t, err)

	ps, err := m.PoseAtTime(0.1)
	require.NoError(t, err)
	assert.InDelta(t, 1, ps.Position.X, 1e-12)
	assert.InDelta(t, 2, ps.Spin[RoleFixedSpin], 1e-12)
	assert.InDelta(t, 2, ps.Spin[RoleSteerSpin], 1e-12)
	assert.InDelta(t, 10, ps.Speed, 1e-12)

	// Curve-time 4 lies beyond the last sample with a full frame, so the
	// vehicle holds its pose at sample n-3.
	ps, err = m.PoseAtTime(0.4)
	require.NoError(t, err)
	assert.InDelta(t, 4, ps.CurveTime, 1e-12)
	assert.Equal(t, Bracket{I1: 2, I2: 2}, ps.Bracket)
	assert.InDelta(t, 2, ps.Position.X, 1e-12)
	assert.Zero(t, ps.Position.Y)
	assert.Zero(t, ps.SteerAngle)
	assert.Zero(t, ps.RollAngle)
	assert.InDelta(t, 2/0.5, ps.Spin[RoleFixedSpin], 1e-12)
	assert.InDelta(t, 2/0.5, ps.Spin[RoleSteerSpin], 1e-12)
	assertNear(t, r3.Vector{X: 3}, ps.SteerPosition)
	assert.False(t, ps.HasRotationCenter)
	assert.Equal(t, r3.Vector{Y: 10000}, ps.RotationCenter)

	assert.True(t, ps.Chassis.Col(3).ApproxEqual(mgl64.Vec4{2, 0, 0, 1}))
	assert.True(t, ps.SteerAxis.Col(3).ApproxEqual(mgl64.Vec4{3, 0, 0, 1}))
}

// TestEndToEndSpline drives the same line, given as a NURBS curve.
func TestEndToEndSpline(t *testing.T) {
	m := NewSingleTrack()
	sp := curve.Polyline(linePoints(5))
	err := m.EvaluateSpline(sp, testConfig(36, 0.5), testRig(TwoWheel, 1, 0))
	require.NoError(t, err)
	require.Equal(t, 41, m.Samples().Len())

	ps, err := m.PoseAtTime(0.2)
	require.NoError(t, err)
	assert.InDelta(t, 2, ps.Position.X, 1e-9)
	assert.InDelta(t, 4, ps.Spin[RoleFixedSpin], 1e-9)
	assert.Zero(t, ps.SteerAngle)

	ps, err = m.PoseAtTime(0.4)
	require.NoError(t, err)
	assert.InDelta(t, 3.8, ps.Position.X, 1e-9)

	poly := &curve.Spline{Kind: curve.Poly, Points: linePoints(5)}
	err = m.EvaluateSpline(poly, testConfig(36, 0.5), testRig(TwoWheel, 1, 0))
	assert.ErrorIs(t, err, ErrInvalidCurveTopology)
}

func TestNotEvaluated(t *testing.T) {
	for _, kind := range allKinds {
		m := newModel(kind)
		_, err := m.PoseAtTime(0)
		assert.ErrorIs(t, err, ErrModelNotEvaluated)
		assert.Nil(t, m.Samples())
		assert.Zero(t, m.EndTime())
	}
}

func TestMissingRoles(t *testing.T) {
	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			rig := testRig(kind, 2, 1.5)
			rig.Parts = map[Role]string{RoleChassis: "Car"}
			rig.Contacts = nil

			err := newModel(kind).EvaluatePath(linePoints(10), testConfig(30, 1), rig)
			require.ErrorIs(t, err, ErrMissingRoleBinding)

			want := len(kind.Roles()) - 1
			if kind == FourWheel {
				want += 4
			}
			assert.Len(t, multierr.Errors(err), want)
		})
	}

	// The rotation center marker is optional.
	rig := testRig(TwoWheel, 2, 0)
	delete(rig.Parts, RoleRotationCenter)
	m := NewSingleTrack()
	require.NoError(t, m.EvaluatePath(linePoints(10), testConfig(30, 1), rig))
	ps, err := m.PoseAtTime(0.5)
	require.NoError(t, err)
	assert.NotContains(t, ps.Parts, RoleRotationCenter)
}

func TestEvaluateErrors(t *testing.T) {
	rig := testRig(TwoWheel, 2, 0)
	good := testConfig(30, 1)

	cases := []struct {
		name   string
		points []r3.Vector
		cfg    func(*ModelConfig)
		rig    func(*Rig)
		err    error
	}{
		{name: "few points", points: linePoints(3), err: ErrInvalidCurveTopology},
		{name: "zero speed", cfg: func(c *ModelConfig) { c.SpeedKmh = 0 }, err: ErrDegenerateGeometry},
		{name: "zero radius", cfg: func(c *ModelConfig) { c.WheelRadius = 0 }, err: ErrDegenerateGeometry},
		{name: "zero up", cfg: func(c *ModelConfig) { c.Up = r3.Vector{} }, err: ErrDegenerateGeometry},
		{name: "resolution", cfg: func(c *ModelConfig) { c.Resolution = 1 }, err: ErrInvalidCurveTopology},
		{name: "axle", rig: func(r *Rig) { r.SteerOrigin = r.ChassisOrigin }, err: ErrDegenerateGeometry},
		{
			name:   "not planar",
			points: []r3.Vector{{}, {X: 1}, {X: 2, Z: 1}, {X: 3}},
			err:    ErrInvalidCurveTopology,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			points := tc.points
			if points == nil {
				points = linePoints(10)
			}
			cfg := good
			if tc.cfg != nil {
				tc.cfg(&cfg)
			}
			r := rig
			if tc.rig != nil {
				tc.rig(&r)
			}

			m := NewSingleTrack()
			err := m.EvaluatePath(points, cfg, r)
			assert.ErrorIs(t, err, tc.err)
			assert.False(t, m.Evaluated())
		})
	}
}

// TestFailedEvaluationKeepsPath checks that a failed call does not
// discard a previously evaluated path.
func TestFailedEvaluationKeepsPath(t *testing.T) {
	m := NewSingleTrack()
	require.NoError(t, m.EvaluatePath(linePoints(10), testConfig(30, 1), testRig(TwoWheel, 2, 0)))
	require.Error(t, m.EvaluatePath(linePoints(2), testConfig(30, 1), testRig(TwoWheel, 2, 0)))
	assert.Equal(t, 10, m.Samples().Len())
}

func TestEvaluatedPathOwnsSamples(t *testing.T) {
	for _, kind := range allKinds {
		pts := linePoints(10)
		m := newModel(kind)
		require.NoError(t, m.EvaluatePath(pts, testConfig(36, 1), testRig(kind, 2, 1)))
		before, err := m.PoseAtTime(0.1)
		require.NoError(t, err)

		// reuse the caller's slice
		for i := range pts {
			pts[i].X = 100 + float64(i)*7
		}

		after, err := m.PoseAtTime(0.1)
		require.NoError(t, err)
		assert.Equal(t, before.Position, after.Position, kind)
		assert.Equal(t, before.Spin, after.Spin, kind)
		assert.InDelta(t, 1, after.Position.X, 1e-12, kind)
		assert.Equal(t, 1.0, m.Samples().Points[1].X, kind)
	}
}

func TestStraightCases(t *testing.T) {
	for _, kind := range allKinds {
		for _, tc := range testcases.All["straight"] {
			t.Run(kind.String()+"_"+tc.Name, func(t *testing.T) {
				m := newModel(kind)
				err := m.EvaluatePath(casePoints(t, tc),
					testConfig(tc.SpeedKmh, tc.WheelRadius),
					testRig(kind, tc.Wheelbase, tc.TrackWidth))
				require.NoError(t, err)

				end := m.EndTime()
				for i := 0; i <= 20; i++ {
					ps, err := m.PoseAtTime(end * float64(i) / 20)
					require.NoError(t, err)
					assert.InDelta(t, 0, ps.SteerAngle, 1e-9)
					assert.InDelta(t, 0, ps.RollAngle, 1e-9)
					assert.False(t, ps.HasRotationCenter)
					assert.InDelta(t, noCenterDistance, ps.RotationCenter.Norm(), 1e-6)
				}
			})
		}
	}
}

func TestCircle(t *testing.T) {
	const r = 25.0
	const n = 401
	const speedKmh = 36
	theta := math.Pi / (n - 1)

	m := NewSingleTrack()
	err := m.EvaluatePath(arcPoints(r, -math.Pi/2, math.Pi/2, n),
		testConfig(speedKmh, 0.3), testRig(TwoWheel, 1.5, 0))
	require.NoError(t, err)

	for i, kappa := range m.Samples().Curvature {
		assert.InEpsilon(t, 1/r, kappa, 1e-4, "sample %d", i)
	}

	v := speedKmh / 3.6
	wantRoll := -math.Atan(v * v / r / gravity)
	end := m.EndTime()
	for i := 1; i < 50; i++ {
		ps, err := m.PoseAtTime(end * float64(i) / 50)
		require.NoError(t, err)

		require.True(t, ps.HasRotationCenter)
		assert.Less(t, ps.RotationCenter.Norm(), r*theta)
		assert.InDelta(t, v, ps.Speed, 1e-3)
		assert.InDelta(t, wantRoll, ps.RollAngle, 1e-4)
		assert.InDelta(t, math.Atan(1.5/r), ps.SteerAngle, 1e-2)
	}
}

func TestSpinMonotone(t *testing.T) {
	for _, kind := range allKinds {
		for category, cases := range testcases.All {
			for _, tc := range cases {
				t.Run(kind.String()+"_"+category+"_"+tc.Name, func(t *testing.T) {
					m := newModel(kind)
					err := m.EvaluatePath(casePoints(t, tc),
						testConfig(tc.SpeedKmh, tc.WheelRadius),
						testRig(kind, tc.Wheelbase, tc.TrackWidth))
					require.NoError(t, err)

					last := map[Role]float64{}
					end := m.EndTime()
					for i := -2; i <= 102; i++ {
						ps, err := m.PoseAtTime(end * float64(i) / 100)
						require.NoError(t, err)
						for role, spin := range ps.Spin {
							assert.GreaterOrEqual(t, spin, last[role], "%s at step %d", role, i)
							last[role] = spin
						}
						assert.Len(t, ps.Spin, len(kind.spinRoles()))
					}
				})
			}
		}
	}
}

func TestEndpoints(t *testing.T) {
	tc := testcases.All["complex"][0]
	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			m := newModel(kind)
			pts := casePoints(t, tc)
			err := m.EvaluatePath(pts, testConfig(tc.SpeedKmh, tc.WheelRadius),
				testRig(kind, tc.Wheelbase, tc.TrackWidth))
			require.NoError(t, err)
			buf := m.Samples()

			ps, err := m.PoseAtTime(0)
			require.NoError(t, err)
			assert.Equal(t, pts[0], ps.Position)
			assertNear(t, buf.Deriv[0].Normalize(), ps.Forward)
			for _, spin := range ps.Spin {
				assert.Zero(t, spin)
			}

			last := buf.Last()
			for _, dt := range []float64{0, 1, 100} {
				ps, err = m.PoseAtTime(m.EndTime() + dt)
				require.NoError(t, err)
				assertNear(t, pts[last], ps.Position, "got %v", ps.Position)
				assertNear(t, buf.Deriv[last].Normalize(), ps.Forward)
			}

			before, err := m.PoseAtTime(-3)
			require.NoError(t, err)
			assert.Equal(t, pts[0], before.Position)
		})
	}
}

func TestIdempotent(t *testing.T) {
	tc := testcases.All["complex"][1]
	for _, kind := range allKinds {
		pts := casePoints(t, tc)
		cfg := testConfig(tc.SpeedKmh, tc.WheelRadius)
		rig := testRig(kind, tc.Wheelbase, tc.TrackWidth)

		m := newModel(kind)
		require.NoError(t, m.EvaluatePath(pts, cfg, rig))
		buf1 := *m.Samples()
		pose1, err := m.PoseAtTime(1.7)
		require.NoError(t, err)

		require.NoError(t, m.EvaluatePath(pts, cfg, rig))
		pose2, err := m.PoseAtTime(1.7)
		require.NoError(t, err)

		assert.Equal(t, buf1, *m.Samples())
		assert.Equal(t, pose1, pose2)
	}
}

func TestPathTransform(t *testing.T) {
	rig := testRig(TwoWheel, 2, 0)
	rig.PathTransform = mgl64.Translate3D(100, 0, 0).Mul4(mgl64.HomogRotate3DZ(math.Pi / 2))

	m := NewSingleTrack()
	require.NoError(t, m.EvaluatePath(linePoints(10), testConfig(36, 1), rig))
	ps, err := m.PoseAtTime(0.3)
	require.NoError(t, err)

	// Path-local values are unaffected, the world matrix is rotated.
	assert.InDelta(t, 3, ps.Position.X, 1e-12)
	assert.True(t, ps.Chassis.Col(3).ApproxEqualThreshold(mgl64.Vec4{100, 3, 0, 1}, 1e-12))
	assert.True(t, ps.Chassis.Col(0).ApproxEqualThreshold(mgl64.Vec4{0, 1, 0, 0}, 1e-12))

	part := ps.Parts[RoleChassis]
	assert.Equal(t, SpaceWorld, part.Space)
	assert.Equal(t, "Car.chassis", part.Part)
	assert.Equal(t, ps.Chassis, part.Matrix)
}
