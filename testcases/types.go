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

// Package testcases provides named planar tracks for testing and plotting
// vehicle path kinematics.
package testcases

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vehicle/curve"
)

// TestCase defines a vehicle driving along one track.
type TestCase struct {
	Name        string    // lowercase a-z and _ only
	Path        path.Path // the track in the XY plane, in metres
	Wheelbase   float64   // distance between fixed and steering axis
	TrackWidth  float64   // distance between left and right wheels
	WheelRadius float64
	SpeedKmh    float64
	Resolution  int // curve samples per path segment
}

// Dimensions of the default test vehicle.
const (
	wheelbase   = 2.7
	trackWidth  = 1.6
	wheelRadius = 0.35
	speedKmh    = 30
	resolution  = 12
)

// car returns a test case with the default vehicle dimensions.
func car(name string, p path.Path) TestCase {
	return TestCase{
		Name:        name,
		Path:        p,
		Wheelbase:   wheelbase,
		TrackWidth:  trackWidth,
		WheelRadius: wheelRadius,
		SpeedKmh:    speedKmh,
		Resolution:  resolution,
	}
}

// track builds a path from straight pieces and circular arcs, turtle
// fashion.
type track struct {
	d       *path.Data
	pos     vec.Vec2
	heading float64 // radians, counter-clockwise from +X
}

func newTrack(x, y, headingDeg float64) *track {
	p := vec.Vec2{X: x, Y: y}
	return &track{
		d:       (&path.Data{}).MoveTo(p),
		pos:     p,
		heading: headingDeg * math.Pi / 180,
	}
}

func (t *track) dir() vec.Vec2 {
	return vec.Vec2{X: math.Cos(t.heading), Y: math.Sin(t.heading)}
}

// straight drives l metres ahead.
func (t *track) straight(l float64) *track {
	t.pos = t.pos.Add(t.dir().Mul(l))
	t.d = t.d.LineTo(t.pos)
	return t
}

// turn drives along a circle of radius r, turning by deg degrees.  Positive
// angles turn left.
func (t *track) turn(r, deg float64) *track {
	sweep := deg * math.Pi / 180
	side := 1.0
	if sweep < 0 {
		side = -1
	}
	left := vec.Vec2{X: -math.Sin(t.heading), Y: math.Cos(t.heading)}
	center := t.pos.Add(left.Mul(side * r))

	// Each cubic covers at most a quarter circle.
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	k := 4.0 / 3 * math.Tan(step/4) * r

	a := math.Atan2(t.pos.Y-center.Y, t.pos.X-center.X)
	for range n {
		b := a + step
		p0 := t.pos
		p1 := vec.Vec2{X: center.X + r*math.Cos(b), Y: center.Y + r*math.Sin(b)}
		c1 := p0.Add(vec.Vec2{X: -math.Sin(a), Y: math.Cos(a)}.Mul(k))
		c2 := p1.Sub(vec.Vec2{X: -math.Sin(b), Y: math.Cos(b)}.Mul(k))
		t.d = t.d.CubeTo(c1, c2, p1)
		t.pos = p1
		a = b
	}
	t.heading += sweep
	return t
}

func (t *track) path() path.Path {
	return t.d.Iter()
}

// Spline returns the track as a NURBS curve.
func (tc TestCase) Spline() (*curve.Spline, error) {
	return curve.FromPath(tc.Path)
}
