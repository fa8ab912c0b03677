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

// Package plot draws evaluated vehicle paths, for debugging and for
// documentation.
package plot

import (
	"math"

	"github.com/pkg/errors"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vehicle"
)

// Model is the part of a vehicle model needed for plotting.
type Model interface {
	PoseAtTime(t float64) (*vehicle.PoseSet, error)
	Samples() *vehicle.SampleBuffer
	EndTime() float64
}

// Footprint is the projection of a vehicle onto the motion plane.
type Footprint struct {
	Rear  vec.Vec2 // fixed axis
	Front vec.Vec2 // steering axis
	Steer vec.Vec2 // unit direction of the steered wheel
	Roll  float64
}

// Figure holds everything to be drawn, in path-local coordinates.  The
// motion plane is assumed to be the XY plane.
type Figure struct {
	Track      []vec.Vec2
	Centers    []vec.Vec2
	Footprints []Footprint
	Bounds     rect.Rect

	WheelLength float64
}

// NewFigure samples the model at frames+1 evenly spaced times between the
// start and the end of its path.
func NewFigure(m Model, frames int) (*Figure, error) {
	buf := m.Samples()
	if buf == nil {
		return nil, errors.Wrap(vehicle.ErrModelNotEvaluated, "plotting")
	}
	frames = max(frames, 1)

	fig := &Figure{}
	for _, p := range buf.Points {
		fig.Track = append(fig.Track, vec.Vec2{X: p.X, Y: p.Y})
	}
	fig.Bounds = bounds(fig.Track)

	end := m.EndTime()
	for i := 0; i <= frames; i++ {
		ps, err := m.PoseAtTime(end * float64(i) / float64(frames))
		if err != nil {
			return nil, err
		}
		fwd := vec.Vec2{X: ps.Forward.X, Y: ps.Forward.Y}
		sin, cos := math.Sincos(ps.SteerAngle)
		fp := Footprint{
			Rear:  vec.Vec2{X: ps.Position.X, Y: ps.Position.Y},
			Front: vec.Vec2{X: ps.SteerPosition.X, Y: ps.SteerPosition.Y},
			Steer: vec.Vec2{X: cos*fwd.X - sin*fwd.Y, Y: sin*fwd.X + cos*fwd.Y},
			Roll:  ps.RollAngle,
		}
		fig.Footprints = append(fig.Footprints, fp)
		fig.Bounds = union(fig.Bounds, bounds([]vec.Vec2{fp.Rear, fp.Front}))
	}
	if len(fig.Footprints) > 0 {
		fp := fig.Footprints[0]
		fig.WheelLength = 0.3 * fp.Front.Sub(fp.Rear).Length()
	}

	// Rotation centers of almost straight parts are far away and would
	// squash the plot.
	w := fig.Bounds.URx - fig.Bounds.LLx
	h := fig.Bounds.URy - fig.Bounds.LLy
	limit := rect.Rect{
		LLx: fig.Bounds.LLx - w, LLy: fig.Bounds.LLy - h,
		URx: fig.Bounds.URx + w, URy: fig.Bounds.URy + h,
	}
	for _, c := range buf.Center {
		if !c.OK {
			continue
		}
		p := vec.Vec2{X: c.V.X, Y: c.V.Y}
		if p.X >= limit.LLx && p.X <= limit.URx && p.Y >= limit.LLy && p.Y <= limit.URy {
			fig.Centers = append(fig.Centers, p)
		}
	}
	if len(fig.Centers) > 0 {
		fig.Bounds = union(fig.Bounds, bounds(fig.Centers))
	}

	return fig, nil
}

// line is a polyline to be stroked.
type line struct {
	pts   []vec.Vec2 // path-local coordinates
	width float64    // in device units
	gray  float64    // 0 is black, 1 is white
}

// markerSize is the size of the rotation center markers, in device units.
const markerSize = 2.0

// lines returns the strokes of the figure in drawing order.  The matrix m
// maps path-local coordinates to device coordinates.
func (f *Figure) lines(m matrix.Matrix) []line {
	var res []line

	scale := math.Hypot(m[0], m[1])
	d := markerSize / scale
	for _, c := range f.Centers {
		res = append(res,
			line{pts: []vec.Vec2{{X: c.X - d, Y: c.Y}, {X: c.X + d, Y: c.Y}}, width: 0.5, gray: 0.6},
			line{pts: []vec.Vec2{{X: c.X, Y: c.Y - d}, {X: c.X, Y: c.Y + d}}, width: 0.5, gray: 0.6})
	}

	if len(f.Track) > 1 {
		res = append(res, line{pts: f.Track, width: 1.5, gray: 0})
	}

	half := f.WheelLength / 2
	for _, fp := range f.Footprints {
		fwd := fp.Front.Sub(fp.Rear)
		if l := fwd.Length(); l > 0 {
			fwd = fwd.Mul(1 / l)
		}
		res = append(res,
			line{pts: []vec.Vec2{fp.Rear, fp.Front}, width: 1, gray: 0.4},
			line{pts: []vec.Vec2{fp.Rear.Sub(fwd.Mul(half)), fp.Rear.Add(fwd.Mul(half))}, width: 3, gray: 0.2},
			line{pts: []vec.Vec2{fp.Front.Sub(fp.Steer.Mul(half)), fp.Front.Add(fp.Steer.Mul(half))}, width: 3, gray: 0.2})
	}
	return res
}

// fit returns the matrix which maps the figure bounds into a device area
// of the given size, keeping the aspect ratio.  If flip is set, the device
// y axis points down.
func (f *Figure) fit(width, height float64, flip bool) matrix.Matrix {
	const margin = 0.05

	b := f.Bounds
	w := max(b.URx-b.LLx, 1e-6)
	h := max(b.URy-b.LLy, 1e-6)
	s := (1 - 2*margin) * min(width/w, height/h)

	tx := width/2 - s*(b.LLx+b.URx)/2
	ty := height/2 - s*(b.LLy+b.URy)/2
	if flip {
		return matrix.Matrix{s, 0, 0, -s, tx, height - ty}
	}
	return matrix.Matrix{s, 0, 0, s, tx, ty}
}

func apply(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	}
}

func bounds(pts []vec.Vec2) rect.Rect {
	if len(pts) == 0 {
		return rect.Rect{}
	}
	b := rect.Rect{LLx: pts[0].X, LLy: pts[0].Y, URx: pts[0].X, URy: pts[0].Y}
	for _, p := range pts[1:] {
		b.LLx = min(b.LLx, p.X)
		b.LLy = min(b.LLy, p.Y)
		b.URx = max(b.URx, p.X)
		b.URy = max(b.URy, p.Y)
	}
	return b
}

func union(a, b rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: min(a.LLx, b.LLx),
		LLy: min(a.LLy, b.LLy),
		URx: max(a.URx, b.URx),
		URy: max(a.URy, b.URy),
	}
}
