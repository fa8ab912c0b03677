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

package curve

import (
	"github.com/golang/geo/r3"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// FromPath converts a 2D path into a cubic NURBS spline in the XY plane.
// The path must consist of a single subpath.  Lines and quadratic segments
// are converted into equivalent cubic segments, so the spline traces the
// path exactly.
func FromPath(p path.Path) (*Spline, error) {
	var ctrl []r3.Vector
	var start, current vec.Vec2
	started := false
	segments := 0

	lineTo := func(to vec.Vec2) {
		d := to.Sub(current)
		ctrl = append(ctrl,
			point(current.Add(d.Mul(1.0/3))),
			point(current.Add(d.Mul(2.0/3))),
			point(to))
		current = to
		segments++
	}

	for cmd, pts := range p.ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			if segments > 0 {
				return nil, ErrMultipleSubpaths
			}
			start, current = pts[0], pts[0]
			ctrl = append(ctrl[:0], point(start))
			started = true
		case path.CmdLineTo:
			if !started {
				return nil, ErrEmptyPath
			}
			lineTo(pts[0])
		case path.CmdCubeTo:
			if !started {
				return nil, ErrEmptyPath
			}
			ctrl = append(ctrl, point(pts[0]), point(pts[1]), point(pts[2]))
			current = pts[2]
			segments++
		case path.CmdClose:
			if started && current != start {
				lineTo(start)
			}
		}
	}
	if segments == 0 {
		return nil, ErrEmptyPath
	}

	// Interior knots have multiplicity 3, so that each cubic segment is
	// one span of the spline.
	knots := make([]float64, 0, 3*segments+5)
	knots = append(knots, 0, 0, 0, 0)
	for s := 1; s < segments; s++ {
		u := float64(s)
		knots = append(knots, u, u, u)
	}
	m := float64(segments)
	knots = append(knots, m, m, m, m)

	return &Spline{
		Kind:   NURBS,
		Order:  4,
		Points: ctrl,
		Knots:  knots,
	}, nil
}

// Polyline returns a NURBS spline of order 2 through the given points.
// Tessellating it at resolution r places r-1 extra samples on every
// segment.
func Polyline(points []r3.Vector) *Spline {
	return &Spline{
		Kind:   NURBS,
		Order:  2,
		Points: points,
	}
}

func point(v vec.Vec2) r3.Vector {
	return r3.Vector{X: v.X, Y: v.Y}
}
