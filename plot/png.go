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

package plot

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/vec"
)

// Render draws the figure into a new grayscale image.
func Render(fig *Figure, width, height int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	m := fig.fit(float64(width), float64(height), true)
	r := vector.NewRasterizer(width, height)
	for _, l := range fig.lines(m) {
		r.Reset(width, height)

		pts := make([]vec.Vec2, len(l.pts))
		for i, p := range l.pts {
			pts[i] = apply(m, p)
		}
		d := l.width / 2
		for i := 1; i < len(pts); i++ {
			addSegment(r, pts[i-1], pts[i], d)
		}
		for _, p := range pts {
			addDisc(r, p, d)
		}

		src := image.NewUniform(color.Gray{Y: uint8(255 * l.gray)})
		r.Draw(dst, dst.Bounds(), src, image.Point{})
	}
	return dst
}

// WritePNG renders the figure and writes it in PNG format.
func WritePNG(w io.Writer, fig *Figure, width, height int) error {
	return png.Encode(w, Render(fig, width, height))
}

// addSegment adds the outline of a line segment of half-width d.
func addSegment(r *vector.Rasterizer, a, b vec.Vec2, d float64) {
	t := b.Sub(a)
	l := t.Length()
	if l == 0 {
		return
	}
	t = t.Mul(1 / l)
	n := vec.Vec2{X: -t.Y, Y: t.X}.Mul(d)

	p0 := a.Add(n)
	p1 := b.Add(n)
	p2 := b.Sub(n)
	p3 := a.Sub(n)
	r.MoveTo(float32(p0.X), float32(p0.Y))
	r.LineTo(float32(p1.X), float32(p1.Y))
	r.LineTo(float32(p2.X), float32(p2.Y))
	r.LineTo(float32(p3.X), float32(p3.Y))
	r.ClosePath()
}

// addDisc adds a disc of radius d, used for round caps and joins.  The
// orientation matches the segments added by addSegment, so that overlaps
// do not cancel.
func addDisc(r *vector.Rasterizer, c vec.Vec2, d float64) {
	const k = 0.5522847498
	cx, cy := float32(c.X), float32(c.Y)
	rad := float32(d)
	kr := float32(k * d)

	r.MoveTo(cx+rad, cy)
	r.CubeTo(cx+rad, cy-kr, cx+kr, cy-rad, cx, cy-rad)
	r.CubeTo(cx-kr, cy-rad, cx-rad, cy-kr, cx-rad, cy)
	r.CubeTo(cx-rad, cy+kr, cx-kr, cy+rad, cx, cy+rad)
	r.CubeTo(cx+kr, cy+rad, cx+rad, cy+kr, cx+rad, cy)
	r.ClosePath()
}
