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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
)

// WritePDF writes the figure to a single page PDF file.  The page size is
// given in PDF points.  If guide is not nil, it is drawn below the figure
// as a wide, light line.  The guide must use path-local coordinates.
func WritePDF(fname string, fig *Figure, guide path.Path, width, height float64) error {
	paper := &pdf.Rectangle{
		URx: width,
		URy: height,
	}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(color.DeviceGray(1))
	page.Rectangle(0, 0, width, height)
	page.Fill()

	m := fig.fit(width, height, false)
	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)

	if guide != nil {
		page.SetStrokeColor(color.DeviceGray(0.75))
		page.SetLineWidth(4)
		var pts [3]vec.Vec2
		for cmd, src := range guide.ToCubic() {
			for i, p := range src {
				pts[i] = apply(m, p)
			}
			switch cmd {
			case path.CmdMoveTo:
				page.MoveTo(pts[0].X, pts[0].Y)
			case path.CmdLineTo:
				page.LineTo(pts[0].X, pts[0].Y)
			case path.CmdCubeTo:
				page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			case path.CmdClose:
				page.ClosePath()
			}
		}
		page.Stroke()
	}

	for _, l := range fig.lines(m) {
		page.SetStrokeColor(color.DeviceGray(l.gray))
		page.SetLineWidth(l.width)
		p := apply(m, l.pts[0])
		page.MoveTo(p.X, p.Y)
		for _, q := range l.pts[1:] {
			p = apply(m, q)
			page.LineTo(p.X, p.Y)
		}
		page.Stroke()
	}

	return page.Close()
}
