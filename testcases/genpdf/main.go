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

// Command genpdf draws all test cases, for visual inspection of the
// computed vehicle poses.  For every test case and vehicle kind it writes
// a PDF, with the input track drawn below the sampled path, and a PNG
// rendering of the same figure.
package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/vehicle"
	"seehuhn.de/go/vehicle/plot"
	"seehuhn.de/go/vehicle/testcases"
)

const (
	plotDir = "testdata/plots"
	frames  = 24
	size    = 400
)

func main() {
	if err := os.MkdirAll(plotDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			for _, kind := range []vehicle.ModelKind{vehicle.TwoWheel, vehicle.FourWheel} {
				name := category + "_" + tc.Name + "_" + kind.String()
				if err := generate(tc, kind, filepath.Join(plotDir, name)); err != nil {
					panic(fmt.Errorf("%s: %w", name, err))
				}
			}
		}
	}
}

func generate(tc testcases.TestCase, kind vehicle.ModelKind, base string) error {
	sp, err := tc.Spline()
	if err != nil {
		return err
	}
	cfg := vehicle.DefaultConfig()
	cfg.SpeedKmh = tc.SpeedKmh
	cfg.WheelRadius = tc.WheelRadius
	cfg.Resolution = tc.Resolution
	rig := vehicle.NewRig(kind, tc.Name, tc.Wheelbase, tc.TrackWidth)

	m, err := vehicle.New(kind, sp, cfg, rig)
	if err != nil {
		return err
	}
	fig, err := plot.NewFigure(m, frames)
	if err != nil {
		return err
	}

	if err := plot.WritePDF(base+".pdf", fig, tc.Path, size, size); err != nil {
		return err
	}

	f, err := os.Create(base + ".png")
	if err != nil {
		return err
	}
	if err := plot.WritePNG(f, fig, size, size); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
