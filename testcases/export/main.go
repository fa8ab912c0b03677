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

// Command export writes the poses of all test cases to JSON, as reference
// data for regression tests.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/vehicle"
	"seehuhn.de/go/vehicle/testcases"
)

// steps is the number of pose samples per test case.
const steps = 16

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			for _, kind := range []vehicle.ModelKind{vehicle.TwoWheel, vehicle.FourWheel} {
				jtc, err := toJSON(category, tc, kind)
				if err != nil {
					panic(fmt.Errorf("%s_%s: %w", category, tc.Name, err))
				}
				out.TestCases = append(out.TestCases, jtc)
			}
		}
	}

	f, err := os.Create("testdata/poses.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name        string        `json:"name"`
	Kind        string        `json:"kind"`
	Wheelbase   float64       `json:"wheelbase"`
	TrackWidth  float64       `json:"track_width"`
	WheelRadius float64       `json:"wheel_radius"`
	SpeedKmh    float64       `json:"speed_kmh"`
	Resolution  int           `json:"resolution"`
	Path        []jsonSegment `json:"path"`
	EndTime     float64       `json:"end_time"`
	Poses       []jsonPose    `json:"poses"`
}

type jsonSegment struct {
	Cmd string      `json:"cmd"`
	Pts [][]float64 `json:"pts"`
}

type jsonPose struct {
	Time       float64            `json:"t"`
	Position   []float64          `json:"position"`
	Forward    []float64          `json:"forward"`
	SteerAngle float64            `json:"steer_angle"`
	RollAngle  float64            `json:"roll_angle"`
	Curvature  float64            `json:"curvature"`
	Spin       map[string]float64 `json:"spin"`
}

func toJSON(category string, tc testcases.TestCase, kind vehicle.ModelKind) (jsonTestCase, error) {
	jtc := jsonTestCase{
		Name:        category + "_" + tc.Name,
		Kind:        kind.String(),
		Wheelbase:   tc.Wheelbase,
		TrackWidth:  tc.TrackWidth,
		WheelRadius: tc.WheelRadius,
		SpeedKmh:    tc.SpeedKmh,
		Resolution:  tc.Resolution,
		Path:        pathToJSON(tc.Path),
	}

	sp, err := tc.Spline()
	if err != nil {
		return jtc, err
	}
	cfg := vehicle.DefaultConfig()
	cfg.SpeedKmh = tc.SpeedKmh
	cfg.WheelRadius = tc.WheelRadius
	cfg.Resolution = tc.Resolution
	m, err := vehicle.New(kind, sp, cfg, vehicle.NewRig(kind, tc.Name, tc.Wheelbase, tc.TrackWidth))
	if err != nil {
		return jtc, err
	}

	jtc.EndTime = m.EndTime()
	for i := 0; i <= steps; i++ {
		t := jtc.EndTime * float64(i) / steps
		ps, err := m.PoseAtTime(t)
		if err != nil {
			return jtc, err
		}
		jp := jsonPose{
			Time:       t,
			Position:   []float64{ps.Position.X, ps.Position.Y, ps.Position.Z},
			Forward:    []float64{ps.Forward.X, ps.Forward.Y, ps.Forward.Z},
			SteerAngle: ps.SteerAngle,
			RollAngle:  ps.RollAngle,
			Curvature:  ps.Curvature,
			Spin:       make(map[string]float64, len(ps.Spin)),
		}
		for role, a := range ps.Spin {
			jp.Spin[string(role)] = a
		}
		jtc.Poses = append(jtc.Poses, jp)
	}
	return jtc, nil
}

func pathToJSON(p path.Path) []jsonSegment {
	var segs []jsonSegment
	for cmd, pts := range p {
		seg := jsonSegment{Pts: make([][]float64, len(pts))}
		switch cmd {
		case path.CmdMoveTo:
			seg.Cmd = "M"
		case path.CmdLineTo:
			seg.Cmd = "L"
		case path.CmdQuadTo:
			seg.Cmd = "Q"
		case path.CmdCubeTo:
			seg.Cmd = "C"
		case path.CmdClose:
			seg.Cmd = "Z"
		}
		for i, pt := range pts {
			seg.Pts[i] = []float64{pt.X, pt.Y}
		}
		segs = append(segs, seg)
	}
	return segs
}
