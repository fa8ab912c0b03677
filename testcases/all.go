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

package testcases

// All contains all test cases, grouped by category.
// The category name is used as a prefix in output filenames.
var All = map[string][]TestCase{
	"straight": straightCases,
	"arc":      arcCases,
	"complex":  complexCases,
}

var straightCases = []TestCase{
	car("axis", newTrack(0, 0, 0).straight(50).path()),
	car("diagonal", newTrack(0, 0, 45).straight(40).path()),
	car("backwards", newTrack(30, 5, 180).straight(30).path()),
}

var arcCases = []TestCase{
	car("quarter_left", newTrack(0, 0, 0).turn(20, 90).path()),
	car("quarter_right", newTrack(0, 0, 0).turn(20, -90).path()),
	car("half_left", newTrack(0, 0, 90).turn(15, 180).path()),
	car("u_turn", newTrack(0, 0, 0).straight(20).turn(8, 180).straight(20).path()),
	car("tight", newTrack(0, 0, 0).turn(5, 270).path()),
}

var complexCases = []TestCase{
	car("s_curve", newTrack(0, 0, 0).turn(15, 60).turn(15, -60).path()),
	car("lane_change", newTrack(0, 0, 0).
		straight(10).turn(30, 20).turn(30, -20).straight(10).path()),
	car("roundabout", newTrack(0, 0, 0).
		straight(15).turn(6, -45).turn(12, 270).turn(6, -45).straight(15).path()),
	car("spiral", newTrack(0, 0, 0).
		turn(30, 90).turn(22, 90).turn(15, 90).turn(10, 90).turn(6, 90).path()),
	car("figure_eight", newTrack(0, 0, 0).turn(10, 360).turn(10, -360).path()),
	car("slalom", newTrack(0, 0, 0).
		turn(12, 30).turn(12, -60).turn(12, 60).turn(12, -60).turn(12, 30).path()),
}
