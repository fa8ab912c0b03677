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

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Bracket identifies the two samples enclosing a curve-time, together with
// the interpolation fraction between them.
type Bracket struct {
	I1, I2 int
	Frac   float64
}

// Locate finds the samples enclosing curveTime on a curve with n samples.
// Curve-times before the start map to the first sample, curve-times at or
// beyond sample n-3 map to sample n-3.  The path holds its end pose rather
// than extrapolating.
func Locate(curveTime float64, n int) Bracket {
	last := n - 3
	i := math.Floor(curveTime)
	switch {
	case i < 0 || math.IsNaN(i):
		return Bracket{}
	case i >= float64(last):
		return Bracket{I1: last, I2: last}
	}
	i1 := int(i)
	return Bracket{I1: i1, I2: i1 + 1, Frac: curveTime - i}
}

// Scalar interpolates a per-sample scalar field.
func (b Bracket) Scalar(v []float64) float64 {
	return lerp(v[b.I1], v[b.I2], b.Frac)
}

// Vector interpolates a per-sample vector field.
func (b Bracket) Vector(v []r3.Vector) r3.Vector {
	return lerpVec(v[b.I1], v[b.I2], b.Frac)
}

func lerp(a, b, f float64) float64 {
	return (1-f)*a + f*b
}

func lerpVec(a, b r3.Vector, f float64) r3.Vector {
	return a.Mul(1 - f).Add(b.Mul(f))
}

// ArcLengthIndex maps physical time to curve-time, using a constant speed
// along the arc-length of the sampled curve.
type ArcLengthIndex struct {
	n         int
	length    float64 // total arc-length
	speed     float64 // m/s
	timeRatio float64 // curve-time per second
}

// NewArcLengthIndex returns the time mapping for the given samples when
// travelled at speedKmh.
func NewArcLengthIndex(buf *SampleBuffer, speedKmh float64) (*ArcLengthIndex, error) {
	speed := speedKmh / 3.6
	if !(speed > 0) || math.IsInf(speed, 0) {
		return nil, errors.Wrapf(ErrDegenerateGeometry, "mean speed %g km/h", speedKmh)
	}
	length := buf.TotalLength()
	if !(length > 0) {
		return nil, errors.Wrap(ErrDegenerateGeometry, "curve has zero length")
	}

	timeForCurve := length / speed
	return &ArcLengthIndex{
		n:         buf.Len(),
		length:    length,
		speed:     speed,
		timeRatio: buf.CurveSpan() / timeForCurve,
	}, nil
}

// CurveTime converts a time in seconds into curve-time.
func (a *ArcLengthIndex) CurveTime(t float64) float64 {
	return a.timeRatio * t
}

// TimeRatio returns the number of unit curve-time steps per second.
func (a *ArcLengthIndex) TimeRatio() float64 {
	return a.timeRatio
}

// TimeDelta returns the time in seconds per unit curve-time step.
func (a *ArcLengthIndex) TimeDelta() float64 {
	return 1 / a.timeRatio
}

// Speed returns the configured mean speed in m/s.
func (a *ArcLengthIndex) Speed() float64 {
	return a.speed
}

// Locate returns the samples enclosing time t.
func (a *ArcLengthIndex) Locate(t float64) Bracket {
	return Locate(a.CurveTime(t), a.n)
}

// EndTime returns the first time at which the terminal pose is reached.
func (a *ArcLengthIndex) EndTime() float64 {
	return float64(a.n-3) / a.timeRatio
}
