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
	"slices"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// curvatureThreshold is the curvature below which the path is treated as
// locally straight.  Curvature normals and rotation centers are undefined
// for such samples.
const curvatureThreshold = 1e-8

// MinSamples is the smallest number of curve samples a path can be built
// from.
const MinSamples = 4

// OptVec is a vector which may be undefined.
type OptVec struct {
	V  r3.Vector
	OK bool
}

// SampleBuffer holds the sample points of the fixed-axis reference curve
// together with the fields derived from them.  Samples are taken at unit
// parametric time-step.
//
// For n points, Deriv has n-1 entries and Deriv2, Curvature, Normal and
// Center have n-2 entries.
type SampleBuffer struct {
	Points    []r3.Vector // positions P_i
	Deriv     []r3.Vector // D_i = P_{i+1} - P_i
	Deriv2    []r3.Vector // D2_i = D_{i+1} - D_i
	Curvature []float64   // |D_i x D2_i| / |D_i|^3
	Normal    []OptVec    // unit curvature normal, undefined on straight parts
	Center    []OptVec    // rotation center, undefined on straight parts
	Length    []float64   // cumulative arc-length, Length[0] = 0
}

// NewSampleBuffer derives all per-sample fields from the given curve
// points.  The buffer keeps its own copy of the points.
func NewSampleBuffer(points []r3.Vector) (*SampleBuffer, error) {
	n := len(points)
	if n < MinSamples {
		return nil, errors.Wrapf(ErrInvalidCurveTopology,
			"%d curve samples, need at least %d", n, MinSamples)
	}

	b := &SampleBuffer{
		Points:    slices.Clone(points),
		Deriv:     make([]r3.Vector, n-1),
		Deriv2:    make([]r3.Vector, n-2),
		Curvature: make([]float64, n-2),
		Normal:    make([]OptVec, n-2),
		Center:    make([]OptVec, n-2),
		Length:    make([]float64, n),
	}

	for i := 0; i < n-1; i++ {
		d := b.Points[i+1].Sub(b.Points[i])
		l := d.Norm()
		if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
			return nil, errors.Wrapf(ErrDegenerateGeometry,
				"curve samples %d and %d coincide", i, i+1)
		}
		b.Deriv[i] = d
		b.Length[i+1] = b.Length[i] + l
	}

	for i := 0; i < n-2; i++ {
		d := b.Deriv[i]
		d2 := b.Deriv[i+1].Sub(d)
		b.Deriv2[i] = d2

		c := d.Cross(d2)
		l := d.Norm()
		kappa := c.Norm() / (l * l * l)
		b.Curvature[i] = kappa
		if kappa < curvatureThreshold {
			continue
		}

		normal := c.Normalize()
		b.Normal[i] = OptVec{V: normal, OK: true}

		// The center lies on the inner side of the turn, at distance
		// 1/kappa from the sample.
		forward := d.Mul(1 / l)
		b.Center[i] = OptVec{
			V:  b.Points[i].Add(normal.Cross(forward).Mul(1 / kappa)),
			OK: true,
		}
	}

	return b, nil
}

// Len returns the number of sample points.
func (b *SampleBuffer) Len() int {
	return len(b.Points)
}

// TotalLength returns the arc-length of the whole sampled curve.
func (b *SampleBuffer) TotalLength() float64 {
	return b.Length[len(b.Length)-1]
}

// CurveSpan returns the parametric length of the curve, i.e. the number of
// unit time-steps between the first and last sample.
func (b *SampleBuffer) CurveSpan() float64 {
	return float64(len(b.Points) - 1)
}

// Last returns the index of the last sample which has all derived fields.
// Queries beyond this index are clamped.
func (b *SampleBuffer) Last() int {
	return len(b.Points) - 3
}

// SignedCurvature returns the curvature of sample i, negative when the
// curve turns clockwise as seen from the tip of up.
func (b *SampleBuffer) SignedCurvature(i int, up r3.Vector) float64 {
	kappa := b.Curvature[i]
	if nrm := b.Normal[i]; nrm.OK && nrm.V.Dot(up) < 0 {
		return -kappa
	}
	return kappa
}

// checkPlanar verifies that all points have the same component along up.
func checkPlanar(points []r3.Vector, up r3.Vector) error {
	if len(points) == 0 {
		return nil
	}
	var extent float64
	for _, p := range points[1:] {
		extent = max(extent, p.Sub(points[0]).Norm())
	}
	tol := planarityTolerance * max(extent, 1)

	h0 := points[0].Dot(up)
	for i, p := range points {
		if math.Abs(p.Dot(up)-h0) > tol {
			return errors.Wrapf(ErrInvalidCurveTopology,
				"sample %d leaves the motion plane by %g", i, p.Dot(up)-h0)
		}
	}
	return nil
}

// planarityTolerance is relative to the extent of the curve.
const planarityTolerance = 1e-6
