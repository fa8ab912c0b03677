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

// Package curve evaluates and samples the spline curves which vehicles
// follow.
package curve

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Errors returned when a spline is malformed.
var (
	ErrTooFewPoints     = errors.New("too few control points")
	ErrBadOrder         = errors.New("invalid spline order")
	ErrBadKnots         = errors.New("invalid knot vector")
	ErrBadWeights       = errors.New("invalid weights")
	ErrBadResolution    = errors.New("invalid resolution")
	ErrMultipleSubpaths = errors.New("path has more than one subpath")
	ErrEmptyPath        = errors.New("path has no segments")
)

// Kind is the mathematical type of a spline.
type Kind int

const (
	// Poly is a polyline through the control points.
	Poly Kind = iota

	// Bezier is a sequence of cubic Bézier segments.  The control points
	// are p0, c1, c2, p1, c1, c2, p2, ...
	Bezier

	// NURBS is a non-uniform rational B-spline.
	NURBS
)

func (k Kind) String() string {
	switch k {
	case Poly:
		return "poly"
	case Bezier:
		return "bezier"
	case NURBS:
		return "nurbs"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText implements the encoding.TextMarshaler interface.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case Poly, Bezier, NURBS:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("unknown spline kind %d", int(k))
	}
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (k *Kind) UnmarshalText(text []byte) error {
	for _, cand := range []Kind{Poly, Bezier, NURBS} {
		if string(text) == cand.String() {
			*k = cand
			return nil
		}
	}
	return fmt.Errorf("unknown spline kind %q", text)
}

// Spline is a curve in 3D space.
type Spline struct {
	Kind   Kind        `json:"kind"`
	Order  int         `json:"order,omitempty"` // degree + 1, NURBS only
	Points []r3.Vector `json:"points"`          // control points

	// Weights holds one weight per control point.  A nil slice means that
	// all weights are 1.
	Weights []float64 `json:"weights,omitempty"`

	// Knots has len(Points)+Order entries.  A nil slice selects a clamped
	// uniform knot vector, so that the curve starts at the first and ends
	// at the last control point.
	Knots []float64 `json:"knots,omitempty"`
}

// Validate checks the structure of the spline.
func (s *Spline) Validate() error {
	n := len(s.Points)
	switch s.Kind {
	case Poly:
		if n < 2 {
			return fmt.Errorf("%d points: %w", n, ErrTooFewPoints)
		}
	case Bezier:
		if n < 4 || (n-1)%3 != 0 {
			return fmt.Errorf("%d Bézier control points: %w", n, ErrTooFewPoints)
		}
	case NURBS:
		if s.Order < 2 {
			return fmt.Errorf("order %d: %w", s.Order, ErrBadOrder)
		}
		if n < s.Order {
			return fmt.Errorf("%d points for order %d: %w", n, s.Order, ErrTooFewPoints)
		}
		if s.Weights != nil {
			if len(s.Weights) != n {
				return fmt.Errorf("%d weights for %d points: %w", len(s.Weights), n, ErrBadWeights)
			}
			for i, w := range s.Weights {
				if !(w > 0) || math.IsInf(w, 0) {
					return fmt.Errorf("weight %d is %g: %w", i, w, ErrBadWeights)
				}
			}
		}
		if s.Knots != nil {
			if len(s.Knots) != n+s.Order {
				return fmt.Errorf("%d knots for %d points of order %d: %w",
					len(s.Knots), n, s.Order, ErrBadKnots)
			}
			for i := 1; i < len(s.Knots); i++ {
				if !(s.Knots[i] >= s.Knots[i-1]) {
					return fmt.Errorf("knot %d decreases: %w", i, ErrBadKnots)
				}
			}
			if !(s.Knots[n] > s.Knots[s.Order-1]) {
				return fmt.Errorf("empty parameter domain: %w", ErrBadKnots)
			}
		}
	default:
		return fmt.Errorf("unknown spline kind %d", int(s.Kind))
	}
	return nil
}

// knots returns the knot vector of a NURBS spline.
func (s *Spline) knots() []float64 {
	if s.Knots != nil {
		return s.Knots
	}
	return ClampedKnots(len(s.Points), s.Order)
}

// ClampedKnots returns the clamped uniform knot vector for n control points
// of the given order.  The parameter domain is [0, n-order+1].
func ClampedKnots(n, order int) []float64 {
	knots := make([]float64, n+order)
	for i := range knots {
		knots[i] = float64(min(max(i-order+1, 0), n-order+1))
	}
	return knots
}

func (s *Spline) weight(i int) float64 {
	if s.Weights == nil {
		return 1
	}
	return s.Weights[i]
}

// Domain returns the parameter range of the spline.
func (s *Spline) Domain() (float64, float64) {
	switch s.Kind {
	case NURBS:
		t := s.knots()
		return t[s.Order-1], t[len(s.Points)]
	case Bezier:
		return 0, float64((len(s.Points) - 1) / 3)
	default:
		return 0, float64(len(s.Points) - 1)
	}
}

// spans returns the start indices k of the non-empty knot intervals
// [t_k, t_{k+1}) inside the parameter domain of a NURBS spline.
func (s *Spline) spans(t []float64) []int {
	var res []int
	for k := s.Order - 1; k < len(s.Points); k++ {
		if t[k] < t[k+1] {
			res = append(res, k)
		}
	}
	return res
}

// Spans returns the number of polynomial pieces of the spline.
func (s *Spline) Spans() int {
	switch s.Kind {
	case NURBS:
		return len(s.spans(s.knots()))
	case Bezier:
		return (len(s.Points) - 1) / 3
	default:
		return len(s.Points) - 1
	}
}

// Eval returns the point of the spline at parameter u.  Values outside
// the parameter domain are clamped.
func (s *Spline) Eval(u float64) r3.Vector {
	lo, hi := s.Domain()
	u = max(lo, min(hi, u))

	switch s.Kind {
	case NURBS:
		t := s.knots()
		spans := s.spans(t)
		k := spans[len(spans)-1]
		for _, j := range spans {
			if u < t[j+1] {
				k = j
				break
			}
		}
		return s.deBoor(t, k, u)
	case Bezier:
		i := min(int(u), (len(s.Points)-1)/3-1)
		return cubicPoint(s.Points[3*i:3*i+4], u-float64(i))
	default:
		i := min(int(u), len(s.Points)-2)
		f := u - float64(i)
		return s.Points[i].Mul(1 - f).Add(s.Points[i+1].Mul(f))
	}
}

// deBoor evaluates a NURBS spline at u, where t[k] <= u <= t[k+1].  The
// computation uses homogeneous coordinates.
func (s *Spline) deBoor(t []float64, k int, u float64) r3.Vector {
	p := s.Order - 1

	type hpoint struct {
		v r3.Vector
		w float64
	}
	d := make([]hpoint, p+1)
	for j := range d {
		i := j + k - p
		w := s.weight(i)
		d[j] = hpoint{v: s.Points[i].Mul(w), w: w}
	}

	for r := 1; r <= p; r++ {
		for j := p; j >= r; j-- {
			i := j + k - p
			alpha := (u - t[i]) / (t[i+p-r+1] - t[i])
			d[j] = hpoint{
				v: d[j-1].v.Mul(1 - alpha).Add(d[j].v.Mul(alpha)),
				w: (1-alpha)*d[j-1].w + alpha*d[j].w,
			}
		}
	}

	return d[p].v.Mul(1 / d[p].w)
}

// cubicPoint evaluates a cubic Bézier segment with control points c at
// parameter f in [0, 1].
func cubicPoint(c []r3.Vector, f float64) r3.Vector {
	g := 1 - f
	return c[0].Mul(g * g * g).
		Add(c[1].Mul(3 * g * g * f)).
		Add(c[2].Mul(3 * g * f * f)).
		Add(c[3].Mul(f * f * f))
}

// Tessellate samples the spline at resolution evenly spaced parameter
// values per span, plus the end point.  Poly splines return a copy of
// their points.
func (s *Spline) Tessellate(resolution int) ([]r3.Vector, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Kind == Poly {
		return append([]r3.Vector(nil), s.Points...), nil
	}
	if resolution < 1 {
		return nil, fmt.Errorf("resolution %d: %w", resolution, ErrBadResolution)
	}

	var starts, ends []float64
	if s.Kind == NURBS {
		t := s.knots()
		for _, k := range s.spans(t) {
			starts = append(starts, t[k])
			ends = append(ends, t[k+1])
		}
	} else {
		for i := range s.Spans() {
			starts = append(starts, float64(i))
			ends = append(ends, float64(i+1))
		}
	}

	res := make([]r3.Vector, 0, len(starts)*resolution+1)
	for i := range starts {
		a, b := starts[i], ends[i]
		for j := range resolution {
			u := a + (b-a)*float64(j)/float64(resolution)
			res = append(res, s.Eval(u))
		}
	}
	_, hi := s.Domain()
	res = append(res, s.Eval(hi))
	return res, nil
}
