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
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"seehuhn.de/go/vehicle/curve"
)

// Scene gives access to the host scene graph.
type Scene interface {
	// WorldPosition returns the world-space origin of a part.
	WorldPosition(part string) (r3.Vector, bool)

	// LocalMatrix returns the transformation of a part relative to its
	// parent.
	LocalMatrix(part string) (mgl64.Mat4, bool)

	// Spline returns the curve of a path object, together with the world
	// matrix of that object.
	Spline(part string) (*curve.Spline, mgl64.Mat4, bool)
}

// StaticScene is an in-memory Scene.  It can be loaded from JSON.
type StaticScene struct {
	Parts map[string]*ScenePart `json:"parts"`
	Paths map[string]*ScenePath `json:"paths"`
}

// ScenePart is one rigid part of a StaticScene.
type ScenePart struct {
	World r3.Vector `json:"world"` // world-space origin

	// Local is the parent-relative transformation, in column-major order.
	// The zero value stands for the identity.
	Local mgl64.Mat4 `json:"local"`
}

// ScenePath is a curve object of a StaticScene.
type ScenePath struct {
	Spline *curve.Spline `json:"spline"`
	World  mgl64.Mat4    `json:"world"` // zero value means identity
}

// WorldPosition implements the [Scene] interface.
func (sc *StaticScene) WorldPosition(part string) (r3.Vector, bool) {
	p, ok := sc.Parts[part]
	if !ok {
		return r3.Vector{}, false
	}
	return p.World, true
}

// LocalMatrix implements the [Scene] interface.
func (sc *StaticScene) LocalMatrix(part string) (mgl64.Mat4, bool) {
	p, ok := sc.Parts[part]
	if !ok {
		return mgl64.Mat4{}, false
	}
	return identityIfZero(p.Local), true
}

// Spline implements the [Scene] interface.
func (sc *StaticScene) Spline(part string) (*curve.Spline, mgl64.Mat4, bool) {
	p, ok := sc.Paths[part]
	if !ok || p.Spline == nil {
		return nil, mgl64.Mat4{}, false
	}
	return p.Spline, identityIfZero(p.World), true
}

func identityIfZero(m mgl64.Mat4) mgl64.Mat4 {
	if m == (mgl64.Mat4{}) {
		return mgl64.Ident4()
	}
	return m
}
