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
	"sync"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"seehuhn.de/go/vehicle/curve"
)

// Animator is a vehicle model with an evaluated path.
type Animator interface {
	Kind() ModelKind
	PoseAtTime(t float64) (*PoseSet, error)
	Samples() *SampleBuffer
	Track(role Role) *ContactTrack
	EndTime() float64
}

type splineEvaluator interface {
	Animator
	EvaluateSpline(sp *curve.Spline, cfg ModelConfig, rig Rig) error
}

func newEvaluator(kind ModelKind) (splineEvaluator, error) {
	switch kind {
	case TwoWheel:
		return NewSingleTrack(), nil
	case FourWheel:
		return NewAxleSingleTrack(), nil
	default:
		return nil, errors.Wrapf(ErrUnknownModelType, "kind %d", int(kind))
	}
}

// Handle is one vehicle managed by a Registry.
type Handle struct {
	ID     string
	Record *Record
	Model  Animator
}

// PoseAtFrame returns the pose of the vehicle at an animation frame.  The
// configured time offset is subtracted from the frame time.
func (h *Handle) PoseAtFrame(frame int, fps float64) (*PoseSet, error) {
	if !(fps > 0) || math.IsInf(fps, 0) {
		return nil, errors.Wrapf(ErrDegenerateGeometry, "frame rate %g", fps)
	}
	t := float64(frame)/fps - h.Record.Config().TimeOffset
	return h.Model.PoseAtTime(t)
}

// Registry keeps track of the animated vehicles of a scene.  It is safe
// for concurrent use.
type Registry struct {
	logger golog.Logger

	mu     sync.RWMutex
	models map[string]*Handle
}

// NewRegistry returns an empty registry.  A nil logger discards all
// messages.
func NewRegistry(logger golog.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Registry{
		logger: logger,
		models: make(map[string]*Handle),
	}
}

// Create builds the vehicle described by rec, evaluates its path and
// registers it under id.  An existing vehicle with the same id is
// replaced.
func (r *Registry) Create(id string, rec *Record, sc Scene) (*Handle, error) {
	kind, err := rec.Kind()
	if err != nil {
		return nil, err
	}
	rig, spline, err := rec.Resolve(sc)
	if err != nil {
		return nil, errors.WithMessagef(err, "vehicle %q", id)
	}

	m, err := New(kind, spline, rec.Config(), rig)
	if err != nil {
		return nil, errors.WithMessagef(err, "vehicle %q", id)
	}

	h := &Handle{ID: id, Record: rec, Model: m}

	r.mu.Lock()
	_, replaced := r.models[id]
	r.models[id] = h
	r.mu.Unlock()

	r.logger.Infow("vehicle created",
		"id", id,
		"kind", kind.String(),
		"samples", m.Samples().Len(),
		"duration", m.EndTime(),
		"replaced", replaced)
	return h, nil
}

// Lookup returns the vehicle registered under id.
func (r *Registry) Lookup(id string) (*Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.models[id]
	return h, ok
}

// Remove unregisters a vehicle.  It reports whether the vehicle was
// registered.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	_, ok := r.models[id]
	delete(r.models, id)
	r.mu.Unlock()

	if ok {
		r.logger.Infow("vehicle removed", "id", id)
	}
	return ok
}

// IDs returns the ids of all registered vehicles, in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.models))
	for id := range r.models {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Frame computes the poses of all vehicles at an animation frame.
// Vehicles which fail are logged and left out of the result, and their
// errors are combined into the returned error.
func (r *Registry) Frame(frame int, fps float64) (map[string]*PoseSet, error) {
	r.mu.RLock()
	handles := make([]*Handle, 0, len(r.models))
	for _, h := range r.models {
		handles = append(handles, h)
	}
	r.mu.RUnlock()

	poses := make(map[string]*PoseSet, len(handles))
	var errs error
	for _, h := range handles {
		ps, err := h.PoseAtFrame(frame, fps)
		if err != nil {
			r.logger.Warnw("vehicle pose failed", "id", h.ID, "frame", frame, "error", err)
			errs = multierr.Append(errs, errors.WithMessagef(err, "vehicle %q", h.ID))
			continue
		}
		poses[h.ID] = ps
	}
	r.logger.Debugw("frame evaluated", "frame", frame, "vehicles", len(poses))
	return poses, errs
}
