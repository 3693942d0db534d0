package scene

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zeusync/spatial/internal/core/events/bus"
	"github.com/zeusync/spatial/internal/core/observability/log"
	"github.com/zeusync/spatial/pkg/concurrent"
	"github.com/zeusync/spatial/pkg/sequence"
	"github.com/zeusync/spatial/pkg/spatial/bounds"
	"github.com/zeusync/spatial/pkg/spatial/color"
	"github.com/zeusync/spatial/pkg/spatial/geometry"
	"github.com/zeusync/spatial/pkg/spatial/movement"
	"github.com/zeusync/spatial/pkg/spatial/transform"
	"github.com/zeusync/spatial/pkg/spatial/vector"
	"github.com/zeusync/spatial/pkg/spatial/wire"
)

// Event types published during Evaluate. Overlap events carry an Overlap,
// hit events a Hit and the final event the *Report.
const (
	EventOverlap   = "scene.overlap"
	EventRayHit    = "scene.ray_hit"
	EventEvaluated = "scene.evaluated"
)

type Shape uint8

const (
	ShapeBox Shape = iota
	ShapeSphere
)

func (s Shape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	default:
		return fmt.Sprintf("shape(%d)", uint8(s))
	}
}

// Entity is a bounding volume placed in the scene. Box or Sphere holds the
// local volume depending on Shape.
type Entity struct {
	ID        uuid.UUID
	Name      string
	Transform transform.Transform
	Velocity  vector.Vector
	Color     color.Color

	Base    uuid.UUID
	HasBase bool

	Shape  Shape
	Box    bounds.Box
	Sphere bounds.Sphere
}

// Volume is an entity's bounds in world space. Both the box and the sphere
// are always filled in; Shape says which one is exact.
type Volume struct {
	ID     uuid.UUID
	Name   string
	Shape  Shape
	Color  color.Color
	Box    bounds.Box
	Sphere bounds.Sphere
}

// World maps the local volume through the entity transform.
func (e Entity) World() Volume {
	v := Volume{ID: e.ID, Name: e.Name, Shape: e.Shape, Color: e.Color}
	switch e.Shape {
	case ShapeSphere:
		v.Sphere = e.Sphere.Transform(e.Transform)
		v.Box = v.Sphere.Box()
	default:
		v.Box = e.Box.Transform(e.Transform)
		v.Sphere = bounds.SphereFromBox(v.Box)
	}
	return v
}

// Intersects runs the box test first and refines it with the sphere when
// either side is one.
func (v Volume) Intersects(o Volume) bool {
	if !v.Box.Intersects(o.Box) {
		return false
	}
	switch {
	case v.Shape == ShapeSphere && o.Shape == ShapeSphere:
		return v.Sphere.IntersectsSphere(o.Sphere)
	case v.Shape == ShapeSphere:
		return v.Sphere.IntersectsBox(o.Box)
	case o.Shape == ShapeSphere:
		return o.Sphere.IntersectsBox(v.Box)
	default:
		return true
	}
}

// Hit returns the distance along r to the volume.
func (v Volume) Hit(r geometry.Ray) (float64, bool) {
	if v.Shape == ShapeSphere {
		return r.IntersectSphere(v.Sphere)
	}
	return r.IntersectBox(v.Box)
}

type NamedRay struct {
	Name string
	Ray  geometry.Ray
}

// Overlap is a pair of intersecting volumes. Region is the intersection of
// their world boxes. Color mixes both debug colors halfway in linear space.
type Overlap struct {
	A, B   Volume
	Region bounds.Box
	Color  color.Color
}

type Hit struct {
	Ray      string
	Entity   uuid.UUID
	Name     string
	Distance float64
	Point    vector.Vector
}

// Report is the outcome of one evaluation.
type Report struct {
	Scene       string
	Volumes     []Volume
	Overlaps    []Overlap
	Hits        []Hit
	Movements   []movement.RepMovement
	Snapshot    []byte
	Fingerprint uint64
}

// Scene is a validated scene document. Build it with Config.Build.
type Scene struct {
	Name        string
	Tolerance   float64
	Workers     int
	Frame       uint32
	LogLevel    log.Level
	Compression wire.Compression
	Entities    []Entity
	Rays        []NamedRay

	// Events receives evaluation results when set.
	Events bus.EventBus
}

// Evaluate computes world volumes on the configured number of workers, then
// pairwise overlaps, ray hits and the replication snapshot.
func (s *Scene) Evaluate(ctx context.Context, logger log.Log) (*Report, error) {
	started := time.Now()
	logger = logger.With(log.String("scene", s.Name))

	volumes, err := concurrent.ParallelMap(ctx, sequence.From(s.Entities), s.Workers, Entity.World)
	if err != nil {
		return nil, fmt.Errorf("evaluate scene %q: %w", s.Name, err)
	}

	report := &Report{
		Scene:    s.Name,
		Volumes:  volumes,
		Overlaps: Overlaps(volumes),
		Hits:     s.CastRays(volumes),
	}

	for _, o := range report.Overlaps {
		logger.Debug("overlap",
			log.String("a", o.A.Name),
			log.String("b", o.B.Name),
			log.Stringer("region", o.Region),
		)
	}
	for _, h := range report.Hits {
		logger.Debug("ray hit",
			log.String("ray", h.Ray),
			log.String("entity", h.Name),
			log.Float64("distance", h.Distance),
			log.Stringer("point", h.Point),
		)
	}

	report.Movements = s.Movements()
	report.Snapshot, err = wire.EncodeSnapshot(report.Movements, s.Compression)
	if err != nil {
		return nil, fmt.Errorf("evaluate scene %q: %w", s.Name, err)
	}
	report.Fingerprint = wire.FingerprintBytes(report.Snapshot)

	if err = s.publish(report); err != nil {
		return nil, fmt.Errorf("evaluate scene %q: %w", s.Name, err)
	}

	logger.Info("scene evaluated",
		log.Int("entities", len(volumes)),
		log.Int("overlaps", len(report.Overlaps)),
		log.Int("hits", len(report.Hits)),
		log.Int("snapshot_bytes", len(report.Snapshot)),
		log.Stringer("compression", s.Compression),
		log.Uint64("fingerprint", report.Fingerprint),
		log.Duration("took", time.Since(started)),
	)

	return report, nil
}

func (s *Scene) publish(report *Report) error {
	if s.Events == nil {
		return nil
	}
	events := make([]bus.Event, 0, len(report.Overlaps)+len(report.Hits)+1)
	for _, o := range report.Overlaps {
		events = append(events, bus.NewEvent(EventOverlap, s.Name, o))
	}
	for _, h := range report.Hits {
		events = append(events, bus.NewEvent(EventRayHit, s.Name, h))
	}
	events = append(events, bus.NewEvent(EventEvaluated, s.Name, report))
	return s.Events.PublishBatch(events...)
}

// Overlaps returns every intersecting pair in input order.
func Overlaps(volumes []Volume) []Overlap {
	var out []Overlap
	for i := range volumes {
		for j := i + 1; j < len(volumes); j++ {
			if volumes[i].Intersects(volumes[j]) {
				out = append(out, Overlap{
					A:      volumes[i],
					B:      volumes[j],
					Region: volumes[i].Box.Intersection(volumes[j].Box),
					Color:  color.FromLinear(volumes[i].Color.Linear().Lerp(volumes[j].Color.Linear(), 0.5)),
				})
			}
		}
	}
	return out
}

// CastRays returns the hits of every ray, ray by ray, nearest first.
func (s *Scene) CastRays(volumes []Volume) []Hit {
	var out []Hit
	for _, nr := range s.Rays {
		var hits []Hit
		for _, v := range volumes {
			if d, ok := v.Hit(nr.Ray); ok {
				hits = append(hits, Hit{Ray: nr.Name, Entity: v.ID, Name: v.Name, Distance: d, Point: nr.Ray.PointAt(d)})
			}
		}
		out = append(out, sequence.From(hits).Sort(func(a, b Hit) bool { return a.Distance < b.Distance }).Collect()...)
	}
	return out
}

// Movements builds the replicated state of every entity at the scene frame.
// Entities with a base are sent relative to the base location. Velocities are
// quantized as they will be on the wire, and an entity counts as simulated
// once its quantized speed exceeds the tolerance.
func (s *Scene) Movements() []movement.RepMovement {
	locations := make(map[uuid.UUID]vector.Vector, len(s.Entities))
	for _, e := range s.Entities {
		locations[e.ID] = e.Transform.Location
	}

	moves := make([]movement.RepMovement, len(s.Entities))
	for i, e := range s.Entities {
		m := movement.FromTransform(e.Transform.Location, e.Transform.Rotator(), e.Velocity).
			WithServerFrame(s.Frame).
			Quantize()
		m = m.WithSimulated(float64(m.Speed()) > s.Tolerance)
		if e.HasBase {
			m = m.WithLocationBase(e.Base, e.Transform.Location.Sub(locations[e.Base]))
		}
		moves[i] = m
	}
	return moves
}
