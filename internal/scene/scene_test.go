package scene

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/spatial/internal/core/events/bus"
	"github.com/zeusync/spatial/internal/core/observability/log"
	"github.com/zeusync/spatial/pkg/spatial/bounds"
	"github.com/zeusync/spatial/pkg/spatial/color"
	"github.com/zeusync/spatial/pkg/spatial/geometry"
	"github.com/zeusync/spatial/pkg/spatial/rotation"
	"github.com/zeusync/spatial/pkg/spatial/transform"
	"github.com/zeusync/spatial/pkg/spatial/vector"
	"github.com/zeusync/spatial/pkg/spatial/wire"
)

func requireVector(t *testing.T, expected, actual vector.Vector) {
	t.Helper()
	require.True(t, expected.IsNearlyEqual(actual, 1e-9), "expected %v, got %v", expected, actual)
}

func volumeNamed(t *testing.T, volumes []Volume, name string) Volume {
	t.Helper()
	for _, v := range volumes {
		if v.Name == name {
			return v
		}
	}
	t.Fatalf("no volume %q", name)
	return Volume{}
}

func rayNamed(t *testing.T, s *Scene, name string) geometry.Ray {
	t.Helper()
	for _, r := range s.Rays {
		if r.Name == name {
			return r.Ray
		}
	}
	t.Fatalf("no ray %q", name)
	return geometry.Ray{}
}

func loadYard(t *testing.T) *Scene {
	t.Helper()
	f, err := os.Open("testdata/yard.yaml")
	require.NoError(t, err)
	defer f.Close()

	cfg, err := LoadYAML(f)
	require.NoError(t, err)
	s, err := cfg.Build()
	require.NoError(t, err)
	return s
}

func TestLoadYAML_Build(t *testing.T) {
	s := loadYard(t)

	require.Equal(t, "yard", s.Name)
	require.Equal(t, 2, s.Workers)
	require.Equal(t, uint32(42), s.Frame)
	require.Equal(t, log.LevelDebug, s.LogLevel)
	require.Equal(t, wire.CompressionZstd, s.Compression)
	require.Equal(t, vector.DefaultTolerance, s.Tolerance)

	require.Len(t, s.Entities, 4)
	require.Equal(t, uuid.MustParse("6f1c1f6e-2b2a-4c59-9a53-3c1a8d0e7a01"), s.Entities[0].ID)
	for _, e := range s.Entities[1:] {
		require.NotEqual(t, uuid.Nil, e.ID)
	}
	require.Equal(t, ShapeBox, s.Entities[0].Shape)
	require.Equal(t, ShapeSphere, s.Entities[1].Shape)
	require.Equal(t, vector.One, s.Entities[0].Transform.Scale)
	require.Equal(t, color.Red, s.Entities[0].Color)
	require.Equal(t, color.Blue, s.Entities[1].Color)
	require.Equal(t, color.Gray, s.Entities[2].Color)

	drone := s.Entities[3]
	require.True(t, drone.HasBase)
	require.Equal(t, s.Entities[0].ID, drone.Base)

	require.Len(t, s.Rays, 2)
	requireVector(t, vector.New(0, 0, 1), s.Rays[1].Ray.Direction)
}

func TestScene_Evaluate(t *testing.T) {
	s := loadYard(t)

	var buf bytes.Buffer
	report, err := s.Evaluate(context.Background(), log.NewWithWriter(&buf, log.LevelDebug))
	require.NoError(t, err)
	require.Equal(t, "yard", report.Scene)
	require.Contains(t, buf.String(), "scene evaluated")
	require.Contains(t, buf.String(), `"scene":"yard"`)

	t.Run("volumes", func(t *testing.T) {
		require.Len(t, report.Volumes, 4)
		for i, v := range report.Volumes {
			require.Equal(t, s.Entities[i].ID, v.ID)
		}

		barrel := report.Volumes[1]
		requireVector(t, vector.New(1.5, 0, 0), barrel.Sphere.Center)
		requireVector(t, vector.New(0.5, -1, -1), barrel.Box.Min)
		requireVector(t, vector.New(2.5, 1, 1), barrel.Box.Max)

		wall := report.Volumes[2]
		requireVector(t, vector.New(9.5, -5, -2), wall.Box.Min)
		requireVector(t, vector.New(10.5, 5, 2), wall.Box.Max)
		require.True(t, wall.Sphere.ContainsPoint(wall.Box.Max))
	})

	t.Run("overlaps", func(t *testing.T) {
		require.Len(t, report.Overlaps, 1)
		o := report.Overlaps[0]
		require.Equal(t, "crate", o.A.Name)
		require.Equal(t, "barrel", o.B.Name)
		requireVector(t, vector.New(0.5, -1, -1), o.Region.Min)
		requireVector(t, vector.New(1, 1, 1), o.Region.Max)
		require.Equal(t, color.RGB(188, 0, 188), o.Color)
	})

	t.Run("hits", func(t *testing.T) {
		type hit struct {
			ray, name string
			distance  float64
		}
		want := []hit{
			{"east", "crate", 4},
			{"east", "barrel", 5.5},
			{"east", "wall", 14.5},
			{"up", "crate", 2},
			{"up", "drone", 7.5},
		}
		require.Len(t, report.Hits, len(want))
		for i, w := range want {
			got := report.Hits[i]
			require.Equal(t, w.ray, got.Ray, i)
			require.Equal(t, w.name, got.Name, i)
			require.InDelta(t, w.distance, got.Distance, 1e-9, i)
		}
		requireVector(t, vector.New(-1, 0, 0), report.Hits[0].Point)

		for _, h := range report.Hits {
			v := volumeNamed(t, report.Volumes, h.Name)
			d, ok := v.Hit(rayNamed(t, s, h.Ray))
			require.True(t, ok, h.Name)
			require.Equal(t, d, h.Distance, h.Name)
		}
	})

	t.Run("snapshot", func(t *testing.T) {
		require.Equal(t, byte(wire.CompressionZstd), report.Snapshot[0])
		require.Equal(t, wire.FingerprintBytes(report.Snapshot), report.Fingerprint)

		moves, err := wire.DecodeSnapshot(report.Snapshot)
		require.NoError(t, err)
		require.Equal(t, report.Movements, moves)

		drone := moves[3]
		require.True(t, drone.HasLocationBase)
		require.True(t, drone.IsSimulated)
		require.Equal(t, uint32(42), drone.ServerFrame)
		requireVector(t, vector.New(0, 0, 5), drone.RelativeLocation)
		require.False(t, moves[0].IsSimulated)
		require.InDelta(t, 1, float64(drone.Speed()), 1e-6)
		for _, m := range report.Movements {
			require.Equal(t, m, m.Quantize())
		}

		crate := report.Volumes[0]
		resolve := func(id uuid.UUID) (vector.Vector, bool) {
			return crate.Box.Center(), id == crate.ID
		}
		requireVector(t, vector.New(0, 0, 5), drone.WorldLocation(resolve))
	})
}

func TestScene_EvaluateCanceled(t *testing.T) {
	s := loadYard(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Evaluate(ctx, log.NewWithWriter(&bytes.Buffer{}, log.LevelError))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadJSON(t *testing.T) {
	cfg, err := LoadJSON(strings.NewReader(`{
		"name": "json",
		"tolerance": 0.001,
		"entities": [{
			"name": "a",
			"transform": {"location": {"x": 1, "y": 2, "z": 3}, "scale": {"x": 2, "y": 2, "z": 2}},
			"box": {"min": {"x": 0, "y": 0, "z": 0}, "max": {"x": 1, "y": 1, "z": 1}}
		}]
	}`))
	require.NoError(t, err)

	s, err := cfg.Build()
	require.NoError(t, err)
	require.Equal(t, 0.001, s.Tolerance)
	require.Equal(t, wire.CompressionSnappy, s.Compression)
	require.Equal(t, log.LevelInfo, s.LogLevel)

	v := s.Entities[0].World()
	requireVector(t, vector.New(1, 2, 3), v.Box.Min)
	requireVector(t, vector.New(3, 4, 5), v.Box.Max)
}

func TestLoad_DecodeErrors(t *testing.T) {
	_, err := LoadJSON(strings.NewReader(`{"workers": "many"}`))
	var fe *wire.FieldError
	require.ErrorAs(t, err, &fe)
	require.Contains(t, fe.Field, "workers")
	require.ErrorIs(t, err, ErrInvalidValue)

	_, err = LoadJSON(strings.NewReader(`{"colour": "red"}`))
	require.Error(t, err)

	_, err = LoadYAML(strings.NewReader("name: [unterminated"))
	require.Error(t, err)
	require.False(t, errors.As(err, &fe) && fe.Field != "")

	_, err = LoadYAML(strings.NewReader("workers: many\n"))
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "scene", fe.Type)
	require.Equal(t, "workers", fe.Field)
	require.ErrorIs(t, err, ErrInvalidValue)

	_, err = LoadYAML(strings.NewReader("name: x\nentities:\n  - name: a\n  - name: b\n    velocity: {x: 1, y: sideways, z: 0}\n"))
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "entities[1].velocity.y", fe.Field)
	require.ErrorIs(t, err, ErrInvalidValue)

	_, err = LoadYAML(strings.NewReader("colour: red\n"))
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "colour", fe.Field)
}

func TestBuild_Errors(t *testing.T) {
	unitBox := &bounds.Box{Min: vector.Splat(-1), Max: vector.One}
	ball := &bounds.Sphere{Radius: 1}
	id := "6f1c1f6e-2b2a-4c59-9a53-3c1a8d0e7a01"
	zeroScale := vector.New(1, 0, 1)

	tests := []struct {
		name  string
		cfg   Config
		field string
		err   error
	}{
		{"negative tolerance", Config{Tolerance: -1}, "tolerance", ErrInvalidValue},
		{"negative workers", Config{Workers: -2}, "workers", ErrInvalidValue},
		{"log level", Config{LogLevel: "loud"}, "log_level", ErrInvalidValue},
		{"compression", Config{Compression: "lz4"}, "compression", ErrInvalidValue},
		{"bad id", Config{Entities: []EntityConfig{{ID: "nope", Box: unitBox}}}, "entities[0].id", ErrInvalidValue},
		{
			"duplicate id",
			Config{Entities: []EntityConfig{{ID: id, Box: unitBox}, {ID: id, Box: unitBox}}},
			"entities[1].id", ErrDuplicateID,
		},
		{"bad color", Config{Entities: []EntityConfig{{Box: unitBox, Color: "#12"}}}, "entities[0].color", ErrInvalidValue},
		{"missing volume", Config{Entities: []EntityConfig{{Name: "a"}}}, "entities[0]", ErrMissingVolume},
		{"both volumes", Config{Entities: []EntityConfig{{Box: unitBox, Sphere: ball}}}, "entities[0]", ErrAmbiguousVolume},
		{
			"inverted box",
			Config{Entities: []EntityConfig{{Box: &bounds.Box{Min: vector.One, Max: vector.Zero}}}},
			"entities[0].box", ErrInvalidValue,
		},
		{
			"negative radius",
			Config{Entities: []EntityConfig{{Sphere: &bounds.Sphere{Radius: -1}}}},
			"entities[0].sphere.radius", ErrInvalidValue,
		},
		{
			"zero scale",
			Config{Entities: []EntityConfig{{Box: unitBox, Transform: TransformConfig{Scale: &zeroScale}}}},
			"entities[0].transform.scale", ErrDegenerateScale,
		},
		{
			"unknown base",
			Config{Entities: []EntityConfig{{Box: unitBox, Base: "ghost"}}},
			"entities[0].base", ErrUnknownBase,
		},
		{
			"own base",
			Config{Entities: []EntityConfig{{Name: "a", Box: unitBox, Base: "a"}}},
			"entities[0].base", ErrInvalidValue,
		},
		{
			"zero ray",
			Config{Rays: []RayConfig{{Origin: vector.One}}},
			"rays[0].direction", ErrZeroDirection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Build()
			require.ErrorIs(t, err, tt.err)

			var fe *wire.FieldError
			require.True(t, errors.As(err, &fe))
			require.Equal(t, "scene", fe.Type)
			require.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestBuild_BaseByID(t *testing.T) {
	id := "6f1c1f6e-2b2a-4c59-9a53-3c1a8d0e7a01"
	cfg := Config{Entities: []EntityConfig{
		{Box: &bounds.Box{Max: vector.One}, Base: id},
		{ID: id, Sphere: &bounds.Sphere{Radius: 1}},
	}}
	s, err := cfg.Build()
	require.NoError(t, err)
	require.True(t, s.Entities[0].HasBase)
	require.Equal(t, uuid.MustParse(id), s.Entities[0].Base)
	require.Equal(t, s.Entities[0].ID.String(), s.Entities[0].Name)
}

func TestVolume_Intersects(t *testing.T) {
	box := Entity{Shape: ShapeBox, Box: bounds.NewBox(vector.Zero, vector.One), Transform: identityAt(vector.Zero)}.World()
	// the sphere's box touches the unit box's corner region but the sphere does not
	corner := Entity{Shape: ShapeSphere, Sphere: bounds.NewSphere(vector.Zero, 0.5), Transform: identityAt(vector.Splat(1.4))}.World()
	require.True(t, box.Box.Intersects(corner.Box))
	require.False(t, box.Intersects(corner))
	require.False(t, corner.Intersects(box))

	near := Entity{Shape: ShapeSphere, Sphere: bounds.NewSphere(vector.Zero, 0.5), Transform: identityAt(vector.New(0.5, 0.5, 1.4))}.World()
	require.True(t, near.Intersects(box))
	require.False(t, near.Intersects(corner))
}

func identityAt(location vector.Vector) transform.Transform {
	return transform.FromLocationRotator(location, rotation.ZeroRotator)
}

func TestScene_PublishesEvents(t *testing.T) {
	s := loadYard(t)
	s.Events = bus.New()

	var overlaps []Overlap
	var hits []Hit
	var evaluated *Report
	_, err := s.Events.Subscribe(EventOverlap, func(e bus.Event) error {
		overlaps = append(overlaps, e.Data.(Overlap))
		return nil
	})
	require.NoError(t, err)
	_, err = s.Events.Subscribe(EventRayHit, func(e bus.Event) error {
		hits = append(hits, e.Data.(Hit))
		return nil
	})
	require.NoError(t, err)
	_, err = s.Events.Subscribe(EventEvaluated, func(e bus.Event) error {
		require.Equal(t, "yard", e.Source)
		evaluated = e.Data.(*Report)
		return nil
	})
	require.NoError(t, err)

	report, err := s.Evaluate(context.Background(), log.NewWithWriter(&bytes.Buffer{}, log.LevelError))
	require.NoError(t, err)
	require.Equal(t, report.Overlaps, overlaps)
	require.Equal(t, report.Hits, hits)
	require.Same(t, report, evaluated)

	boom := errors.New("boom")
	_, err = s.Events.Subscribe(EventEvaluated, func(bus.Event) error { return boom })
	require.NoError(t, err)
	_, err = s.Evaluate(context.Background(), log.NewWithWriter(&bytes.Buffer{}, log.LevelError))
	require.ErrorIs(t, err, boom)
}
