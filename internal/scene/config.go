package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/google/uuid"
	"github.com/zeusync/spatial/internal/core/observability/log"
	"github.com/zeusync/spatial/pkg/spatial/bounds"
	"github.com/zeusync/spatial/pkg/spatial/color"
	"github.com/zeusync/spatial/pkg/spatial/geometry"
	"github.com/zeusync/spatial/pkg/spatial/rotation"
	"github.com/zeusync/spatial/pkg/spatial/transform"
	"github.com/zeusync/spatial/pkg/spatial/vector"
	"github.com/zeusync/spatial/pkg/spatial/wire"
)

// Config is a scene document as read from YAML or JSON.
type Config struct {
	Name        string         `json:"name" yaml:"name"`
	Tolerance   float64        `json:"tolerance" yaml:"tolerance"`
	Workers     int            `json:"workers" yaml:"workers"`
	LogLevel    string         `json:"log_level" yaml:"log_level"`
	Frame       uint32         `json:"frame" yaml:"frame"`
	Compression string         `json:"compression" yaml:"compression"`
	Entities    []EntityConfig `json:"entities" yaml:"entities"`
	Rays        []RayConfig    `json:"rays" yaml:"rays"`
}

// EntityConfig places one bounding volume in the scene. Exactly one of Box
// and Sphere must be set, in the entity's local space.
type EntityConfig struct {
	ID        string          `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string          `json:"name" yaml:"name"`
	Base      string          `json:"base,omitempty" yaml:"base,omitempty"`
	Transform TransformConfig `json:"transform" yaml:"transform"`
	Velocity  vector.Vector   `json:"velocity" yaml:"velocity"`
	Box       *bounds.Box     `json:"box,omitempty" yaml:"box,omitempty"`
	Sphere    *bounds.Sphere  `json:"sphere,omitempty" yaml:"sphere,omitempty"`
	// Color is a debug color, "#RRGGBB" or "#RRGGBBAA". Gray when empty.
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// TransformConfig uses a rotator in degrees. A missing scale is one.
type TransformConfig struct {
	Location vector.Vector    `json:"location" yaml:"location"`
	Rotation rotation.Rotator `json:"rotation" yaml:"rotation"`
	Scale    *vector.Vector   `json:"scale,omitempty" yaml:"scale,omitempty"`
}

type RayConfig struct {
	Name      string        `json:"name" yaml:"name"`
	Origin    vector.Vector `json:"origin" yaml:"origin"`
	Direction vector.Vector `json:"direction" yaml:"direction"`
}

// LoadJSON reads scene configuration from JSON.
func LoadJSON(r io.Reader) (*Config, error) {
	var c Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fieldError(typeErr.Field, fmt.Errorf("%w: %v", ErrInvalidValue, err))
		}
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &c, nil
}

// LoadYAML reads scene configuration from YAML. Unknown keys are rejected.
// Type mismatches and unknown keys are reported by key path, like
// "entities[1].velocity.x".
func LoadYAML(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}

	var c Config
	if err := wire.DecodeYAML("scene", data, &c, true); err != nil {
		var fe *wire.FieldError
		if errors.As(err, &fe) && fe.Field != "" {
			return nil, fieldError(fe.Field, fmt.Errorf("%w: %v", ErrInvalidValue, fe.Err))
		}
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &c, nil
}

// Build validates the configuration and resolves it into a Scene. Entities
// without an id get a random one. Every validation failure is a
// *wire.FieldError naming the offending field.
func (c *Config) Build() (*Scene, error) {
	s := &Scene{
		Name:      c.Name,
		Tolerance: c.Tolerance,
		Workers:   c.Workers,
		Frame:     c.Frame,
	}

	if s.Tolerance == 0 {
		s.Tolerance = vector.DefaultTolerance
	}
	if s.Tolerance < 0 || math.IsNaN(s.Tolerance) {
		return nil, fieldError("tolerance", fmt.Errorf("%w: %v", ErrInvalidValue, c.Tolerance))
	}
	if s.Workers < 0 {
		return nil, fieldError("workers", fmt.Errorf("%w: %d", ErrInvalidValue, c.Workers))
	}

	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fieldError("log_level", fmt.Errorf("%w: %w", ErrInvalidValue, err))
	}
	s.LogLevel = level

	compression, err := wire.ParseCompression(c.Compression)
	if err != nil {
		return nil, fieldError("compression", fmt.Errorf("%w: %w", ErrInvalidValue, err))
	}
	s.Compression = compression

	// ids first so bases can refer forward
	s.Entities = make([]Entity, len(c.Entities))
	byName := make(map[string]uuid.UUID, len(c.Entities))
	seen := make(map[uuid.UUID]struct{}, len(c.Entities))
	for i, ec := range c.Entities {
		id := uuid.New()
		if ec.ID != "" {
			if id, err = uuid.Parse(ec.ID); err != nil {
				return nil, fieldError(fmt.Sprintf("entities[%d].id", i), fmt.Errorf("%w: %w", ErrInvalidValue, err))
			}
		}
		if _, dup := seen[id]; dup {
			return nil, fieldError(fmt.Sprintf("entities[%d].id", i), fmt.Errorf("%w: %s", ErrDuplicateID, id))
		}
		seen[id] = struct{}{}
		if ec.Name != "" {
			byName[ec.Name] = id
		}
		s.Entities[i].ID = id
	}

	for i, ec := range c.Entities {
		e, err := buildEntity(i, ec, s.Entities[i].ID, s.Tolerance, byName, seen)
		if err != nil {
			return nil, err
		}
		s.Entities[i] = e
	}

	s.Rays = make([]NamedRay, len(c.Rays))
	for i, rc := range c.Rays {
		if rc.Direction.IsNearlyZero(s.Tolerance) || !rc.Direction.IsFinite() {
			return nil, fieldError(fmt.Sprintf("rays[%d].direction", i), ErrZeroDirection)
		}
		name := rc.Name
		if name == "" {
			name = fmt.Sprintf("ray-%d", i)
		}
		s.Rays[i] = NamedRay{Name: name, Ray: geometry.NewRay(rc.Origin, rc.Direction)}
	}

	return s, nil
}

func buildEntity(
	i int,
	ec EntityConfig,
	id uuid.UUID,
	tolerance float64,
	byName map[string]uuid.UUID,
	ids map[uuid.UUID]struct{},
) (Entity, error) {
	prefix := fmt.Sprintf("entities[%d]", i)

	scale := vector.One
	if ec.Transform.Scale != nil {
		scale = *ec.Transform.Scale
	}
	if scale.Abs().X <= tolerance || scale.Abs().Y <= tolerance || scale.Abs().Z <= tolerance {
		return Entity{}, fieldError(prefix+".transform.scale", fmt.Errorf("%w: %s", ErrDegenerateScale, scale))
	}

	e := Entity{
		ID:        id,
		Name:      ec.Name,
		Transform: transform.FromLocationRotatorScale(ec.Transform.Location, ec.Transform.Rotation, scale),
		Velocity:  ec.Velocity,
	}
	if e.Name == "" {
		e.Name = id.String()
	}

	e.Color = color.Gray
	if ec.Color != "" {
		c, err := color.ParseHex(ec.Color)
		if err != nil {
			return Entity{}, fieldError(prefix+".color", fmt.Errorf("%w: %v", ErrInvalidValue, err))
		}
		e.Color = c
	}

	switch {
	case ec.Box != nil && ec.Sphere != nil:
		return Entity{}, fieldError(prefix, ErrAmbiguousVolume)
	case ec.Box != nil:
		if !ec.Box.IsValid() {
			return Entity{}, fieldError(prefix+".box", fmt.Errorf("%w: %s", ErrInvalidValue, *ec.Box))
		}
		e.Shape, e.Box = ShapeBox, *ec.Box
	case ec.Sphere != nil:
		if ec.Sphere.Radius < 0 || math.IsNaN(ec.Sphere.Radius) {
			return Entity{}, fieldError(prefix+".sphere.radius", fmt.Errorf("%w: %v", ErrInvalidValue, ec.Sphere.Radius))
		}
		e.Shape, e.Sphere = ShapeSphere, *ec.Sphere
	default:
		return Entity{}, fieldError(prefix, ErrMissingVolume)
	}

	if ec.Base != "" {
		base, ok := byName[ec.Base]
		if !ok {
			parsed, err := uuid.Parse(ec.Base)
			if _, known := ids[parsed]; err != nil || !known {
				return Entity{}, fieldError(prefix+".base", fmt.Errorf("%w: %q", ErrUnknownBase, ec.Base))
			}
			base = parsed
		}
		if base == id {
			return Entity{}, fieldError(prefix+".base", fmt.Errorf("%w: entity is its own base", ErrInvalidValue))
		}
		e.Base, e.HasBase = base, true
	}

	return e, nil
}

// New builds a scene from cfg.
func New(cfg *Config) (*Scene, error) {
	return cfg.Build()
}
