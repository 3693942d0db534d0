package wire

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/zeusync/spatial/pkg/spatial/bounds"
	"github.com/zeusync/spatial/pkg/spatial/color"
	"github.com/zeusync/spatial/pkg/spatial/geometry"
	"github.com/zeusync/spatial/pkg/spatial/movement"
	"github.com/zeusync/spatial/pkg/spatial/rotation"
	"github.com/zeusync/spatial/pkg/spatial/transform"
	"github.com/zeusync/spatial/pkg/spatial/vector"
)

// schemaOf returns the schema bound to the value behind ptr.
func schemaOf(ptr any) (schema, bool) {
	switch v := ptr.(type) {
	case *vector.Vector:
		return vectorSchema(v), true
	case *vector.Vector2D:
		return vector2DSchema(v), true
	case *vector.IntVector:
		return intVectorSchema(v), true
	case *vector.IntVector2:
		return intVector2Schema(v), true
	case *vector.Vector3f:
		return vector3fSchema(v), true
	case *rotation.Rotator:
		return rotatorSchema(v), true
	case *rotation.Quaternion:
		return quaternionSchema(v), true
	case *transform.Transform:
		return transformSchema(v), true
	case *bounds.Box:
		return boxSchema(v), true
	case *bounds.Sphere:
		return sphereSchema(v), true
	case *geometry.Plane:
		return planeSchema(v), true
	case *geometry.Plane2D:
		return plane2DSchema(v), true
	case *geometry.Ray:
		return raySchema(v), true
	case *geometry.LineSegment:
		return segmentSchema(v), true
	case *movement.RepMovement:
		return repMovementSchema(v), true
	case *color.Color:
		return colorSchema(v), true
	case *color.LinearColor:
		return linearColorSchema(v), true
	}
	return schema{}, false
}

func vectorSchema(v *vector.Vector) schema {
	return schema{name: "Vector", fields: []fieldSpec{
		doubleField("x", &v.X),
		doubleField("y", &v.Y),
		doubleField("z", &v.Z),
	}}
}

func vector2DSchema(v *vector.Vector2D) schema {
	return schema{name: "Vector2D", fields: []fieldSpec{
		doubleField("x", &v.X),
		doubleField("y", &v.Y),
	}}
}

func intVectorSchema(v *vector.IntVector) schema {
	return schema{name: "IntVector", fields: []fieldSpec{
		sintField("x", &v.X),
		sintField("y", &v.Y),
		sintField("z", &v.Z),
	}}
}

func intVector2Schema(v *vector.IntVector2) schema {
	return schema{name: "IntVector2", fields: []fieldSpec{
		sintField("x", &v.X),
		sintField("y", &v.Y),
	}}
}

func vector3fSchema(v *vector.Vector3f) schema {
	return schema{name: "Vector3f", fields: []fieldSpec{
		floatField("x", &v.X),
		floatField("y", &v.Y),
		floatField("z", &v.Z),
	}}
}

func colorSchema(c *color.Color) schema {
	return schema{name: "Color", fields: []fieldSpec{
		byteField("r", &c.R),
		byteField("g", &c.G),
		byteField("b", &c.B),
		byteField("a", &c.A),
	}}
}

func linearColorSchema(c *color.LinearColor) schema {
	return schema{name: "LinearColor", fields: []fieldSpec{
		floatField("r", &c.R),
		floatField("g", &c.G),
		floatField("b", &c.B),
		floatField("a", &c.A),
	}}
}

func rotatorSchema(r *rotation.Rotator) schema {
	return schema{name: "Rotator", fields: []fieldSpec{
		doubleField("pitch", &r.Pitch),
		doubleField("yaw", &r.Yaw),
		doubleField("roll", &r.Roll),
	}}
}

func quaternionSchema(q *rotation.Quaternion) schema {
	return schema{name: "Quaternion", fields: []fieldSpec{
		doubleField("x", &q.X),
		doubleField("y", &q.Y),
		doubleField("z", &q.Z),
		doubleField("w", &q.W),
	}}
}

func transformSchema(t *transform.Transform) schema {
	return schema{name: "Transform", fields: []fieldSpec{
		messageField("location", vectorSchema(&t.Location)),
		messageField("rotation", quaternionSchema(&t.Rotation)),
		messageField("scale", vectorSchema(&t.Scale)),
	}}
}

func boxSchema(b *bounds.Box) schema {
	return schema{name: "Box", fields: []fieldSpec{
		messageField("min", vectorSchema(&b.Min)),
		messageField("max", vectorSchema(&b.Max)),
	}}
}

func sphereSchema(s *bounds.Sphere) schema {
	return schema{name: "Sphere", fields: []fieldSpec{
		messageField("center", vectorSchema(&s.Center)),
		doubleField("radius", &s.Radius),
	}}
}

func planeSchema(p *geometry.Plane) schema {
	return schema{name: "Plane", fields: []fieldSpec{
		messageField("normal", vectorSchema(&p.Normal)),
		doubleField("distance", &p.Distance),
	}}
}

func plane2DSchema(p *geometry.Plane2D) schema {
	return schema{name: "Plane2D", fields: []fieldSpec{
		messageField("normal", vector2DSchema(&p.Normal)),
		doubleField("distance", &p.Distance),
	}}
}

func raySchema(r *geometry.Ray) schema {
	return schema{name: "Ray", fields: []fieldSpec{
		messageField("origin", vectorSchema(&r.Origin)),
		messageField("direction", vectorSchema(&r.Direction)),
	}}
}

func segmentSchema(s *geometry.LineSegment) schema {
	return schema{name: "LineSegment", fields: []fieldSpec{
		messageField("start", vectorSchema(&s.Start)),
		messageField("end", vectorSchema(&s.End)),
	}}
}

// repMovementSchema leaves out location_base while the flag is clear.
func repMovementSchema(m *movement.RepMovement) schema {
	return movementSchema(m, func(name string, v *vector.Vector) fieldSpec {
		return messageField(name, vectorSchema(v))
	})
}

// snapshotMovementSchema is repMovementSchema with both velocities sent as
// Vector3f. Field numbers are shared.
func snapshotMovementSchema(m *movement.RepMovement) schema {
	return movementSchema(m, compactVectorField)
}

func movementSchema(m *movement.RepMovement, velocity func(name string, v *vector.Vector) fieldSpec) schema {
	base := uuidField("location_base", &m.LocationBase)
	base.omit = func() bool { return !m.HasLocationBase }

	return schema{name: "RepMovement", fields: []fieldSpec{
		messageField("location", vectorSchema(&m.Location)),
		messageField("rotation", rotatorSchema(&m.Rotation)),
		velocity("linear_velocity", &m.LinearVelocity),
		velocity("angular_velocity", &m.AngularVelocity),
		boolField("has_location_base", &m.HasLocationBase),
		base,
		messageField("relative_location", vectorSchema(&m.RelativeLocation)),
		uintField("server_frame", &m.ServerFrame),
		boolField("is_simulated", &m.IsSimulated),
	}}
}

// compactVectorField stores a float64 vector as a Vector3f message. Decoding
// widens it back, so values survive only to single precision.
func compactVectorField(name string, dst *vector.Vector) fieldSpec {
	var compact vector.Vector3f
	nested := vector3fSchema(&compact)
	return fieldSpec{
		name: name,
		wt:   protowire.BytesType,
		put: func(b []byte) []byte {
			compact = dst.Quantize()
			return protowire.AppendBytes(b, nested.append(nil))
		},
		set: func(f rawField) error {
			compact = vector.Vector3f{}
			if err := nested.decode(f.bytes); err != nil {
				return err
			}
			*dst = compact.ToVector()
			return nil
		},
	}
}
