package wire

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"
)

// rawField is one decoded field value before it is stored.
type rawField struct {
	u64   uint64
	bytes []byte
}

// fieldSpec binds one protobuf field to a Go struct field. Field numbers are
// positions in the schema, starting at 1.
type fieldSpec struct {
	name string
	wt   protowire.Type
	put  func(b []byte) []byte
	set  func(f rawField) error
	omit func() bool
}

type schema struct {
	name   string
	fields []fieldSpec
}

func (s schema) append(b []byte) []byte {
	for i, f := range s.fields {
		if f.omit != nil && f.omit() {
			continue
		}
		b = protowire.AppendTag(b, protowire.Number(i+1), f.wt)
		b = f.put(b)
	}
	return b
}

// decode stores every field found in data. Missing fields keep their
// current value; repeated fields overwrite.
func (s schema) decode(data []byte) error {
	for len(data) > 0 {
		num, wt, n := protowire.ConsumeTag(data)
		if n < 0 {
			return &FieldError{Type: s.name, Err: fmt.Errorf("%w: %v", ErrTruncated, protowire.ParseError(n))}
		}
		data = data[n:]

		idx := int(num) - 1
		if idx < 0 || idx >= len(s.fields) {
			return &FieldError{Type: s.name, Field: fmt.Sprintf("#%d", num), Err: ErrUnknownField}
		}
		spec := s.fields[idx]
		if wt != spec.wt {
			return &FieldError{Type: s.name, Field: spec.name, Err: fmt.Errorf("%w: got %d, want %d", ErrWireType, wt, spec.wt)}
		}

		var f rawField
		switch wt {
		case protowire.Fixed64Type:
			f.u64, n = protowire.ConsumeFixed64(data)
		case protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(data)
			f.u64 = uint64(v)
		case protowire.VarintType:
			f.u64, n = protowire.ConsumeVarint(data)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(data)
		}
		if n < 0 {
			return &FieldError{Type: s.name, Field: spec.name, Err: fmt.Errorf("%w: %v", ErrTruncated, protowire.ParseError(n))}
		}
		data = data[n:]

		if err := spec.set(f); err != nil {
			return &FieldError{Type: s.name, Field: spec.name, Err: err}
		}
	}
	return nil
}

func doubleField(name string, dst *float64) fieldSpec {
	return fieldSpec{
		name: name,
		wt:   protowire.Fixed64Type,
		put: func(b []byte) []byte {
			return protowire.AppendFixed64(b, math.Float64bits(*dst))
		},
		set: func(f rawField) error {
			*dst = math.Float64frombits(f.u64)
			return nil
		},
	}
}

func floatField(name string, dst *float32) fieldSpec {
	return fieldSpec{
		name: name,
		wt:   protowire.Fixed32Type,
		put: func(b []byte) []byte {
			return protowire.AppendFixed32(b, math.Float32bits(*dst))
		},
		set: func(f rawField) error {
			*dst = math.Float32frombits(uint32(f.u64))
			return nil
		},
	}
}

func sintField(name string, dst *int32) fieldSpec {
	return fieldSpec{
		name: name,
		wt:   protowire.VarintType,
		put: func(b []byte) []byte {
			return protowire.AppendVarint(b, protowire.EncodeZigZag(int64(*dst)))
		},
		set: func(f rawField) error {
			v := protowire.DecodeZigZag(f.u64)
			if v < math.MinInt32 || v > math.MaxInt32 {
				return fmt.Errorf("value %d overflows int32", v)
			}
			*dst = int32(v)
			return nil
		},
	}
}

func uintField(name string, dst *uint32) fieldSpec {
	return fieldSpec{
		name: name,
		wt:   protowire.VarintType,
		put: func(b []byte) []byte {
			return protowire.AppendVarint(b, uint64(*dst))
		},
		set: func(f rawField) error {
			if f.u64 > math.MaxUint32 {
				return fmt.Errorf("value %d overflows uint32", f.u64)
			}
			*dst = uint32(f.u64)
			return nil
		},
	}
}

func byteField(name string, dst *uint8) fieldSpec {
	return fieldSpec{
		name: name,
		wt:   protowire.VarintType,
		put: func(b []byte) []byte {
			return protowire.AppendVarint(b, uint64(*dst))
		},
		set: func(f rawField) error {
			if f.u64 > math.MaxUint8 {
				return fmt.Errorf("value %d overflows uint8", f.u64)
			}
			*dst = uint8(f.u64)
			return nil
		},
	}
}

func boolField(name string, dst *bool) fieldSpec {
	return fieldSpec{
		name: name,
		wt:   protowire.VarintType,
		put: func(b []byte) []byte {
			return protowire.AppendVarint(b, protowire.EncodeBool(*dst))
		},
		set: func(f rawField) error {
			*dst = protowire.DecodeBool(f.u64)
			return nil
		},
	}
}

func uuidField(name string, dst *uuid.UUID) fieldSpec {
	return fieldSpec{
		name: name,
		wt:   protowire.BytesType,
		put: func(b []byte) []byte {
			return protowire.AppendBytes(b, dst[:])
		},
		set: func(f rawField) error {
			id, err := uuid.FromBytes(f.bytes)
			if err != nil {
				return err
			}
			*dst = id
			return nil
		},
	}
}

func messageField(name string, nested schema) fieldSpec {
	return fieldSpec{
		name: name,
		wt:   protowire.BytesType,
		put: func(b []byte) []byte {
			return protowire.AppendBytes(b, nested.append(nil))
		},
		set: func(f rawField) error {
			return nested.decode(f.bytes)
		},
	}
}
