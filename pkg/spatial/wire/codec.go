package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/zeusync/spatial/pkg/generic"
	"gopkg.in/yaml.v3"
)

// Codec converts spatial values to bytes and back. Marshal accepts a value
// or a pointer to one; Unmarshal needs a non-nil pointer.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

var (
	_ Codec = BinaryCodec{}
	_ Codec = JSONCodec{}
	_ Codec = YAMLCodec{}
)

var buffers = generic.NewPool(
	func() *[]byte {
		b := make([]byte, 0, 256)
		return &b
	},
	func(b *[]byte) { *b = (*b)[:0] },
)

// addressable returns a pointer to v, copying it when v is not one already.
func addressable(v any) (any, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: nil", ErrUnsupportedType)
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %T", ErrUnsupportedType, v)
		}
		return v, nil
	}
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	return p.Interface(), nil
}

// target checks that v is a non-nil pointer to a supported type and returns
// its schema.
func target(v any) (schema, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return schema{}, fmt.Errorf("%w: %T is not a non-nil pointer", ErrUnsupportedType, v)
	}
	s, ok := schemaOf(v)
	if !ok {
		return schema{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
	return s, nil
}

// BinaryCodec writes protobuf wire format. Fields are numbered in struct
// declaration order; floating point fields are stored as raw IEEE bits, so
// a round trip is bit-exact, NaN payloads included.
type BinaryCodec struct{}

func (BinaryCodec) Marshal(v any) ([]byte, error) {
	ptr, err := addressable(v)
	if err != nil {
		return nil, err
	}
	s, ok := schemaOf(ptr)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}

	buf := buffers.Get()
	defer buffers.Put(buf)

	*buf = s.append(*buf)
	out := make([]byte, len(*buf))
	copy(out, *buf)
	return out, nil
}

// Unmarshal resets v before decoding, so absent fields read as zero.
func (BinaryCodec) Unmarshal(data []byte, v any) error {
	s, err := target(v)
	if err != nil {
		return err
	}
	reflect.ValueOf(v).Elem().SetZero()
	return s.decode(data)
}

// JSONCodec uses the json struct tags of the spatial types. Non-finite
// floats, as in bounds.Empty, cannot be represented in JSON.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	ptr, err := addressable(v)
	if err != nil {
		return nil, err
	}
	s, ok := schemaOf(ptr)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
	data, err := json.Marshal(ptr)
	if err != nil {
		return nil, &FieldError{Type: s.name, Err: err}
	}
	return data, nil
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	s, err := target(v)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &FieldError{Type: s.name, Field: typeErr.Field, Err: err}
		}
		return &FieldError{Type: s.name, Err: err}
	}
	return nil
}

// YAMLCodec uses the yaml struct tags of the spatial types. Decode errors
// name the key path, as DecodeYAML does.
type YAMLCodec struct{}

func (YAMLCodec) Marshal(v any) ([]byte, error) {
	ptr, err := addressable(v)
	if err != nil {
		return nil, err
	}
	s, ok := schemaOf(ptr)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
	data, err := yaml.Marshal(ptr)
	if err != nil {
		return nil, &FieldError{Type: s.name, Err: err}
	}
	return data, nil
}

func (YAMLCodec) Unmarshal(data []byte, v any) error {
	s, err := target(v)
	if err != nil {
		return err
	}
	return DecodeYAML(s.name, data, v, false)
}
