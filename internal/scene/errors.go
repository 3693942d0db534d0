package scene

import (
	"errors"

	"github.com/zeusync/spatial/pkg/spatial/wire"
)

var (
	ErrInvalidValue    = errors.New("invalid value")
	ErrDuplicateID     = errors.New("duplicate entity id")
	ErrUnknownBase     = errors.New("unknown base entity")
	ErrMissingVolume   = errors.New("entity needs a box or a sphere")
	ErrAmbiguousVolume = errors.New("entity has both a box and a sphere")
	ErrDegenerateScale = errors.New("scale has a zero component")
	ErrZeroDirection   = errors.New("ray direction is zero")
)

// fieldError reports a problem with one field of a scene document, e.g.
// "scene.entities[2].box: entity has both a box and a sphere".
func fieldError(field string, err error) error {
	return &wire.FieldError{Type: "scene", Field: field, Err: err}
}
