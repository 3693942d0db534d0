package injector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/spatial/internal/scene"
)

func TestInitializeScene(t *testing.T) {
	s, err := InitializeYAMLScene(strings.NewReader("name: y\nentities:\n  - name: a\n    sphere: {radius: 1}\n"))
	require.NoError(t, err)
	require.Equal(t, "y", s.Name)
	require.Equal(t, scene.ShapeSphere, s.Entities[0].Shape)

	s, err = InitializeJSONScene(strings.NewReader(`{"name": "j"}`))
	require.NoError(t, err)
	require.Equal(t, "j", s.Name)

	_, err = InitializeJSONScene(strings.NewReader(`{"workers": -1}`))
	require.ErrorIs(t, err, scene.ErrInvalidValue)
}
