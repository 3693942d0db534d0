//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"io"

	"github.com/google/wire"
	"github.com/zeusync/spatial/internal/core/events/bus"
	"github.com/zeusync/spatial/internal/core/observability/log"
	"github.com/zeusync/spatial/internal/scene"
)

func ProvideLogger(level log.Level) *log.Logger {
	wire.Build(log.New)
	return nil
}

func ProvideEventBus() bus.EventBus {
	wire.Build(bus.New)
	return nil
}

func InitializeYAMLScene(r io.Reader) (*scene.Scene, error) {
	wire.Build(scene.LoadYAML, scene.New)
	return nil, nil
}

func InitializeJSONScene(r io.Reader) (*scene.Scene, error) {
	wire.Build(scene.LoadJSON, scene.New)
	return nil, nil
}
