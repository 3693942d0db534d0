package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/zeusync/spatial/internal/core/events/bus"
	"github.com/zeusync/spatial/internal/core/observability/log"
	"github.com/zeusync/spatial/internal/injector"
	"github.com/zeusync/spatial/internal/scene"
)

func main() {
	scenePath := flag.String("scene", "", "path to a scene document")
	format := flag.String("format", "", "scene format, yaml or json; taken from the file extension when empty")
	logLevel := flag.String("log-level", "", "overrides the scene's log_level")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := injector.ProvideLogger(log.LevelInfo)

	if err := run(ctx, logger, os.Stdout, *scenePath, *format, *logLevel); err != nil {
		logger.Error("spatial failed", log.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(ctx context.Context, logger *log.Logger, out io.Writer, path, format, levelOverride string) error {
	if path == "" {
		return fmt.Errorf("missing -scene")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	var s *scene.Scene
	switch format {
	case "json":
		s, err = injector.InitializeJSONScene(f)
	case "yaml", "yml":
		s, err = injector.InitializeYAMLScene(f)
	default:
		return fmt.Errorf("unknown scene format %q", format)
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	logger.SetLevel(s.LogLevel)
	if levelOverride != "" {
		level, err := log.ParseLevel(levelOverride)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
	}

	s.Events = injector.ProvideEventBus()
	if err = subscribe(s.Events, out); err != nil {
		return err
	}

	_, err = s.Evaluate(ctx, logger)
	return err
}

// subscribe prints evaluation results as they are published.
func subscribe(events bus.EventBus, w io.Writer) error {
	if _, err := events.Subscribe(scene.EventOverlap, func(e bus.Event) error {
		o := e.Data.(scene.Overlap)
		_, err := fmt.Fprintf(w, "overlap  %s / %s in %s tint #%06X\n", o.A.Name, o.B.Name, o.Region, o.Color.Hex())
		return err
	}); err != nil {
		return err
	}

	if _, err := events.Subscribe(scene.EventRayHit, func(e bus.Event) error {
		h := e.Data.(scene.Hit)
		_, err := fmt.Fprintf(w, "hit      %s -> %s at %.3f (%s)\n", h.Ray, h.Name, h.Distance, h.Point)
		return err
	}); err != nil {
		return err
	}

	_, err := events.Subscribe(scene.EventEvaluated, func(e bus.Event) error {
		printReport(w, e.Data.(*scene.Report))
		return nil
	})
	return err
}

func printReport(w io.Writer, r *scene.Report) {
	fmt.Fprintf(w, "scene %s: %d entities\n", r.Scene, len(r.Volumes))
	for _, v := range r.Volumes {
		fmt.Fprintf(w, "  %-12s %-6s %s\n", v.Name, v.Shape, v.Box)
	}

	fmt.Fprintf(w, "overlaps: %d, hits: %d\n", len(r.Overlaps), len(r.Hits))
	fmt.Fprintf(w, "snapshot: %d bytes, fingerprint %016x\n", len(r.Snapshot), r.Fingerprint)
}
