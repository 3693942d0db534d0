package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/spatial/internal/core/observability/log"
)

func TestRun(t *testing.T) {
	logger := log.NewWithWriter(&bytes.Buffer{}, log.LevelInfo)

	var out bytes.Buffer
	err := run(context.Background(), logger, &out, "../../internal/scene/testdata/yard.yaml", "", "warn")
	require.NoError(t, err)
	require.Equal(t, log.LevelWarn, logger.GetLevel())
	require.Contains(t, out.String(), "scene yard: 4 entities")
	require.Contains(t, out.String(), "overlaps: 1, hits: 5")
	require.Contains(t, out.String(), "overlap  crate / barrel")
	require.Contains(t, out.String(), "tint #BC00BC")
	require.Contains(t, out.String(), "hit      east -> wall at 14.500")
}

func TestRun_Errors(t *testing.T) {
	logger := log.NewWithWriter(&bytes.Buffer{}, log.LevelInfo)
	ctx := context.Background()

	require.Error(t, run(ctx, logger, &bytes.Buffer{}, "", "", ""))
	require.Error(t, run(ctx, logger, &bytes.Buffer{}, "does-not-exist.yaml", "", ""))

	path := filepath.Join(t.TempDir(), "scene.txt")
	require.NoError(t, os.WriteFile(path, []byte("name: x\n"), 0o600))
	require.Error(t, run(ctx, logger, &bytes.Buffer{}, path, "", ""))
	require.NoError(t, run(ctx, logger, &bytes.Buffer{}, path, "yaml", ""))
	require.Error(t, run(ctx, logger, &bytes.Buffer{}, path, "yaml", "loud"))
}
