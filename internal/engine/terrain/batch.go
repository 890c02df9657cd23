package terrain

import (
	"runtime"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/planetterrain/internal/logger"
	"github.com/Faultbox/planetterrain/pkg/cubemap"
	"github.com/Faultbox/planetterrain/pkg/planet"
)

// BuildChunkMeshes builds a mesh for every patch in coords on a worker pool.
// The result has the same order as coords. Patches that fail leave a nil
// entry and their errors are combined into the returned error.
func BuildChunkMeshes(s planet.Sampler, radius float64, coords []cubemap.Coords, r int, origin RenderOrigin, workers int) ([]*ChunkMesh, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	start := time.Now()

	meshes := make([]*ChunkMesh, len(coords))
	errs := make([]error, len(coords))

	pool := pond.NewPool(workers)
	defer pool.StopAndWait()

	var wg sync.WaitGroup
	for i, c := range coords {
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			meshes[i], errs[i] = BuildChunkMesh(s, radius, c, r, origin)
		})
	}
	wg.Wait()

	var err error
	for _, e := range errs {
		err = multierr.Append(err, e)
	}

	logger.Debug("built chunk meshes",
		zap.Int("chunks", len(coords)),
		zap.Int("resolution", r),
		zap.Int("workers", workers),
		zap.Int("failed", len(multierr.Errors(err))),
		zap.Duration("elapsed", time.Since(start)))

	return meshes, err
}

// BuiltMeshes returns the non-nil meshes of a partial build, in order.
func BuiltMeshes(meshes []*ChunkMesh) []*ChunkMesh {
	out := make([]*ChunkMesh, 0, len(meshes))
	for _, m := range meshes {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

// TotalBounds returns the union of the bounds of all non-nil meshes.
func TotalBounds(meshes []*ChunkMesh) Bounds {
	b := emptyBounds()
	for _, m := range meshes {
		if m != nil {
			b.Union(m.Bounds)
		}
	}
	return b
}
