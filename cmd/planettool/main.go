// planettool is a CLI utility for inspecting procedural planet terrain.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetterrain/internal/config"
	"github.com/Faultbox/planetterrain/internal/engine/debug"
	"github.com/Faultbox/planetterrain/internal/engine/terrain"
	"github.com/Faultbox/planetterrain/internal/logger"
	"github.com/Faultbox/planetterrain/pkg/cubemap"
	"github.com/Faultbox/planetterrain/pkg/planet"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "sample":
		cmdSample(args)
	case "chunks":
		cmdChunks(args)
	case "mesh":
		cmdMesh(args)
	case "texture", "tex":
		cmdTexture(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`planettool - procedural planet terrain utility

Usage:
  planettool <command> [options]

Commands:
  info [-dump]                       Show terrain parameters
  sample <x> <y> <z>                 Height and patch at a direction
  chunks                             Chunk set around the view direction
  mesh                               Build all chunk meshes and report sizes
  texture -o <out.png> [-preview N]  Write the chunk grid texture

Every command also accepts the config flags (-config, -seed, -depth,
-rings, -resolution, -workers, -debug).

Examples:
  planettool info -dump
  planettool sample 0 1 0
  planettool chunks -rings 3
  planettool mesh -resolution 17 -workers 4
  planettool texture -o grid.png -preview 256`)
}

// loadConfig parses args with the config flags added to fs and returns the
// validated config. It exits on error.
func loadConfig(fs *flag.FlagSet, args []string) *config.Config {
	f := config.BindFlags(fs)
	fs.Parse(args)

	cfg, err := config.LoadWith(f)
	if err != nil {
		fail(err)
	}
	if err := cfg.Validate(); err != nil {
		fail(err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fail(err)
	}
	return cfg
}

func newTerrain(cfg *config.Config) *planet.Terrain {
	t, err := planet.New(cfg.PlanetParams())
	if err != nil {
		fail(err)
	}
	return t
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func viewDirection(cfg *config.Config) mgl64.Vec3 {
	return mgl64.Vec3(cfg.View.Direction).Normalize()
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	dump := fs.Bool("dump", false, "Dump the full configuration")
	cfg := loadConfig(fs, args)
	defer logger.Sync()

	t := newTerrain(cfg)
	p := t.Params()
	faceRes := t.FaceResolution()
	patch := math.Pi / 2 * p.MinRadius / float64(faceRes)

	source := cfg.Path()
	if source == "" {
		source = "(defaults)"
	}
	fmt.Printf("Config:       %s\n", source)
	fmt.Printf("Radius:       %s .. %s\n", humanize.Commaf(t.MinRadius()), humanize.Commaf(t.MaxRadius()))
	fmt.Printf("Height range: %g\n", p.HeightRange)
	fmt.Printf("Depth:        %d (%s x %s patches per face)\n", p.Depth,
		humanize.Comma(int64(faceRes)), humanize.Comma(int64(faceRes)))
	fmt.Printf("Patch size:   ~%.2f units\n", patch)
	fmt.Printf("Noise:        seed %d, %d octaves, frequency %g, persistence %g, lacunarity %g\n",
		p.Noise.Seed, p.Noise.Octaves, p.Noise.Frequency, p.Noise.Persistence, p.Noise.Lacunarity)

	if *dump {
		fmt.Println()
		spew.Dump(cfg)
	}
}

func cmdSample(args []string) {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	cfg := loadConfig(fs, args)
	defer logger.Sync()

	if fs.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "Usage: planettool sample <x> <y> <z>")
		os.Exit(1)
	}
	var dir mgl64.Vec3
	for i := range 3 {
		v, err := strconv.ParseFloat(fs.Arg(i), 64)
		if err != nil {
			fail(fmt.Errorf("coordinate %q: %w", fs.Arg(i), err))
		}
		dir[i] = v
	}
	if dir.Len() == 0 {
		fail(fmt.Errorf("%w: direction must be non-zero", planet.ErrInvalidArgument))
	}
	dir = dir.Normalize()

	t := newTerrain(cfg)
	h, err := t.HeightAt(dir)
	if err != nil {
		fail(err)
	}
	c := cubemap.FromVector(t.FaceResolution(), dir)

	fmt.Printf("Direction: (%.6f, %.6f, %.6f)\n", dir.X(), dir.Y(), dir.Z())
	fmt.Printf("Height:    %.3f\n", h)
	fmt.Printf("Radius:    %.3f\n", t.MinRadius()+h)
	fmt.Printf("Patch:     %s\n", c)
}

func cmdChunks(args []string) {
	fs := flag.NewFlagSet("chunks", flag.ExitOnError)
	cfg := loadConfig(fs, args)
	defer logger.Sync()

	faceRes := cfg.Terrain.FaceResolution()
	base := cubemap.FromVector(faceRes, viewDirection(cfg))
	start := time.Now()
	coords, rings := terrain.ExpandChunkSet(base, faceRes, cfg.View.Rings)
	elapsed := time.Since(start)

	perRing := make([]int, cfg.View.Rings+1)
	faces := make(map[cubemap.Face]int)
	for _, c := range coords {
		perRing[rings[c]]++
		faces[c.Face]++
	}

	fmt.Printf("Base:   %s\n", base)
	fmt.Printf("Rings:  %d\n", cfg.View.Rings)
	fmt.Printf("Chunks: %s (in %v)\n", humanize.Comma(int64(len(coords))), elapsed)
	fmt.Println()
	fmt.Println("Chunks by ring:")
	for ring, n := range perRing {
		fmt.Printf("  %3d  %-6d %s\n", ring, n, strings.Repeat("#", min(n, 60)))
	}

	fmt.Println()
	fmt.Println("Chunks by face:")
	for _, f := range cubemap.Faces {
		if n := faces[f]; n > 0 {
			fmt.Printf("  %-4s %d\n", f, n)
		}
	}
}

func cmdMesh(args []string) {
	fs := flag.NewFlagSet("mesh", flag.ExitOnError)
	cfg := loadConfig(fs, args)
	defer logger.Sync()

	t := newTerrain(cfg)
	dir := viewDirection(cfg)
	coords := terrain.BuildChunkSet(t.FaceResolution(), dir, cfg.View.Rings)

	origin, err := terrain.OriginAbove(t, dir, cfg.View.Clearance)
	if err != nil {
		fail(err)
	}

	start := time.Now()
	meshes, err := terrain.BuildChunkMeshes(t, t.MinRadius(), coords, cfg.View.MeshResolution, origin, cfg.View.Workers)
	if err != nil {
		fail(err)
	}
	elapsed := time.Since(start)

	var vertices, indices int
	var bytes uint64
	for _, m := range meshes {
		vertices += m.VertexCount()
		indices += len(m.Indices)
		bytes += m.ByteSize()
	}
	b := terrain.TotalBounds(meshes)
	size := b.Size()

	fmt.Printf("Chunks:     %s at %dx%d vertices\n", humanize.Comma(int64(len(meshes))),
		cfg.View.MeshResolution, cfg.View.MeshResolution)
	fmt.Printf("Vertices:   %s\n", humanize.Comma(int64(vertices)))
	fmt.Printf("Triangles:  %s\n", humanize.Comma(int64(indices/3)))
	fmt.Printf("Buffers:    %s\n", humanize.Bytes(bytes))
	fmt.Printf("Bounds:     (%.2f, %.2f, %.2f) .. (%.2f, %.2f, %.2f)\n",
		b.Min.X(), b.Min.Y(), b.Min.Z(), b.Max.X(), b.Max.Y(), b.Max.Z())
	fmt.Printf("Extent:     %.2f x %.2f x %.2f\n", size.X(), size.Y(), size.Z())
	fmt.Printf("Build time: %v\n", elapsed)
}

func cmdTexture(args []string) {
	fs := flag.NewFlagSet("texture", flag.ExitOnError)
	output := fs.String("o", "", "Output PNG path")
	size := fs.Int("size", 0, "Texture resolution (default from config)")
	preview := fs.Int("preview", 0, "Also write a downscaled preview of at most N pixels")
	cfg := loadConfig(fs, args)
	defer logger.Sync()

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Usage: planettool texture -o <out.png> [-size N] [-preview N]")
		os.Exit(1)
	}

	res := cfg.Texture.Resolution
	if *size > 0 {
		res = *size
	}

	img, err := debug.GridTexture(res, cfg.GridCells(), cfg.GridStyle())
	if err != nil {
		fail(err)
	}
	if err := debug.SavePNG(*output, img); err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %s (%dx%d, %d cells)\n", *output, res, res, cfg.GridCells())

	if *preview > 0 {
		ext := filepath.Ext(*output)
		previewPath := strings.TrimSuffix(*output, ext) + "_preview" + ext
		small := debug.Downscale(img, *preview)
		if err := debug.SavePNG(previewPath, small); err != nil {
			fail(err)
		}
		fmt.Printf("Wrote %s (%dx%d)\n", previewPath, small.Bounds().Dx(), small.Bounds().Dy())
	}
}
