package config

import "flag"

// Flags holds command-line overrides. Only flags the user actually set are
// applied, so zero values such as seed 0 can still be requested.
type Flags struct {
	fs *flag.FlagSet

	Config  string
	EnvFile string
	Debug   bool

	Seed       int64
	Depth      uint
	Rings      int
	Resolution int
	Workers    int

	Fullscreen bool
	Width      int
	Height     int
}

// BindFlags registers the config flags on fs.
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.StringVar(&f.EnvFile, "env", ".env", "Path to .env file with PLANET_* overrides")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.Int64Var(&f.Seed, "seed", 0, "Terrain noise seed")
	fs.UintVar(&f.Depth, "depth", 0, "Subdivision depth (face grid is 2^depth)")
	fs.IntVar(&f.Rings, "rings", 0, "Neighbor rings around the base patch")
	fs.IntVar(&f.Resolution, "resolution", 0, "Vertices per patch edge")
	fs.IntVar(&f.Workers, "workers", 0, "Mesh build workers (0 = one per CPU)")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	return f
}

// commandLine is bound to the process flags, like the rest of the flag package.
var commandLine = BindFlags(flag.CommandLine)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// CommandLine returns the flags bound to the process command line.
func CommandLine() *Flags {
	return commandLine
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	return f.Config
}

// apply copies explicitly set flags into cfg.
func (f *Flags) apply(cfg *Config) {
	set := make(map[string]bool)
	f.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if set["seed"] {
		cfg.Terrain.Noise.Seed = f.Seed
	}
	if set["depth"] {
		cfg.Terrain.Depth = uint32(f.Depth)
	}
	if set["rings"] {
		cfg.View.Rings = f.Rings
	}
	if set["resolution"] {
		cfg.View.MeshResolution = f.Resolution
	}
	if set["workers"] {
		cfg.View.Workers = f.Workers
	}
	if set["fullscreen"] {
		cfg.Graphics.Fullscreen = f.Fullscreen
	}
	if f.Width > 0 {
		cfg.Graphics.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Graphics.Height = f.Height
	}
}
