package config

import "flag"

// Flags holds command-line overrides. Zero values leave the config untouched,
// except for grid dimensions passed explicitly on the command line.
type Flags struct {
	Config string
	Debug  bool
	Width  int
	Height int
	Target string
	Scheme string
	GLB    string

	fs *flag.FlagSet
}

// RegisterFlags binds the override flags to fs and returns their destination.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Width, "width", 0, "Grid points along x")
	fs.IntVar(&f.Height, "height", 0, "Grid points along y")
	fs.StringVar(&f.Target, "target", "", "Model data file to patch")
	fs.StringVar(&f.Scheme, "scheme", "", "Index scheme (reference, row_offset)")
	fs.StringVar(&f.GLB, "glb", "", "Also export the mesh as GLB to this path")
	return f
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Width > 0 || f.isSet("width") {
		cfg.Grid.Width = f.Width
	}
	if f.Height > 0 || f.isSet("height") {
		cfg.Grid.Height = f.Height
	}
	if f.Target != "" {
		cfg.Target.Path = f.Target
	}
	if f.Scheme != "" {
		cfg.Grid.Scheme = f.Scheme
	}
	if f.GLB != "" {
		cfg.Export.GLBPath = f.GLB
	}
}

// isSet reports whether the named flag was passed on the command line.
func (f *Flags) isSet(name string) bool {
	if f.fs == nil {
		return false
	}
	set := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}
