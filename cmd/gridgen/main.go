// gridgen generates a flat grid mesh and splices its vertex and index arrays
// into a model data (.dt) file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/gridmesh/internal/config"
	"github.com/Faultbox/gridmesh/internal/logger"
	"github.com/Faultbox/gridmesh/internal/patcher"
	"github.com/Faultbox/gridmesh/pkg/export"
	"github.com/Faultbox/gridmesh/pkg/grid"
)

// errUsage marks errors already explained by printed usage.
var errUsage = errors.New("usage")

func main() {
	defer logger.Sync()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) {
			logger.Error("gridgen failed", zap.Error(err))
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		logger.Sync()
		os.Exit(1)
	}
}

// run dispatches a command. Results meant for scripts go to stdout.
func run(args []string, stdout io.Writer) error {
	command := "generate"
	if len(args) > 0 {
		switch {
		case args[0] == "-h" || args[0] == "--help":
			command = "help"
		case len(args[0]) > 0 && args[0][0] != '-':
			command, args = args[0], args[1:]
		}
	}

	switch command {
	case "generate", "gen":
		return cmdGenerate(args, stdout)
	case "inspect":
		return cmdInspect(args, stdout)
	case "glb":
		return cmdGLB(args, stdout)
	case "config":
		return cmdConfig(args, stdout)
	case "help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		return errUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `gridgen - flat grid mesh generator for model data files

Usage:
  gridgen [command] [options]

Commands:
  generate [flags]             Generate the grid and splice it into the target (default)
  inspect <file.dt>            Parse the arrays of a model data file and check indices
  glb [flags] <out.glb>        Export the generated grid as binary glTF
  config [flags] <out.yaml>    Write the effective configuration

Flags:
  -config <path>   Config file (default: ./gridgen.yaml, then user config dir)
  -width <n>       Grid points along x
  -height <n>      Grid points along y
  -target <path>   Model data file to patch
  -scheme <name>   Index scheme: reference, row_offset
  -glb <path>      Also export the mesh as GLB when generating
  -debug           Enable debug logging

Examples:
  gridgen
  gridgen -width 64 -height 64 -target data/models/plane.dt
  gridgen inspect data/models/cubesphere.dt
  gridgen glb -scheme row_offset plane.glb`)
}

// setup parses flags, loads config and starts logging for a command.
func setup(name string, args []string) (*config.Config, *flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, errUsage
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, nil, err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	logger.With(zap.String("run", uuid.NewString()), zap.String("cmd", name))
	logger.Sugar.Debugf("Config: %+v", cfg)

	return cfg, fs, nil
}

// buildMesh generates the configured grid.
func buildMesh(cfg *config.Config) (*grid.Mesh, error) {
	opts, err := cfg.GridOptions()
	if err != nil {
		return nil, err
	}

	mesh, err := grid.Build(cfg.Dimensions(), opts)
	if err != nil {
		return nil, err
	}

	bounds := mesh.Bounds()
	lo, hi := bounds.Min.Array(), bounds.Max.Array()
	logger.Info("grid generated",
		zap.Stringer("size", mesh.Dimensions),
		zap.Stringer("scheme", opts.Scheme),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", len(mesh.Triangles)),
		zap.Float32s("min", lo[:]),
		zap.Float32s("max", hi[:]),
	)
	return mesh, nil
}

func cmdGenerate(args []string, stdout io.Writer) error {
	cfg, _, err := setup("generate", args)
	if err != nil {
		return err
	}

	mesh, err := buildMesh(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, len(mesh.Triangles))

	// The target is written last so a failed export leaves it untouched.
	if cfg.Export.GLBPath != "" {
		if len(mesh.Triangles) == 0 {
			logger.Warn("skipping glb export of a mesh without triangles",
				zap.String("path", cfg.Export.GLBPath),
				zap.Stringer("size", mesh.Dimensions),
			)
		} else {
			if err := export.WriteGLB(mesh, cfg.Export.GLBPath); err != nil {
				return err
			}
			logger.Info("glb exported", zap.String("path", cfg.Export.GLBPath))
		}
	}

	res, err := patcher.Patch(cfg.Target.Path, mesh)
	if err != nil {
		return err
	}
	logger.Info("target patched",
		zap.String("path", res.Path),
		zap.Int("bytes", res.Bytes),
		zap.Bool("changed", res.Changed()),
		zap.String("body_xxhash", fmt.Sprintf("%016x", res.NewBodySum)),
	)
	return nil
}

func cmdInspect(args []string, stdout io.Writer) error {
	_, fs, err := setup("inspect", args)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gridgen inspect <file.dt>")
		return errUsage
	}

	report, err := patcher.Inspect(fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "File:      %s\n", report.Path)
	fmt.Fprintf(stdout, "Vertices:  %d\n", report.Vertices)
	fmt.Fprintf(stdout, "Triangles: %d\n", report.Triangles)
	fmt.Fprintf(stdout, "Max index: %d\n", report.MaxIndex)
	if report.Dimensions != (grid.Dimensions{}) {
		fmt.Fprintf(stdout, "Grid:      %s\n", report.Dimensions)
	}
	fmt.Fprintf(stdout, "xxhash:    %016x\n", report.BodySum)
	return nil
}

func cmdGLB(args []string, stdout io.Writer) error {
	cfg, fs, err := setup("glb", args)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gridgen glb [flags] <out.glb>")
		return errUsage
	}

	mesh, err := buildMesh(cfg)
	if err != nil {
		return err
	}
	if err := export.WriteGLB(mesh, fs.Arg(0)); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Exported: %s (%d vertices, %d triangles)\n", fs.Arg(0), len(mesh.Vertices), len(mesh.Triangles))
	return nil
}

func cmdConfig(args []string, stdout io.Writer) error {
	cfg, fs, err := setup("config", args)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gridgen config [flags] <out.yaml>")
		return errUsage
	}

	if err := cfg.SaveTo(fs.Arg(0)); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote: %s\n", fs.Arg(0))
	return nil
}
