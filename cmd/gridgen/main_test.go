package main

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/gridmesh/internal/logger"
	"github.com/Faultbox/gridmesh/pkg/grid"
)

const header = "Mesh:\n  PregenID: 7\n  NumVerts: 6\n  NumIndices: 12\n  Arrays:\n"

// isolate keeps the test away from user config files.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Cleanup(logger.InitNop)
	return dir
}

func TestRunGenerate(t *testing.T) {
	dir := isolate(t)
	target := filepath.Join(dir, "plane.dt")
	if err := os.WriteFile(target, []byte(header+"[{{1,1,1}}]\n[{0,0,0}]\n"), 0644); err != nil {
		t.Fatalf("failed to write target: %v", err)
	}

	var out bytes.Buffer
	err := run([]string{"generate", "-width", "3", "-height", "2", "-target", target}, &out)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if got := strings.TrimSpace(out.String()); got != "4" {
		t.Errorf("expected index count 4 on stdout, got %q", got)
	}

	data, _ := os.ReadFile(target)
	want := header +
		"[{{0,0,0},{1,0,0},{2,0,0},{0,1,0},{1,1,0},{2,1,0}}]\n" +
		"[{0,3,4,0,1,4,1,4,5,1,2,5}]\n"
	if string(data) != want {
		t.Errorf("unexpected target content:\n%s", data)
	}
}

func TestRunDefaultCommandWithGLB(t *testing.T) {
	dir := isolate(t)
	target := filepath.Join(dir, "plane.dt")
	if err := os.WriteFile(target, []byte(header), 0644); err != nil {
		t.Fatalf("failed to write target: %v", err)
	}
	glb := filepath.Join(dir, "plane.glb")

	var out bytes.Buffer
	if err := run([]string{"-width", "30", "-height", "30", "-target", target, "-glb", glb}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if got := strings.TrimSpace(out.String()); got != "1682" {
		t.Errorf("expected index count 1682, got %q", got)
	}
	if _, err := os.Stat(glb); err != nil {
		t.Errorf("expected GLB export: %v", err)
	}
}

func TestRunRejectsFlatGridBeforeIO(t *testing.T) {
	dir := isolate(t)
	target := filepath.Join(dir, "missing.dt")

	var out bytes.Buffer
	err := run([]string{"-height", "1", "-target", target}, &out)
	if !errors.Is(err, grid.ErrHeightTooSmall) {
		t.Fatalf("expected ErrHeightTooSmall, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed, got %q", out.String())
	}
}

func TestRunRejectsExplicitZeroDimensions(t *testing.T) {
	dir := isolate(t)
	target := filepath.Join(dir, "plane.dt")
	original := header + "[{{1,1,1}}]\n[{0,0,0}]\n"
	if err := os.WriteFile(target, []byte(original), 0644); err != nil {
		t.Fatalf("failed to write target: %v", err)
	}

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"height zero", []string{"-height", "0"}, grid.ErrHeightTooSmall},
		{"height negative", []string{"-height", "-3"}, grid.ErrHeightTooSmall},
		{"width zero", []string{"-width", "0"}, grid.ErrWidthTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(append(tt.args, "-target", target), &out)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if out.Len() != 0 {
				t.Errorf("nothing should be printed, got %q", out.String())
			}
			data, _ := os.ReadFile(target)
			if string(data) != original {
				t.Errorf("target was modified:\n%s", data)
			}
		})
	}
}

func TestRunWidthOneSkipsGLB(t *testing.T) {
	dir := isolate(t)
	target := filepath.Join(dir, "line.dt")
	if err := os.WriteFile(target, []byte(header), 0644); err != nil {
		t.Fatalf("failed to write target: %v", err)
	}
	glb := filepath.Join(dir, "line.glb")

	var out bytes.Buffer
	if err := run([]string{"-width", "1", "-height", "3", "-target", target, "-glb", glb}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if got := strings.TrimSpace(out.String()); got != "0" {
		t.Errorf("expected index count 0, got %q", got)
	}
	data, _ := os.ReadFile(target)
	if want := header + "[{{0,0,0},{0,1,0},{0,2,0}}]\n[{}]\n"; string(data) != want {
		t.Errorf("unexpected target content:\n%s", data)
	}
	if _, err := os.Stat(glb); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected no GLB for a mesh without triangles, got %v", err)
	}
}

func TestRunGLBFailureLeavesTarget(t *testing.T) {
	dir := isolate(t)
	target := filepath.Join(dir, "plane.dt")
	if err := os.WriteFile(target, []byte(header), 0644); err != nil {
		t.Fatalf("failed to write target: %v", err)
	}
	// A regular file where the export directory should be.
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatalf("failed to write blocker: %v", err)
	}

	var out bytes.Buffer
	err := run([]string{"-width", "3", "-height", "2", "-target", target, "-glb", filepath.Join(blocker, "plane.glb")}, &out)
	if err == nil {
		t.Fatal("expected GLB export error")
	}
	data, _ := os.ReadFile(target)
	if string(data) != header {
		t.Errorf("target should be untouched after a failed export:\n%s", data)
	}
}

func TestRunMissingTarget(t *testing.T) {
	dir := isolate(t)

	var out bytes.Buffer
	err := run([]string{"-width", "2", "-height", "2", "-target", filepath.Join(dir, "nope.dt")}, &out)
	if err == nil {
		t.Fatal("expected error for missing target")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestRunInspect(t *testing.T) {
	dir := isolate(t)
	target := filepath.Join(dir, "plane.dt")
	if err := os.WriteFile(target, []byte(header), 0644); err != nil {
		t.Fatalf("failed to write target: %v", err)
	}

	var out bytes.Buffer
	if err := run([]string{"-width", "4", "-height", "3", "-target", target}, &out); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	out.Reset()
	if err := run([]string{"inspect", target}, &out); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	for _, want := range []string{"Vertices:  12", "Triangles: 12", "Max index: 11", "Grid:      4x3"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("inspect output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunConfig(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "gridgen.yaml")

	var out bytes.Buffer
	if err := run([]string{"config", "-width", "9", path}, &out); err != nil {
		t.Fatalf("config failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "width: 9") {
		t.Errorf("expected width override in saved config:\n%s", data)
	}
}

func TestRunUsage(t *testing.T) {
	isolate(t)

	var out bytes.Buffer
	if err := run([]string{"help"}, &out); err != nil {
		t.Fatalf("help failed: %v", err)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Error("help should print usage")
	}

	if err := run([]string{"frobnicate"}, &out); !errors.Is(err, errUsage) {
		t.Errorf("expected errUsage for unknown command, got %v", err)
	}
	if err := run([]string{"inspect"}, &out); !errors.Is(err, errUsage) {
		t.Errorf("expected errUsage for inspect without file, got %v", err)
	}
}
