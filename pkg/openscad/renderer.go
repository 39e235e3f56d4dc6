// Package openscad turns OpenSCAD sources into STL files by running the
// openscad command line tool.
package openscad

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotInstalled is returned when the openscad binary is not on PATH
var ErrNotInstalled = errors.New("openscad not found in PATH, install it from https://openscad.org/")

// Binary is the command run by RenderToSTL
var Binary = "openscad"

// Renderer handles OpenSCAD file rendering to STL
type Renderer struct {
	workDir string
}

// NewRenderer creates a renderer resolving relative names against workDir
func NewRenderer(workDir string) *Renderer {
	return &Renderer{workDir: workDir}
}

func (r *Renderer) abs(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(r.workDir, file)
}

// RenderToSTL renders an OpenSCAD file to STL format
func (r *Renderer) RenderToSTL(ctx context.Context, scadFile, outputFile string) error {
	bin, err := exec.LookPath(Binary)
	if err != nil {
		return ErrNotInstalled
	}

	cmd := exec.CommandContext(ctx, bin, "-o", outputFile, r.abs(scadFile))
	cmd.Dir = r.workDir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(output.String()); msg != "" {
			return errors.Wrapf(err, "failed to render %s: %s", scadFile, msg)
		}
		return errors.Wrapf(err, "failed to render %s", scadFile)
	}
	return nil
}

// RenderTemp renders scadFile into a fresh temporary STL file and returns
// its name. The caller removes it.
func (r *Renderer) RenderTemp(ctx context.Context, scadFile string) (string, error) {
	f, err := os.CreateTemp("", "flyview-*.stl")
	if err != nil {
		return "", errors.Wrap(err, "temp file")
	}
	name := f.Name()
	f.Close()

	if err := r.RenderToSTL(ctx, scadFile, name); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// ResolveDependencies returns scadFile followed by every file it pulls in
// through use or include, transitively, as absolute paths.
func (r *Renderer) ResolveDependencies(scadFile string) ([]string, error) {
	visited := make(map[string]bool)
	var deps []string

	var walk func(file string) error
	walk = func(file string) error {
		if visited[file] {
			return nil
		}
		visited[file] = true
		deps = append(deps, file)

		children, err := r.parseDependencies(file)
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}

	start, err := filepath.Abs(r.abs(scadFile))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", scadFile)
	}
	if err := walk(start); err != nil {
		return nil, err
	}
	return deps, nil
}

// Matches: use <file.scad>, include <./lib/file.scad>
var dependencyRegex = regexp.MustCompile(`^\s*(?:use|include)\s*<([^>]+)>`)

// parseDependencies lists the use/include targets of a single file
func (r *Renderer) parseDependencies(scadFile string) ([]string, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", scadFile)
	}
	defer file.Close()

	var deps []string
	dir := filepath.Dir(scadFile)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if m := dependencyRegex.FindStringSubmatch(line); m != nil {
			deps = append(deps, r.resolveDepPath(m[1], dir))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "error reading %s", scadFile)
	}
	return deps, nil
}

// resolveDepPath resolves a dependency against the including file's
// directory and then against the work directory
func (r *Renderer) resolveDepPath(depPath, currentDir string) string {
	if strings.HasPrefix(depPath, "./") || strings.HasPrefix(depPath, "../") {
		return filepath.Clean(filepath.Join(currentDir, depPath))
	}

	local := filepath.Join(currentDir, depPath)
	if _, err := os.Stat(local); err == nil {
		return filepath.Clean(local)
	}
	return filepath.Clean(filepath.Join(r.workDir, depPath))
}
