package declarative

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vizopts/pkg/panel"
	"golang.org/x/sync/errgroup"
)

// Files lists the plugin definition files in dir, sorted by name
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read plugin directory", goerr.V("dir", dir))
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := FormatOf(entry.Name()); ok {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	slices.Sort(files)
	return files, nil
}

// LoadPaths loads every given file or directory in parallel. Plugins are
// returned in path order.
func LoadPaths(ctx context.Context, paths ...string) ([]*panel.Plugin, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to stat plugin path", goerr.V("path", path))
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := Files(path)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	plugins := make([]*panel.Plugin, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := Load(file)
			if err != nil {
				return err
			}
			plugins[i] = p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return plugins, nil
}

// RegisterPaths loads plugin definitions and registers them into r. A
// definition may not shadow an already registered plugin.
func RegisterPaths(ctx context.Context, r *panel.Registry, paths ...string) ([]*panel.Plugin, error) {
	plugins, err := LoadPaths(ctx, paths...)
	if err != nil {
		return nil, err
	}
	for _, p := range plugins {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return plugins, nil
}
