// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader loads shader stage sources as opaque text.
//
// Sources come from a Fetcher: a file system, an HTTP server or the local
// disk. Load fetches a vertex and fragment pair concurrently and fails as a
// whole when either fetch fails.
package shader

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrLoad is returned when a stage source cannot be fetched or decoded.
	ErrLoad = errors.New("shader: load failed")

	// ErrInvalidPaths is returned, wrapped in ErrLoad, when Load is not given
	// exactly two paths.
	ErrInvalidPaths = errors.New("shader: need a vertex and a fragment path")
)

// Pair holds the two stage sources of one program.
type Pair struct {
	Vertex   string
	Fragment string
}

// Fetcher retrieves the raw bytes stored under a path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, path string) ([]byte, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, path string) ([]byte, error) { return f(ctx, path) }

// Load fetches paths[0] as the vertex source and paths[1] as the fragment
// source. Both fetches run concurrently; the first failure cancels the other
// and is returned wrapped in ErrLoad.
func Load(ctx context.Context, f Fetcher, paths []string) (Pair, error) {
	if len(paths) != 2 {
		return Pair{}, fmt.Errorf("%w: %w: got %d", ErrLoad, ErrInvalidPaths, len(paths))
	}
	if f == nil {
		return Pair{}, fmt.Errorf("%w: no fetcher", ErrLoad)
	}

	var src [2]string
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			raw, err := f.Fetch(ctx, p)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrLoad, p, err)
			}
			text, err := Decode(raw)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrLoad, p, err)
			}
			src[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slogger().Warn("shader load failed", "err", err)
		return Pair{}, err
	}
	slogger().Info("shader sources loaded", "vertex", paths[0], "fragment", paths[1])
	return Pair{Vertex: src[0], Fragment: src[1]}, nil
}
