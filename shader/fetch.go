// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxSourceSize bounds a single fetched stage source.
const MaxSourceSize = 1 << 20

// FS fetches paths from a file system, such as an embed.FS.
type FS struct {
	FS fs.FS
}

// Fetch implements Fetcher.
func (f FS) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(f.FS, path)
}

// Disk fetches paths from the local file system, relative to Dir when it is
// set.
type Disk struct {
	Dir string
}

// Fetch implements Fetcher.
func (d Disk) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(d.Dir, path)
	}
	return os.ReadFile(path)
}

// HTTP fetches paths relative to Base with GET requests. Any status other
// than 200 is an error.
type HTTP struct {
	Base   string
	Client *http.Client
}

// Fetch implements Fetcher.
func (h HTTP) Fetch(ctx context.Context, path string) ([]byte, error) {
	url := path
	if !isURL(path) {
		url = strings.TrimSuffix(h.Base, "/") + "/" + strings.TrimPrefix(path, "/")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxSourceSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > MaxSourceSize {
		return nil, fmt.Errorf("GET %s: source exceeds %d bytes", url, MaxSourceSize)
	}
	return body, nil
}

// Auto sends http and https URLs to HTTP and everything else to Local.
type Auto struct {
	HTTP  HTTP
	Local Fetcher
}

// Fetch implements Fetcher.
func (a Auto) Fetch(ctx context.Context, path string) ([]byte, error) {
	if isURL(path) {
		return a.HTTP.Fetch(ctx, path)
	}
	if a.Local == nil {
		return Disk{}.Fetch(ctx, path)
	}
	return a.Local.Fetch(ctx, path)
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
