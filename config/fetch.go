package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
)

// IsRemote reports whether src names a go-getter source rather than a
// local file path.
func IsRemote(src string) bool {
	return strings.Contains(src, "://") || strings.Contains(src, "::")
}

// Fetch downloads a remote settings file into a temporary directory and
// returns its local path. The returned cleanup removes the directory.
func Fetch(ctx context.Context, src string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "tectonicglobe-settings-")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.RemoveAll(dir) }

	pwd, err := os.Getwd()
	if err != nil {
		cleanup()
		return "", nil, err
	}

	dst := filepath.Join(dir, "settings.json")
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("fetch settings %s: %w", src, err)
	}
	return dst, cleanup, nil
}

// LoadFrom loads settings from a local path or, for go-getter sources, from
// a downloaded copy.
func LoadFrom(ctx context.Context, src string) (Settings, bool, error) {
	if !IsRemote(src) {
		return Load(src)
	}
	path, cleanup, err := Fetch(ctx, src)
	if err != nil {
		return Default(), false, err
	}
	defer cleanup()
	return Load(path)
}
