// Package where resolves the client's per-user filesystem locations.
package where

import (
	"os"
	"path/filepath"

	"github.com/creatv/creatv/constant"
	"github.com/creatv/creatv/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "CREATV_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the configuration directory, honouring CREATV_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Creatv))
}

// Cache resolves the cache directory, falling back to ./cache when the platform has none.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Creatv))
}

// Logs resolves the directory holding daily log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// History resolves the local watch history file.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Queries resolves the search query suggestion registry.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}

// Videos resolves the short-lived video metadata cache.
func Videos() string {
	return filepath.Join(Cache(), "videos.json")
}

// Temp resolves a directory for transient artifacts such as mpv IPC sockets.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Creatv))
}
