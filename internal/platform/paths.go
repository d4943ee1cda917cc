// Package platform resolves where plank reads its config file and writes its logs.
package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultAppName names the per-user config and data directories.
const DefaultAppName = "plank"

// devSuffix keeps dev builds from reading a release config.
const devSuffix = "-dev"

// Paths are the per-user locations of one plank install. The board keeps
// projects in memory, so nothing here holds project data.
type Paths struct {
	// ConfigPath is the TOML file loaded at startup.
	ConfigPath string
	// DataDir is the per-user data root.
	DataDir string
	// LogDir receives the dev log when no workspace log dir is configured.
	LogDir string
}

// Options selects the app directory name.
type Options struct {
	AppName string
	DevMode bool
}

// dirName returns the directory name shared by the config and data roots.
func (o Options) dirName() string {
	name := strings.TrimSpace(o.AppName)
	if name == "" {
		name = DefaultAppName
	}
	if o.DevMode {
		name += devSuffix
	}
	return name
}

// BaseDirs are the user-level roots plank nests its app directory under.
type BaseDirs struct {
	Config string
	Data   string
}

// Resolve returns the paths for the running OS and user.
func Resolve(opts Options) (Paths, error) {
	base, err := userBaseDirs(runtime.GOOS)
	if err != nil {
		return Paths{}, err
	}
	return ResolveFor(runtime.GOOS, os.Getenv, base, opts)
}

// userBaseDirs asks the OS for the config root and picks a data root next to it.
// Linux data goes to ~/.local/share; elsewhere data sits beside config.
func userBaseDirs(goos string) (BaseDirs, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return BaseDirs{}, fmt.Errorf("user config dir: %w", err)
	}
	base := BaseDirs{Config: configDir, Data: configDir}
	if goos == "linux" {
		home, err := os.UserHomeDir()
		if err != nil {
			return BaseDirs{}, fmt.Errorf("user home dir: %w", err)
		}
		base.Data = filepath.Join(home, ".local", "share")
	}
	return base, nil
}

// ResolveFor applies the per-OS environment overrides to base and nests the
// app directory under each root. getenv may be nil.
//
// Linux honours XDG_CONFIG_HOME and XDG_DATA_HOME. Windows honours APPDATA
// for config and LOCALAPPDATA for data. macOS and everything else use base as is.
func ResolveFor(goos string, getenv func(string) string, base BaseDirs, opts Options) (Paths, error) {
	if base.Config == "" || base.Data == "" {
		return Paths{}, errors.New("empty base dirs")
	}
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	override := func(current, key string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return current
	}

	switch goos {
	case "linux":
		base.Config = override(base.Config, "XDG_CONFIG_HOME")
		base.Data = override(base.Data, "XDG_DATA_HOME")
	case "windows":
		base.Config = override(base.Config, "APPDATA")
		base.Data = override(base.Data, "LOCALAPPDATA")
	}

	dir := opts.dirName()
	dataDir := filepath.Join(base.Data, dir)
	return Paths{
		ConfigPath: filepath.Join(base.Config, dir, "config.toml"),
		DataDir:    dataDir,
		LogDir:     filepath.Join(dataDir, "log"),
	}, nil
}
