package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// BootstrapConfig carries optional install-time overrides read from a TOML
// file. Values present here are written into the settings table on startup,
// after which the database copy is authoritative.
type BootstrapConfig struct {
	Web   WebBootstrap   `toml:"web"`
	Admin AdminBootstrap `toml:"admin"`
}

type WebBootstrap struct {
	Listen   string `toml:"listen"`
	Port     int    `toml:"port"`
	BasePath string `toml:"basePath"`
	Domain   string `toml:"domain"`
}

type AdminBootstrap struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// LoadBootstrapFile reads the bootstrap TOML file. A missing file is not an
// error; the returned config is nil in that case.
func LoadBootstrapFile(path string) (*BootstrapConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	cfg := &BootstrapConfig{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
