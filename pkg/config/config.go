// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the chessbridge configuration file, creating it
// from the built-in defaults when it does not exist yet.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/chessbridge/pkg/uci"
)

const FilePermissions = 0755

//go:embed config.yaml
var DefaultFile []byte

var (
	// Directory is where chessbridge keeps its configuration.
	Directory = filepath.Join(xdg.ConfigHome, "chessbridge")

	// File is the configuration file used when none is given.
	File = filepath.Join(Directory, "config.yaml")
)

type Config struct {
	// Engine run by every session.
	Engine uci.EngineConfig `yaml:"engine"`

	// Interval between liveness checks after the first move.
	Keepalive time.Duration `yaml:"keepalive"`

	// Address of the relay's HTTP server.
	Listen string `yaml:"listen"`
}

// Default returns the built-in configuration.
func Default() Config {
	var config Config
	if err := yaml.Unmarshal(DefaultFile, &config); err != nil {
		panic("config: bad default file: " + err.Error())
	}

	return config
}

// Load reads the configuration at path, layered over the defaults. An
// empty path means File, which is created from the defaults if missing.
func Load(path string) (Config, error) {
	if path == "" {
		path = File
		TryMkdir(Directory)
		TryCreate(path, DefaultFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}

	if err := config.resolve(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// resolve fills in the derived parts of the configuration.
func (config *Config) resolve() error {
	if config.Keepalive <= 0 {
		return fmt.Errorf("config: keepalive must be positive, got %s", config.Keepalive)
	}

	// no command: run this binary's built-in engine
	if config.Engine.Cmd == "" {
		self, err := os.Executable()
		if err != nil {
			return fmt.Errorf("config: locate built-in engine: %w", err)
		}

		config.Engine.Cmd = self
		config.Engine.Arg = "engine"
	}

	return nil
}

func TryMkdir(dir string) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		_ = os.MkdirAll(dir, FilePermissions)
	}
}

func TryCreate(file string, data []byte) {
	if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
		_ = os.WriteFile(file, data, FilePermissions)
	}
}
