// Package config loads llgen's optional project configuration file
// (llgen.toml): the output package name and a path to a preamble file
// shared across generate invocations in a project. Decoding follows the
// teacher pack's BurntSushi/toml convention (dekarrin-tunaq's
// internal/tqw/tqw.go: toml.Unmarshal into a tagged struct).
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the decoded contents of llgen.toml.
type Config struct {
	Package      string `toml:"package"`
	PreamblePath string `toml:"preamble_path"`
	OutputPath   string `toml:"output_path"`
}

// Default returns the configuration used when no llgen.toml is present.
func Default() Config {
	return Config{Package: "generated", OutputPath: "parser_gen.go"}
}

// Load reads and decodes path. A missing file is not an error — it
// yields Default() so `llgen generate` works without any project setup.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, err
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
