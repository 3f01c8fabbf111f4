// Package config reads the optional TOML configuration file for the sqj CLI.
// Every value here has a matching command-line flag; flags that are set
// explicitly take precedence over the file.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// File is the top-level TOML document.
type File struct {
	Convert ConvertConfig `toml:"convert"`
	Dump    DumpConfig    `toml:"dump"`
}

// ConvertConfig maps [convert].
type ConvertConfig struct {
	Output         string `toml:"output"`
	SplitDir       string `toml:"split_dir"`
	Compact        bool   `toml:"compact"`
	SkipUnparsable bool   `toml:"skip_unparsable"`
	StatementLimit int    `toml:"statement_limit"`
}

// DumpConfig maps [dump].
type DumpConfig struct {
	DSN    string   `toml:"dsn"`
	Tables []string `toml:"tables"`
}

// Load decodes the TOML file at path.
func Load(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", path, err)
	}
	return &f, nil
}
