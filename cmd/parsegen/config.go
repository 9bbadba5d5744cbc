package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// config holds the defaults a parsegen.toml file can set, overridden by
// whatever flags the user actually passes on the command line. Grounded on
// tqw.ScanFileInfo/LoadWorldDataFile's toml.Unmarshal-into-struct pattern
// (internal/tqw/tqw.go).
type config struct {
	Grammar string `toml:"grammar"`
	Start   string `toml:"start"`
	K       int    `toml:"k"`
	Engine  string `toml:"engine"`
	Cache   string `toml:"cache"`
}

func defaultConfig() config {
	return config{Start: "start", K: 1, Engine: "lr"}
}

// loadConfig reads a parsegen.toml-style config file, if one exists at
// path, layering its values over the defaults. A missing file is not an
// error; an unparseable one is.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
