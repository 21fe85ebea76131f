package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// defaultConfigPath is where `config` writes when neither an argument nor -c is given.
const defaultConfigPath = "wordle.yaml"

// runConfig writes the effective settings (file, environment and flags merged)
// as a YAML config file.
func (a *app) runConfig(args []string) error {
	path := defaultConfigPath
	switch {
	case len(args) > 0:
		path = args[0]
	case a.configPath != "":
		path = a.configPath
	}
	if err := a.cfg.Save(path); err != nil {
		return err
	}
	log.Debug().Str("path", path).Msg("config written")
	fmt.Fprintln(a.out, path)
	return nil
}
