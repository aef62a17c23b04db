package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"

	"github.com/thiefmaster/aorura/comm"
)

type appConfig struct {
	Path         string    `yaml:"path" toml:"path"`
	Listen       string    `yaml:"listen" toml:"listen"`
	ReadOnly     bool      `yaml:"read_only" toml:"read_only"`
	StateDB      string    `yaml:"state_db" toml:"state_db"`
	InitialState string    `yaml:"initial_state" toml:"initial_state"`
	Log          logConfig `yaml:"log" toml:"log"`
}

type logConfig struct {
	Level  string `yaml:"level" toml:"level"`
	JSON   bool   `yaml:"json" toml:"json"`
	Colors bool   `yaml:"colors" toml:"colors"`
}

func defaultConfig() appConfig {
	return appConfig{
		Log: logConfig{Level: "info", Colors: true},
	}
}

// load reads a YAML or TOML (by extension) config file over c. Unknown keys
// are errors.
func (c *appConfig) load(path string) error {
	log.Debug().Str("path", path).Msg("loading config file")

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		meta, err := toml.DecodeFile(path, c)
		if err != nil {
			return fmt.Errorf("could not parse config file: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("could not parse config file: unknown keys %v", undecoded)
		}
		return nil
	}

	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not open config file: %w", err)
	}
	if err = yaml.UnmarshalStrict(yamlFile, c); err != nil {
		return fmt.Errorf("could not parse config file: %w", err)
	}
	return nil
}

// applyFlags overrides config values with flags given on the command line.
func (c *appConfig) applyFlags(flags *pflag.FlagSet) error {
	var err error
	if flags.Changed("listen") {
		c.Listen, err = flags.GetString("listen")
	}
	if err == nil && flags.Changed("read-only") {
		c.ReadOnly, err = flags.GetBool("read-only")
	}
	if err == nil && flags.Changed("state-db") {
		c.StateDB, err = flags.GetString("state-db")
	}
	if err == nil && flags.Changed("initial-state") {
		c.InitialState, err = flags.GetString("initial-state")
	}
	if err == nil && flags.Changed("log-level") {
		c.Log.Level, err = flags.GetString("log-level")
	}
	if err == nil && flags.Changed("log-json") {
		c.Log.JSON, err = flags.GetBool("log-json")
	}
	return err
}

func (c *appConfig) validate() error {
	if c.Path == "" {
		return errors.New("no pty path given")
	}
	if _, err := c.initialState(); err != nil {
		return fmt.Errorf("initial_state: %w", err)
	}
	return nil
}

func (c *appConfig) initialState() (comm.State, error) {
	if c.InitialState == "" {
		return comm.DefaultState, nil
	}
	return comm.ParseState(c.InitialState)
}
