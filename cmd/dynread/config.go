package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rmera/gophon/dyn"
	"github.com/spf13/cobra"
)

// Config is the content of the configuration file. Every key is optional:
//
//	zero_tol = 1e-8
//	workers = 4
//	db = "phonons.db"
type Config struct {
	ZeroTol float64 `toml:"zero_tol"`
	Workers int     `toml:"workers"`
	DB      string  `toml:"db"`
}

// DefaultConfig returns the configuration used when no file or flag says otherwise.
// The database can also be set with the DYNREAD_DB environment variable.
func DefaultConfig() *Config {
	d := dyn.DefaultOptions()
	db := "dyn.db"
	if env := os.Getenv("DYNREAD_DB"); env != "" {
		db = env
	}
	return &Config{ZeroTol: d.ZeroTol, Workers: d.Workers, DB: db}
}

// LoadFile reads the TOML file path on top of c. Unknown keys are an error.
func (c *Config) LoadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Options returns the reading options for this configuration.
func (c *Config) Options() *dyn.Options {
	o := dyn.DefaultOptions()
	if c.ZeroTol > 0 {
		o.ZeroTol = c.ZeroTol
	}
	if c.Workers > 0 {
		o.Workers = c.Workers
	}
	return o
}

//loadConfig applies the config file, if any, and then the flags given explicitly,
//which take precedence.
func (a *app) loadConfig(cmd *cobra.Command) error {
	if a.cfgFile == "" {
		return nil
	}
	flags := *a.cfg
	c := DefaultConfig()
	if err := c.LoadFile(a.cfgFile); err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("zero-tol") {
		c.ZeroTol = flags.ZeroTol
	}
	if f.Changed("workers") {
		c.Workers = flags.Workers
	}
	if f.Changed("db") {
		c.DB = flags.DB
	}
	*a.cfg = *c
	return nil
}
