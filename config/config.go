package config

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	*viper.Viper
}

const (
	ConfigDebug              = "debug"
	ConfigCollapseDuplicates = "collapse-duplicates"
	ConfigSolverMaxNodes     = "solver-max-nodes"
	ConfigSolverMaxTime      = "solver-max-time"
	ConfigDefaultRows        = "default-rows"
	ConfigDefaultCols        = "default-cols"
	ConfigAutoplayHandSize   = "autoplay-hand-size"
	ConfigAutoplayMaxLabel   = "autoplay-max-label"
	ConfigCPUProfile         = "cpu-profile"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigCollapseDuplicates, false)
	v.SetDefault(ConfigSolverMaxNodes, 0)
	v.SetDefault(ConfigSolverMaxTime, time.Duration(0))
	v.SetDefault(ConfigDefaultRows, 5)
	v.SetDefault(ConfigDefaultCols, 5)
	v.SetDefault(ConfigAutoplayHandSize, 4)
	v.SetDefault(ConfigAutoplayMaxLabel, 4)
	v.SetDefault(ConfigCPUProfile, "")
}

// Load reads flags from args and QUATROMINOS_* environment variables on top
// of the defaults. Arguments that aren't flags are left for the caller; see
// Args.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c.Viper)

	fs := pflag.NewFlagSet("quatrominos", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Bool(ConfigCollapseDuplicates, false, "hands hold at most one tile of each value")
	fs.Int(ConfigSolverMaxNodes, 0, "give up solving after this many nodes (0 for no limit)")
	fs.Duration(ConfigSolverMaxTime, 0, "give up solving after this long (0 for no limit)")
	fs.Int(ConfigDefaultRows, 5, "rows of a new board")
	fs.Int(ConfigDefaultCols, 5, "columns of a new board")
	fs.Int(ConfigAutoplayHandSize, 4, "tiles dealt to each player in self-play games")
	fs.Int(ConfigAutoplayMaxLabel, 4, "edge labels of dealt tiles run from 1 to this")
	fs.String(ConfigCPUProfile, "", "write a cpu profile to this file")

	err := fs.Parse(args)
	if err != nil {
		return err
	}
	err = c.BindPFlags(fs)
	if err != nil {
		return err
	}
	c.Set(argsKey, fs.Args())

	c.SetEnvPrefix("quatrominos")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	return nil
}

const argsKey = "positional-args"

// Args returns whatever Load did not recognize as a flag.
func (c *Config) Args() []string {
	return c.GetStringSlice(argsKey)
}

func DefaultConfig() *Config {
	c := &Config{}
	c.Viper = viper.New()
	setDefaults(c.Viper)
	return c
}
