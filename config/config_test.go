package config

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigDefaultRows), 5)
	is.Equal(cfg.GetInt(ConfigDefaultCols), 5)
	is.Equal(cfg.GetBool(ConfigCollapseDuplicates), false)
	is.Equal(cfg.GetDuration(ConfigSolverMaxTime), time.Duration(0))
	is.Equal(cfg.GetInt(ConfigAutoplayHandSize), 4)
	is.Equal(cfg.GetInt(ConfigAutoplayMaxLabel), 4)
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--debug", "--solver-max-nodes=5000", "--solver-max-time=3s", "solve"})
	is.NoErr(err)
	is.True(cfg.GetBool(ConfigDebug))
	is.Equal(cfg.GetInt(ConfigSolverMaxNodes), 5000)
	is.Equal(cfg.GetDuration(ConfigSolverMaxTime), 3*time.Second)
	is.Equal(cfg.GetInt(ConfigDefaultRows), 5)
	is.Equal(cfg.Args(), []string{"solve"})
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("QUATROMINOS_COLLAPSE_DUPLICATES", "true")
	t.Setenv("QUATROMINOS_DEFAULT_ROWS", "7")
	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.True(cfg.GetBool(ConfigCollapseDuplicates))
	is.Equal(cfg.GetInt(ConfigDefaultRows), 7)
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--solver-max-nodes=lots"})
	is.True(err != nil)
}
