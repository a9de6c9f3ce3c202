package main

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/scenario"
	"github.com/spf13/cobra"
)

// resolveConfig layers defaults, preset, config file, then flags and
// positional values, and validates the result.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return nil, dynamo.InvalidConfig("preset", preset, "unknown preset (available: "+strings.Join(names, ", ")+")")
		}
		cfg.Apply(p)
	}

	if configFile != "" {
		loaded, err := config.LoadFrom(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if flags.Changed("out") {
		cfg.Output = outPath
	}
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("catalog") {
		cfg.Catalog = catalogPath
	}
	if flags.Changed("strict-trace") {
		cfg.StrictTrace = strictTrace
	}

	if err := applyPositional(cfg, args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyPositional reads [bodies] [dt] [total] in that order. Missing
// trailing values keep what cfg already holds.
func applyPositional(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return dynamo.InvalidConfig("bodies", args[0], "not an integer")
		}
		cfg.Bodies = n
	}
	if len(args) > 1 {
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return dynamo.InvalidConfig("dt", args[1], "not a number")
		}
		cfg.Dt = v
	}
	if len(args) > 2 {
		v, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return dynamo.InvalidConfig("total_time", args[2], "not a number")
		}
		cfg.TotalTime = v
	}
	return nil
}

// buildUniverse generates the initial bodies for cfg from its seed.
func buildUniverse(cfg *config.Config) (*dynamo.Universe, error) {
	cat := scenario.DefaultCatalog()
	if cfg.Catalog != "" {
		loaded, err := scenario.LoadCatalog(cfg.Catalog)
		if err != nil {
			return nil, err
		}
		cat = loaded
	}

	gen := scenario.NewWithCatalog(rand.New(rand.NewSource(cfg.Seed)), cat)
	return gen.Generate(cfg.Bodies), nil
}
