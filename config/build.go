package config

import (
	"fmt"
	"log/slog"

	"github.com/dcshock/callchain/chain"
)

// BuildOptions configures chains built from config.
type BuildOptions struct {
	// Logger is set on every built chain (nil keeps slog.Default()).
	Logger *slog.Logger

	// Observer is set on every built chain.
	Observer chain.Observer
}

// BuildChain builds a chain.Chain from config and registry. Action names in config must be registered.
// Every entry gets its own clone of the registered action, so overrides (map, outputs) and the
// recorded input/output of a run stay with the built chain. Args seed the chain's store.
func BuildChain(reg *chain.Registry, cfg *ChainConfig, opts *BuildOptions) (*chain.Chain, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if reg == nil {
		return nil, fmt.Errorf("registry is nil")
	}
	c := chain.New(cfg.Name)
	if opts != nil {
		c.Logger = opts.Logger
		c.Observer = opts.Observer
	}
	for name, v := range cfg.Args {
		c.Set(name, v)
	}
	for i, ref := range cfg.Actions {
		if ref.Name == "" {
			return nil, fmt.Errorf("action %d: name required", i)
		}
		a, ok := reg.Get(ref.Name)
		if !ok {
			return nil, fmt.Errorf("action %d: %q not in registry", i, ref.Name)
		}
		c.Append(a.Clone().MapArguments(ref.Map).Output(ref.Outputs...))
	}
	return c, nil
}

// BuildAllChains builds a chain.Chain for each entry in multi. Keys are chain names.
// If a chain config's Name is empty, the map key is used as the chain name.
func BuildAllChains(reg *chain.Registry, multi *MultiChainConfig, opts *BuildOptions) (map[string]*chain.Chain, error) {
	if multi == nil {
		return nil, fmt.Errorf("MultiChainConfig is nil")
	}
	out := make(map[string]*chain.Chain, len(multi.Chains))
	for name, cfg := range multi.Chains {
		if cfg.Name == "" {
			cfg.Name = name
		}
		c, err := BuildChain(reg, &cfg, opts)
		if err != nil {
			return nil, fmt.Errorf("chain %q: %w", name, err)
		}
		out[name] = c
	}
	return out, nil
}
