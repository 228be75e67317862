// Package cmdtypes provides shared types for the cmd package.
package cmdtypes

import (
	"github.com/idsr/indgen/internal/config"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded configuration, nil if loading failed.
	Config *config.Config

	// ConfigPath is the resolved --config path and its source.
	ConfigPath config.ResolvedValue

	// LoadErr is the error from loading the config file, if any. Commands
	// that do not need configuration ignore it.
	LoadErr error

	Verbose bool
}

// RequireConfig returns the loaded configuration after validating it.
func (g *GlobalConfig) RequireConfig() (*config.Config, error) {
	if g.LoadErr != nil {
		return nil, g.LoadErr
	}
	if g.Config == nil {
		return nil, config.ValidationErrors{{Field: "config", Message: "configuration not loaded"}}
	}

	v, err := config.NewValidator()
	if err != nil {
		return nil, err
	}
	if err := v.Validate(g.Config); err != nil {
		return nil, err
	}
	return g.Config, nil
}
