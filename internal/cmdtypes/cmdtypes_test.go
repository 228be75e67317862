package cmdtypes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idsr/indgen/internal/config"
	oerrors "github.com/idsr/indgen/internal/errors"
)

func TestRequireConfig(t *testing.T) {
	g := &GlobalConfig{Config: config.DefaultConfig()}
	cfg, err := g.RequireConfig()
	require.NoError(t, err)
	assert.Same(t, g.Config, cfg)
}

func TestRequireConfig_LoadError(t *testing.T) {
	loadErr := oerrors.NewParseError("config.yaml", errors.New("bad yaml"))
	g := &GlobalConfig{LoadErr: loadErr}

	_, err := g.RequireConfig()
	assert.Equal(t, loadErr, err)
}

func TestRequireConfig_Invalid(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Templates = []string{}
	g := &GlobalConfig{Config: cfg}

	_, err := g.RequireConfig()
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrConfiguration))
}

func TestRequireConfig_NotLoaded(t *testing.T) {
	_, err := (&GlobalConfig{}).RequireConfig()
	assert.True(t, errors.Is(err, oerrors.ErrConfiguration))
}
