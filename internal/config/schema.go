package config

import (
	_ "embed"
)

// configSchemaCUE is the schema configurations are validated against.
//
//go:embed schema/config.cue
var configSchemaCUE []byte
