package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	oerrors "github.com/idsr/indgen/internal/errors"
)

// Environment variable prefix for indgen configuration.
const envPrefix = "INDGEN"

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader seeded with the built-in
// defaults. File locations are left unset so the resolver can report
// whether they came from the config file or the defaults.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind specific environment variables
	_ = v.BindEnv("optionSets.disease", "INDGEN_DISEASE_OPTION_SET")
	_ = v.BindEnv("optionSets.status", "INDGEN_STATUS_OPTION_SET")
	_ = v.BindEnv("attributes.disease", "INDGEN_DISEASE_ATTRIBUTE")
	_ = v.BindEnv("attributes.status", "INDGEN_STATUS_ATTRIBUTE")
	_ = v.BindEnv("uidPool.start", "INDGEN_UID_START")
	_ = v.BindEnv("matching.strictNames", "INDGEN_STRICT_NAMES")

	def := DefaultConfig()
	v.SetDefault("uidPool.start", def.UIDPool.Start)
	v.SetDefault("optionSets.disease", def.OptionSets.Disease)
	v.SetDefault("optionSets.status", def.OptionSets.Status)
	v.SetDefault("attributes.disease", def.Attributes.Disease)
	v.SetDefault("attributes.status", def.Attributes.Status)
	v.SetDefault("vocabulary.diseases", def.Vocabulary.Diseases)
	v.SetDefault("vocabulary.statuses", def.Vocabulary.Statuses)
	v.SetDefault("templates", def.Templates)
	v.SetDefault("matching.strictNames", def.Matching.StrictNames)

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// A missing file is not an error: defaults and environment apply.
// An empty configFile skips the file layer entirely.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile != "" {
		expandedPath, err := ExpandPath(configFile)
		if err != nil {
			return nil, fmt.Errorf("expanding config path: %w", err)
		}

		exists, err := FileExists(expandedPath)
		if err != nil {
			return nil, oerrors.NewIOError(expandedPath, err)
		}

		if exists {
			l.v.SetConfigFile(expandedPath)
			l.v.SetConfigType("yaml")
			if err := l.v.ReadInConfig(); err != nil {
				return nil, oerrors.NewParseError(expandedPath, err)
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w: %w", oerrors.ErrParse, err)
	}

	return &cfg, nil
}

// UsedFile returns the config file that was read, or "" if none.
func (l *Loader) UsedFile() string {
	return l.v.ConfigFileUsed()
}
