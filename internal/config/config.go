// Package config provides configuration loading and management.
package config

// OptionSetsConfig identifies the option sets options are selected from.
type OptionSetsConfig struct {
	// Disease is the option set holding disease options.
	// Env: INDGEN_DISEASE_OPTION_SET
	Disease string `json:"disease" mapstructure:"disease" yaml:"disease"`

	// Status is the option set holding incident status options.
	// Env: INDGEN_STATUS_OPTION_SET
	Status string `json:"status" mapstructure:"status" yaml:"status"`
}

// AttributesConfig identifies the tracked entity attributes filter
// expressions compare against.
type AttributesConfig struct {
	// Env: INDGEN_DISEASE_ATTRIBUTE
	Disease string `json:"disease" mapstructure:"disease" yaml:"disease"`

	// Env: INDGEN_STATUS_ATTRIBUTE
	Status string `json:"status" mapstructure:"status" yaml:"status"`
}

// VocabularyConfig holds the reference vocabularies used as membership filters.
//
// An explicit empty list (statuses: []) disables that dimension. A null
// value or an absent key falls back to the default list.
type VocabularyConfig struct {
	// Diseases is matched against option display names.
	Diseases []string `json:"diseases" mapstructure:"diseases" yaml:"diseases"`

	// Statuses is matched against option codes.
	Statuses []string `json:"statuses" mapstructure:"statuses" yaml:"statuses"`
}

// MatchingConfig controls vocabulary comparison.
type MatchingConfig struct {
	// StrictNames disables whitespace trimming when comparing option
	// names and codes against the vocabularies. Default: false.
	StrictNames bool `json:"strictNames" mapstructure:"strictNames" yaml:"strictNames"`
}

// UIDPoolConfig locates the identifier pool.
type UIDPoolConfig struct {
	// Path is the pool file. Env: INDGEN_UID_POOL, Default: ./uid.json
	Path string `json:"path,omitempty" mapstructure:"path" yaml:"path,omitempty"`

	// Start is the first pool index handed out. Env: INDGEN_UID_START
	Start int `json:"start" mapstructure:"start" yaml:"start"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the indgen configuration.
// Loaded from ~/.indgen/config.yaml, validated against the embedded CUE schema.
type Config struct {
	// Metadata is the input metadata snapshot.
	// Env: INDGEN_METADATA, Default: ./metadata.json
	Metadata string `json:"metadata,omitempty" mapstructure:"metadata" yaml:"metadata,omitempty"`

	// Output is where generated indicators are written.
	// Env: INDGEN_OUTPUT, Default: ./indicators.json
	Output string `json:"output,omitempty" mapstructure:"output" yaml:"output,omitempty"`

	UIDPool    UIDPoolConfig    `json:"uidPool" mapstructure:"uidPool" yaml:"uidPool"`
	OptionSets OptionSetsConfig `json:"optionSets" mapstructure:"optionSets" yaml:"optionSets"`
	Attributes AttributesConfig `json:"attributes" mapstructure:"attributes" yaml:"attributes"`
	Vocabulary VocabularyConfig `json:"vocabulary" mapstructure:"vocabulary" yaml:"vocabulary"`

	// Templates lists the template program indicators to expand, in order.
	Templates []string `json:"templates" mapstructure:"templates" yaml:"templates"`

	Matching MatchingConfig `json:"matching" mapstructure:"matching" yaml:"matching"`
	Log      LogConfig      `json:"log" mapstructure:"log" yaml:"log"`
}

// Built-in file locations.
const (
	DefaultMetadataPath = "./metadata.json"
	DefaultOutputPath   = "./indicators.json"
	DefaultUIDPoolPath  = "./uid.json"
)

// DefaultConfig returns a Config with all default values populated.
// Used by `indgen config init` and as the base layer of the loader.
func DefaultConfig() *Config {
	return &Config{
		Metadata: DefaultMetadataPath,
		Output:   DefaultOutputPath,
		UIDPool: UIDPoolConfig{
			Path: DefaultUIDPoolPath,
		},
		OptionSets: OptionSetsConfig{
			Disease: "DFSpWpoNq5r",
			Status:  "BhYOdRU5xsg",
		},
		Attributes: AttributesConfig{
			Disease: "jLvbkuvPdZ6",
			Status:  "cDLJoNCWHHs",
		},
		Vocabulary: VocabularyConfig{
			Diseases: []string{
				"COVID19",
				"AFP",
				"Acute respiratory",
				"Acute VHF",
				"Anthrax",
				"Bacterial meningitis",
				"Cholera",
				"Diarrhoea with blood box",
				"Measles",
				"Monkeypox",
				"Neonatal tetanus",
				"Plague",
				"SARIs",
				"Typhoid fever",
				"Zika fever",
			},
			Statuses: []string{"WATCH", "ALERT", "RESPOND"},
		},
		Templates: []string{"dr4OT0ql4cl"},
	}
}
