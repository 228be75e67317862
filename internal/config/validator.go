package config

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	oerrors "github.com/idsr/indgen/internal/errors"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e ValidationErrors) Unwrap() error {
	return oerrors.ErrConfiguration
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(configSchemaCUE, cue.Filename("config.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if def.Err() != nil {
		return nil, fmt.Errorf("looking up #Config: %w", def.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: def,
	}, nil
}

// Validate validates the given configuration. The returned error, if any,
// is a ValidationErrors.
func (v *Validator) Validate(cfg *Config) error {
	var errs ValidationErrors

	value := v.ctx.Encode(normalize(cfg))
	if value.Err() != nil {
		return fmt.Errorf("encoding config: %w", value.Err())
	}

	unified := v.schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		for _, e := range cueerrors.Errors(err) {
			format, args := e.Msg()
			errs = append(errs, ValidationError{
				Field:   fieldPath(e.Path()),
				Message: fmt.Sprintf(format, args...),
			})
		}
	}

	if len(cfg.Vocabulary.Diseases) == 0 && len(cfg.Vocabulary.Statuses) == 0 {
		errs = append(errs, ValidationError{
			Field:   "vocabulary",
			Message: "at least one of diseases or statuses must be non-empty",
		})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// normalize returns a copy of cfg in which unset vocabularies are empty
// lists, so the schema sees a concrete value.
func normalize(cfg *Config) *Config {
	c := *cfg
	if c.Vocabulary.Diseases == nil {
		c.Vocabulary.Diseases = []string{}
	}
	if c.Vocabulary.Statuses == nil {
		c.Vocabulary.Statuses = []string{}
	}
	return &c
}

// fieldPath joins a CUE error path, dropping the leading definition name.
func fieldPath(path []string) string {
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	return strings.Join(path, ".")
}
