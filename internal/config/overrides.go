package config

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"
)

var overridesValidate = validator.New()

// Overrides are caller-supplied values that replace what the server
// published. Zero values leave the server value untouched.
type Overrides struct {
	DefaultContextSet   string `json:"default_context_set,omitempty" yaml:"default_context_set,omitempty"`
	DefaultIndex        string `json:"default_index,omitempty" yaml:"default_index,omitempty"`
	DefaultRelation     string `json:"default_relation,omitempty" yaml:"default_relation,omitempty"`
	DefaultRecordSchema string `json:"default_record_schema,omitempty" yaml:"default_record_schema,omitempty"`
	DefaultSortSchema   string `json:"default_sort_schema,omitempty" yaml:"default_sort_schema,omitempty"`

	DefaultRecordsReturned int `json:"default_records_returned,omitempty" yaml:"default_records_returned,omitempty" validate:"gte=0"`
	MaxRecordsSupported    int `json:"max_records_supported,omitempty" yaml:"max_records_supported,omitempty" validate:"gte=0"`

	RecordPackingValues []string `json:"available_record_packing_values,omitempty" yaml:"available_record_packing_values,omitempty" validate:"omitempty,dive,oneof=string xml"`

	Username string `json:"username,omitempty" yaml:"username,omitempty" validate:"required_with=Password"`
	Password string `json:"password,omitempty" yaml:"password,omitempty" validate:"required_with=Username"`

	// DisableValidationForCQLDefaults, when non-nil, replaces the flag.
	DisableValidationForCQLDefaults *bool `json:"disable_validation_for_cql_defaults,omitempty" yaml:"disable_validation_for_cql_defaults,omitempty"`
}

// Validate checks the overrides' own shape. It does not look at any
// configuration.
func (o Overrides) Validate() error {
	if err := overridesValidate.Struct(o); err != nil {
		return fmt.Errorf("invalid overrides: %w", err)
	}
	return nil
}

// Apply returns a copy of c with the overrides merged in. Replacing a
// different server value is logged at Warn, filling an absent one at Info.
// A nil logger discards the messages.
func (c *Configuration) Apply(o Overrides, logger *slog.Logger) (*Configuration, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	out := c.Clone()
	overrideString(logger, "default_context_set", &out.DefaultContextSet, o.DefaultContextSet)
	overrideString(logger, "default_index", &out.DefaultIndex, o.DefaultIndex)
	overrideString(logger, "default_relation", &out.DefaultRelation, o.DefaultRelation)
	overrideString(logger, "default_record_schema", &out.DefaultRecordSchema, o.DefaultRecordSchema)
	overrideString(logger, "default_sort_schema", &out.DefaultSortSchema, o.DefaultSortSchema)
	overrideInt(logger, "default_records_returned", &out.DefaultRecordsReturned, o.DefaultRecordsReturned)
	overrideInt(logger, "max_records_supported", &out.MaxRecordsSupported, o.MaxRecordsSupported)

	if len(o.RecordPackingValues) > 0 {
		out.RecordPackingValues = append([]string(nil), o.RecordPackingValues...)
	}
	if o.Username != "" {
		out.Username = o.Username
		out.Password = o.Password
	}
	if o.DisableValidationForCQLDefaults != nil {
		out.DisableValidationForCQLDefaults = *o.DisableValidationForCQLDefaults
	}
	return out, nil
}

func overrideString(logger *slog.Logger, field string, current *string, value string) {
	if value == "" || value == *current {
		return
	}
	if *current != "" {
		logger.Warn("overriding server value", "field", field, "server", *current, "override", value)
	} else {
		logger.Info("setting value absent from server", "field", field, "value", value)
	}
	*current = value
}

func overrideInt(logger *slog.Logger, field string, current *int, value int) {
	if value == 0 || value == *current {
		return
	}
	if *current != 0 {
		logger.Warn("overriding server value", "field", field, "server", *current, "override", value)
	} else {
		logger.Info("setting value absent from server", "field", field, "value", value)
	}
	*current = value
}
