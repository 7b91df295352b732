package config

import (
	"reflect"

	sserr "github.com/StricklySoft/stricklysoft-userservice/pkg/errors"
)

// Validator is an optional interface for configuration structs that need
// checks beyond the `required` tag. When the struct passed to
// [Loader.Load] implements it, Validate runs after tag-based validation.
//
// Validate should return the first failure, or nil. Returned
// [*sserr.Error] values pass through unchanged; other errors are wrapped
// with [sserr.CodeValidation].
//
// Example:
//
//	func (c *ServerConfig) Validate() error {
//	    if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
//	        return sserr.Newf(sserr.CodeValidationFormat,
//	            "config: bcrypt cost %d out of range", c.BcryptCost)
//	    }
//	    return nil
//	}
type Validator interface {
	Validate() error
}

// validate runs required-tag validation and then the Validator interface,
// if implemented. cfg is the original pointer (for the type assertion);
// rv is the dereferenced struct value.
func validate(cfg any, rv reflect.Value) error {
	if err := validateRequired(rv, ""); err != nil {
		return err
	}

	if v, ok := cfg.(Validator); ok {
		if err := v.Validate(); err != nil {
			if _, isSSErr := sserr.AsError(err); isSSErr {
				return err
			}
			return sserr.Wrap(err, sserr.CodeValidation,
				"config: custom validation failed")
		}
	}

	return nil
}

// validateRequired recursively checks `required:"true"` fields for
// non-zero values. path is the dotted field path used in error messages
// (e.g. "Postgres.Database").
func validateRequired(rv reflect.Value, path string) error {
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rv.Field(i)
		sf := rt.Field(i)

		if !field.CanSet() {
			continue
		}

		fieldPath := sf.Name
		if path != "" {
			fieldPath = path + "." + sf.Name
		}

		if field.Kind() == reflect.Struct {
			if err := validateRequired(field, fieldPath); err != nil {
				return err
			}
			continue
		}

		if sf.Tag.Get("required") != "true" {
			continue
		}

		if field.IsZero() {
			return sserr.Newf(sserr.CodeValidationRequired,
				"config: required field %q is empty", fieldPath)
		}
	}

	return nil
}
