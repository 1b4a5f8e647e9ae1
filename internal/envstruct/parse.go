// Package envstruct populates configuration structs from environment
// variables declared with `env` struct tags.
package envstruct

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrEnvNotSet    = errors.New("environment variable not set")
	ErrInvalidValue = errors.New("v must be a pointer to a struct")
)

// Populate fills the string fields of the struct pointed to by v from the
// environment.
//
// lookupEnv has the same signature as [os.LookupEnv]. A field tagged
// `env:"NAME"` receives the value of NAME; when NAME is unset the
// `envDefault` tag supplies the value, and without one ErrEnvNotSet is
// returned. Only string fields are supported.
func Populate(v any, lookupEnv func(string) (string, bool)) error {
	ptrRef := reflect.ValueOf(v)
	if ptrRef.Kind() != reflect.Ptr {
		return fmt.Errorf("%w: not pointer: %v", ErrInvalidValue, v)
	}
	ref := ptrRef.Elem()
	if ref.Kind() != reflect.Struct {
		return fmt.Errorf("%w: not struct: %v", ErrInvalidValue, v)
	}

	refType := ref.Type()
	var errorList []error

	for i := range refType.NumField() {
		field := ref.Field(i)
		typeField := refType.Field(i)

		envVarName, tagged := typeField.Tag.Lookup("env")
		if !tagged {
			continue
		}

		if !field.CanSet() {
			errorList = append(errorList, fmt.Errorf("%w: cannot set field: %s",
				ErrInvalidValue, typeField.Name))
			continue
		}
		if field.Kind() != reflect.String {
			errorList = append(errorList, fmt.Errorf("%w: only strings are supported - field: %s, type: %s, env: %s",
				ErrInvalidValue, typeField.Name, field.Kind().String(), envVarName))
			continue
		}

		value, ok := lookupEnv(envVarName)
		if !ok {
			value, ok = typeField.Tag.Lookup("envDefault")
			if !ok {
				errorList = append(errorList, fmt.Errorf("%w: environment variable not set: %s",
					ErrEnvNotSet, envVarName))
				continue
			}
		}

		field.SetString(value)
	}

	return errors.Join(errorList...)
}
