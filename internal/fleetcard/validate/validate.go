// Package validate turns raw operator input into normalized vehicle fields.
//
// Every validator is a pure function from the raw string to the typed value.
// A rejected input yields a *ValidationError whose Reason is ready to show to
// the operator; any other error indicates a programming mistake.
package validate

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports why a raw input was rejected.
type ValidationError struct {
	// Field is the human label of the rejected field, e.g. "VIN".
	Field string
	// Tag is the rule that failed, e.g. "len" or "entity_format".
	Tag string
	// Reason is the full message, e.g. "VIN must be exactly 17 characters long".
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// Year accepts exactly four ASCII digits naming a year in [MinYear, MaxYear].
func Year(raw string) (int, error) {
	if err := check("Year", raw, tagFourDigits); err != nil {
		return 0, err
	}

	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if err := check("Year", year, tagModelYear); err != nil {
		return 0, err
	}

	return year, nil
}

// NonEmpty returns the trimmed input, rejecting blank strings.
func NonEmpty(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if err := check("This field", s, "required"); err != nil {
		return "", err
	}
	return s, nil
}

// VIN returns the trimmed, upper-cased vehicle identification number. It must
// be exactly 17 alphanumeric characters.
func VIN(raw string) (string, error) {
	vin := strings.ToUpper(strings.TrimSpace(raw))
	if err := check("VIN", vin, "len=17,alphanum"); err != nil {
		return "", err
	}
	return vin, nil
}

// LicensePlate returns the trimmed, upper-cased plate.
func LicensePlate(raw string) (string, error) {
	plate := strings.ToUpper(strings.TrimSpace(raw))
	if err := check("License plate", plate, "required"); err != nil {
		return "", err
	}
	return plate, nil
}

// Float parses a finite number. Surrounding whitespace is ignored.
func Float(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ValidationError{
			Field:  "Input",
			Tag:    "numeric",
			Reason: "Input must be a numeric value",
		}
	}
	return f, nil
}

// Entity returns the trimmed, lower-cased sensor binding. It must look like
// "domain.entity_id" with both parts non-empty around the first dot.
func Entity(raw string) (string, error) {
	entity := strings.ToLower(strings.TrimSpace(raw))
	if err := check("Entity", entity, tagEntityFormat+","+tagEntityParts); err != nil {
		return "", err
	}
	return entity, nil
}

// URL accepts http, https and ftp addresses and returns them unchanged.
func URL(raw string) (string, error) {
	if err := check("URL", raw, tagLooseURL); err != nil {
		return "", err
	}
	return raw, nil
}

// check runs tags against value and converts the first failure into a
// *ValidationError labelled with field.
func check(field string, value any, tags string) error {
	svc := get()

	err := svc.validate.Var(value, tags)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	return &ValidationError{
		Field:  field,
		Tag:    fe.Tag(),
		Reason: field + " " + fe.Translate(svc.trans),
	}
}
