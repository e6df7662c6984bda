package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FieldError reports a JSON field whose value could not be coerced.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Reason
}

// number holds the text of a JSON number or of a string containing one.
// Form-backed clients post "7.5" where API clients post 7.5.
type number string

func (n *number) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*n = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	*n = number(strings.TrimSpace(s))
	return nil
}

// toUint parses n into *dst. Like the other conversions, a nil or empty
// number leaves *dst untouched.
func (n *number) toUint(field string, dst *uint) error {
	if n == nil || *n == "" {
		return nil
	}
	v, err := strconv.ParseUint(string(*n), 10, 0)
	if err != nil {
		return &FieldError{Field: field, Reason: fmt.Sprintf("%q is not a non-negative integer", string(*n))}
	}
	*dst = uint(v)
	return nil
}

// toRef sets *dst to nil for null or "" so a form can clear a reference.
func (n *number) toRef(field string, dst **uint) error {
	if n == nil {
		return nil
	}
	if *n == "" {
		*dst = nil
		return nil
	}
	var v uint
	if err := n.toUint(field, &v); err != nil {
		return err
	}
	*dst = &v
	return nil
}

func (n *number) toInt(field string, dst *int) error {
	if n == nil || *n == "" {
		return nil
	}
	v, err := strconv.Atoi(string(*n))
	if err != nil {
		return &FieldError{Field: field, Reason: fmt.Sprintf("%q is not an integer", string(*n))}
	}
	*dst = v
	return nil
}

func (n *number) toFloat(field string, dst *float64) error {
	if n == nil || *n == "" {
		return nil
	}
	v, err := strconv.ParseFloat(string(*n), 64)
	if err != nil {
		return &FieldError{Field: field, Reason: fmt.Sprintf("%q is not a number", string(*n))}
	}
	*dst = v
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
