// Package validation implements declarative per-route request validation.
//
// A route declares an ordered list of rules, each rule an ordered list of
// checks over one body field or path parameter. Every check of every rule
// is evaluated (no short-circuit), and every failure is reported, so a
// single bad field can produce several entries in the error envelope.
package validation

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Location identifies where a validated field lives in the request.
type Location string

const (
	LocationBody   Location = "body"
	LocationParams Location = "params"
)

// FieldError describes one failed check.
type FieldError struct {
	Type     string      `json:"type"`
	Value    interface{} `json:"value"`
	Msg      string      `json:"msg"`
	Path     string      `json:"path"`
	Location string      `json:"location"`
}

// Check is a single predicate over a field value paired with the message
// reported when it fails. present is false when the field is absent from
// the request.
type Check struct {
	assert func(value interface{}, present bool) bool
	msg    string
}

// Rule holds the ordered checks declared for one field.
type Rule struct {
	field    string
	location Location
	checks   []Check
}

var validate = validator.New()

// Body starts a rule over a field of the JSON request body.
func Body(field string) *Rule {
	return &Rule{field: field, location: LocationBody}
}

// Param starts a rule over a path parameter.
func Param(field string) *Rule {
	return &Rule{field: field, location: LocationParams}
}

// NotEmpty fails when the field is absent or empty.
func (r *Rule) NotEmpty(msg string) *Rule {
	return r.add(func(value interface{}, present bool) bool {
		return present && validate.Var(stringify(value), "required") == nil
	}, msg)
}

// IsNumeric fails unless the field holds a number or a numeric string.
func (r *Rule) IsNumeric(msg string) *Rule {
	return r.add(func(value interface{}, present bool) bool {
		return present && validate.Var(stringify(value), "numeric") == nil
	}, msg)
}

// IsInt fails unless the field parses as an integer. Path parameters are
// always strings, so this is a strconv check rather than a validator tag.
func (r *Rule) IsInt(msg string) *Rule {
	return r.add(func(value interface{}, present bool) bool {
		if !present {
			return false
		}
		_, err := strconv.Atoi(stringify(value))
		return err == nil
	}, msg)
}

// IsBoolean fails unless the field holds a boolean or a boolean string.
func (r *Rule) IsBoolean(msg string) *Rule {
	return r.add(func(value interface{}, present bool) bool {
		return present && validate.Var(stringify(value), "boolean") == nil
	}, msg)
}

// Custom attaches an arbitrary predicate. Absent fields fail the check.
func (r *Rule) Custom(pred func(value interface{}) bool, msg string) *Rule {
	return r.add(func(value interface{}, present bool) bool {
		return present && pred(value)
	}, msg)
}

func (r *Rule) add(assert func(value interface{}, present bool) bool, msg string) *Rule {
	r.checks = append(r.checks, Check{assert: assert, msg: msg})
	return r
}

// Run evaluates every check of every rule against the request's path
// parameters and parsed body. Failures come back in declaration order.
func Run(rules []*Rule, params map[string]string, body map[string]interface{}) []FieldError {
	var failures []FieldError
	for _, rule := range rules {
		var value interface{}
		var present bool
		switch rule.location {
		case LocationParams:
			var s string
			s, present = params[rule.field]
			value = s
		default:
			value, present = body[rule.field]
		}
		for _, check := range rule.checks {
			if check.assert(value, present) {
				continue
			}
			failures = append(failures, FieldError{
				Type:     "field",
				Value:    value,
				Msg:      check.msg,
				Path:     rule.field,
				Location: string(rule.location),
			})
		}
	}
	return failures
}

// AsNumber converts a decoded JSON value to a float64 for use in custom
// predicates. Numeric strings are accepted, everything else is not.
func AsNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// AsBool converts a decoded JSON value to a bool. Boolean strings are
// accepted, mirroring the IsBoolean check.
func AsBool(value interface{}) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(v)
		return b, err == nil
	default:
		return false, false
	}
}

// AsString converts a decoded JSON value to its string form.
func AsString(value interface{}) string {
	return stringify(value)
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
