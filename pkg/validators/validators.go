// Package validators provides the built-in validator set for form controls.
//
// Every validator follows the empty-value skip rule unless noted: a value
// that is nil or has zero length produces no error, on the reasoning that
// "absent" is Required's concern and nobody else's. Validators returning a
// parameterized check (Min, MaxLength, Pattern) are constructors that close
// over their argument.
package validators

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-drift/forms/pkg/forms"
)

// emailPattern matches the conventional shape local-part@domain with
// dot-separated, hyphen-tolerant labels.
var emailPattern = regexp.MustCompile(
	`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`,
)

// Required errors when the control's value is empty.
func Required(c forms.Control) forms.ValidationErrors {
	if isEmptyValue(c.Value()) {
		return forms.ValidationErrors{"required": true}
	}
	return nil
}

// RequiredTrue errors unless the control's value is exactly the boolean
// true. It never skips: false, nil, and non-boolean values all fail.
func RequiredTrue(c forms.Control) forms.ValidationErrors {
	if v, ok := c.Value().(bool); ok && v {
		return nil
	}
	return forms.ValidationErrors{"required": true}
}

// Email errors when a non-empty value does not look like an email address.
func Email(c forms.Control) forms.ValidationErrors {
	value := c.Value()
	if isEmptyValue(value) {
		return nil
	}
	s, ok := value.(string)
	if !ok || !emailPattern.MatchString(s) {
		return forms.ValidationErrors{"email": true}
	}
	return nil
}

// Min errors when the value parses to a number smaller than minimum.
func Min(minimum float64) forms.Validator {
	return func(c forms.Control) forms.ValidationErrors {
		value := c.Value()
		if isEmptyValue(value) {
			return nil
		}
		actual, ok := toFloat(value)
		if !ok || actual >= minimum {
			return nil
		}
		return forms.ValidationErrors{"min": map[string]any{"min": minimum, "actual": value}}
	}
}

// Max errors when the value parses to a number larger than maximum.
func Max(maximum float64) forms.Validator {
	return func(c forms.Control) forms.ValidationErrors {
		value := c.Value()
		if isEmptyValue(value) {
			return nil
		}
		actual, ok := toFloat(value)
		if !ok || actual <= maximum {
			return nil
		}
		return forms.ValidationErrors{"max": map[string]any{"max": maximum, "actual": value}}
	}
}

// MinLength errors when a non-empty value's length is smaller than length.
// Empty values skip, so MinLength never subsumes Required.
func MinLength(length int) forms.Validator {
	return func(c forms.Control) forms.ValidationErrors {
		value := c.Value()
		if isEmptyValue(value) {
			return nil
		}
		actual, ok := valueLength(value)
		if !ok || actual >= length {
			return nil
		}
		return forms.ValidationErrors{"minLength": map[string]any{
			"requiredLength": length,
			"actualLength":   actual,
		}}
	}
}

// MaxLength errors when the value's length is larger than length. Unlike
// the other validators it does not skip empty values; an empty value simply
// never exceeds the limit.
func MaxLength(length int) forms.Validator {
	return func(c forms.Control) forms.ValidationErrors {
		actual, ok := valueLength(c.Value())
		if !ok || actual <= length {
			return nil
		}
		return forms.ValidationErrors{"maxLength": map[string]any{
			"requiredLength": length,
			"actualLength":   actual,
		}}
	}
}

// Pattern errors when a non-empty value does not fully match pattern.
// String patterns anchor at both ends before compiling; an invalid pattern
// panics at construction, matching regexp.MustCompile.
func Pattern(pattern string) forms.Validator {
	anchored := pattern
	if !strings.HasPrefix(anchored, "^") {
		anchored = "^" + anchored
	}
	if !strings.HasSuffix(anchored, "$") {
		anchored += "$"
	}
	return patternValidator(regexp.MustCompile(anchored), anchored)
}

// PatternRegexp is Pattern with a prebuilt expression, used as-is without
// anchoring.
func PatternRegexp(re *regexp.Regexp) forms.Validator {
	return patternValidator(re, re.String())
}

func patternValidator(re *regexp.Regexp, required string) forms.Validator {
	return func(c forms.Control) forms.ValidationErrors {
		value := c.Value()
		if isEmptyValue(value) {
			return nil
		}
		s := stringValue(value)
		if re.MatchString(s) {
			return nil
		}
		return forms.ValidationErrors{"pattern": map[string]any{
			"requiredPattern": required,
			"actualValue":     s,
		}}
	}
}

// isEmptyValue implements the skip rule: nil or zero length means there is
// nothing to validate.
func isEmptyValue(value any) bool {
	if value == nil {
		return true
	}
	if length, ok := valueLength(value); ok {
		return length == 0
	}
	return false
}

// valueLength reports a value's length: runes for strings, element count
// for slices, arrays, and maps. Values with no length report false.
func valueLength(value any) (int, bool) {
	if s, ok := value.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	default:
		return 0, false
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func stringValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
